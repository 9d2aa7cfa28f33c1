package netstatus

import "strings"

// Realistic document fixtures shared across tests. Built from slices so
// individual tests can splice lines in and out.

var voteFixtureLines = []string{
	"network-status-version 3",
	"vote-status vote",
	"consensus-methods 13 14 15",
	"published 2015-12-01 12:00:00",
	"valid-after 2015-12-01 12:00:00",
	"fresh-until 2015-12-01 13:00:00",
	"valid-until 2015-12-01 15:00:00",
	"voting-delay 300 300",
	"client-versions 0.2.4.27,0.2.5.12",
	"server-versions 0.2.4.27,0.2.5.12",
	"package TorBrowser 5.0.4 https://dist.example.org sha256=8a9b0c",
	"known-flags Authority Exit Fast Guard Running Stable Valid",
	"flag-thresholds stable-uptime=693369 stable-mtbf=153249 fast-speed=40960" +
		" guard-wfu=94.669% guard-tk=691200 guard-bw-inc-exits=174080" +
		" guard-bw-exc-exits=184320 enough-mtbf=1 ignoring-advertised-bws=0",
	"params CircuitPriorityHalflifeMsec=30000 NumDirectoryGuards=3",
	"dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 9131 9101",
	"contact 1024D/28988BF5 arma mit edu",
	"dir-key-certificate-version 3",
	"fingerprint D586D18309DED4CD6D57C18FDB97EFA96D330566",
	"dir-key-published 2015-11-10 14:40:15",
	"dir-key-expires 2016-11-10 14:40:15",
	"dir-identity-key",
	"-----BEGIN RSA PUBLIC KEY-----",
	"MIIBigKCAYEAtMyWZVbkKMfgTnOsRQgBHMPVcJvGAMSkqRmEmYnU3zHJQJWQRwLq",
	"-----END RSA PUBLIC KEY-----",
	"dir-signing-key",
	"-----BEGIN RSA PUBLIC KEY-----",
	"MIGJAoGBALm2trFZDqvFAwpmqdfUP5MLeBzHkw1CsHtmaLV67jwKGvIYjSQlJynW",
	"-----END RSA PUBLIC KEY-----",
	"dir-key-crosscert",
	"-----BEGIN ID SIGNATURE-----",
	"FTBNmpmHgFjtQAUKvuXqkBfmnGtp1W0XpmmLarId01SeVl0wmktcaVENykWTSpbp",
	"-----END ID SIGNATURE-----",
	"dir-key-certification",
	"-----BEGIN SIGNATURE-----",
	"igVF2PbpQkmTcfBdGdVwsiuUnjYZvHB1gtTrYBPLwjCsPlvdYWZKhYMQmbcHnSlJ",
	"-----END SIGNATURE-----",
	"r seele AAoQ1DAR6kkoo19hBAX5K0QztNw m2lIcLLNpU0JBQ8PkmCikAg2Lzs 2015-11-30 22:51:54 73.164.41.38 9001 0",
	"s Running Stable Valid",
	"v Tor 0.2.6.10",
	"w Bandwidth=20 Measured=18",
	"p reject 1-65535",
	"directory-footer",
	"directory-signature D586D18309DED4CD6D57C18FDB97EFA96D330566 0A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D",
	"-----BEGIN SIGNATURE-----",
	"dGhpcyBpcyBub3QgYSByZWFsIHNpZ25hdHVyZSBidXQgaXQgbG9va3MgbGlrZSBv",
	"-----END SIGNATURE-----",
}

var consensusFixtureLines = []string{
	"network-status-version 3",
	"vote-status consensus",
	"consensus-method 20",
	"valid-after 2015-12-01 12:00:00",
	"fresh-until 2015-12-01 13:00:00",
	"valid-until 2015-12-01 15:00:00",
	"voting-delay 300 300",
	"client-versions 0.2.4.27,0.2.5.12",
	"server-versions 0.2.4.27,0.2.5.12",
	"known-flags Authority Exit Fast Guard HSDir Running Stable V2Dir Valid",
	"params CircuitPriorityHalflifeMsec=30000 pb_disablepct=0",
	"dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 9131 9101",
	"contact 1024D/28988BF5 arma mit edu",
	"vote-digest 0D1E2F3A4B5C6D7E8F90A1B2C3D4E5F60718293A",
	"dir-source tor26 14C131DFC5C6F93646BE72FA1401C02A8DF2E8B4 86.59.21.38 86.59.21.38 80 443",
	"contact Peter Palfrader",
	"vote-digest A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D4",
	"r seele AAoQ1DAR6kkoo19hBAX5K0QztNw m2lIcLLNpU0JBQ8PkmCikAg2Lzs 2015-11-30 22:51:54 73.164.41.38 9001 0",
	"s Running Stable Valid",
	"v Tor 0.2.6.10",
	"w Bandwidth=20",
	"p reject 1-65535",
	"r Unnamed AAFJ5u9xAqrKlpDW6N0pMhJLlKs bgD14DDBLlUspIcCSClTn93ftfI 2015-11-30 20:32:10 81.7.11.96 9001 0",
	"s Fast Running Valid",
	"v Tor 0.2.7.4-rc",
	"w Bandwidth=1770",
	"p reject 1-65535",
	"directory-footer",
	"bandwidth-weights Wbd=3335 Wbe=0 Wbg=3536 Wbm=10000 Wdb=10000",
	"directory-signature D586D18309DED4CD6D57C18FDB97EFA96D330566 0A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D",
	"-----BEGIN SIGNATURE-----",
	"c2lnbmF0dXJlIGJ5dGVzIGdvIGhlcmUgYnV0IHRoZXkgYXJlIG5vdCBjaGVja2Vk",
	"-----END SIGNATURE-----",
}

func voteFixture() string {
	return strings.Join(voteFixtureLines, "\n") + "\n"
}

func consensusFixture() string {
	return strings.Join(consensusFixtureLines, "\n") + "\n"
}

// withoutLine drops every line starting with prefix.
func withoutLine(lines []string, prefix string) []string {
	var out []string
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// duplicateLine repeats the first line starting with prefix, right after
// itself.
func duplicateLine(lines []string, prefix string) []string {
	var out []string
	done := false
	for _, l := range lines {
		out = append(out, l)
		if !done && strings.HasPrefix(l, prefix) {
			out = append(out, l)
			done = true
		}
	}
	return out
}

// replaceLine swaps the first line starting with prefix for repl.
func replaceLine(lines []string, prefix, repl string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for i, l := range out {
		if strings.HasPrefix(l, prefix) {
			out[i] = repl
			break
		}
	}
	return out
}

func docFrom(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
