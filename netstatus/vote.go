package netstatus

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Vote is a parsed network-status vote: the common validity and parameter
// fields plus the voting authority's identity, its directory key
// certificate, and flag thresholds.
type Vote struct {
	NetworkStatus

	Published        time.Time
	ConsensusMethods []int

	// Directory source identity from the dir-source line.
	Nickname string
	Identity string
	Hostname string
	Address  string
	DirPort  int
	ORPort   int
	Contact  string

	PackageLines []string

	// Directory key certificate.
	DirKeyCertificateVersion int
	LegacyDirKey             string
	DirKeyPublished          time.Time
	DirKeyExpires            time.Time
	DirIdentityKey           string
	DirSigningKey            string
	DirKeyCrosscert          string
	DirKeyCertification      string

	// Flag thresholds; -1 when the vote does not state them.
	StableUptime           int64
	StableMTBF             int64
	FastBandwidth          int64
	GuardWFU               float64
	GuardTK                int64
	GuardBandwidthIncExits int64
	GuardBandwidthExcExits int64
	EnoughMTBFInfo         int
	IgnoringAdvertisedBws  int
}

var voteExactlyOnce = []Keyword{
	KwVoteStatus, KwPublished, KwValidAfter, KwFreshUntil, KwValidUntil,
	KwVotingDelay, KwKnownFlags, KwDirSource, KwDirKeyCertificateVersion,
	KwFingerprint, KwDirKeyPublished, KwDirKeyExpires, KwDirIdentityKey,
	KwDirSigningKey, KwDirKeyCertification, KwDirectorySignature,
}

var voteAtMostOnce = []Keyword{
	KwConsensusMethods, KwClientVersions, KwServerVersions,
	KwFlagThresholds, KwParams, KwContact, KwLegacyDirKey,
	KwDirKeyCrosscert, KwDirAddress, KwDirectoryFooter,
}

// ParseVotes splits a blob into vote windows and parses each one
// independently. Votes that parse are returned even when siblings fail;
// the joined error reports every failed window.
func ParseVotes(raw []byte, opts ParseOptions) ([]*Vote, error) {
	windows, err := splitDocuments(newWindow(raw), KwNetworkStatusVersion)
	if err != nil {
		return nil, err
	}
	var votes []*Vote
	var errs []error
	for _, w := range windows {
		vote, err := parseVoteWindow(w, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		votes = append(votes, vote)
	}
	return votes, errors.Join(errs...)
}

// ParseVote parses a single vote document.
func ParseVote(raw []byte, opts ParseOptions) (*Vote, error) {
	return parseVoteWindow(newWindow(raw), opts)
}

func parseVoteWindow(w window, opts ParseOptions) (*Vote, error) {
	vote := &Vote{
		StableUptime:           -1,
		StableMTBF:             -1,
		FastBandwidth:          -1,
		GuardWFU:               -1,
		GuardTK:                -1,
		GuardBandwidthIncExits: -1,
		GuardBandwidthExcExits: -1,
		EnoughMTBFInfo:         -1,
		IgnoringAdvertisedBws:  -1,
	}
	annotations, body, err := splitAnnotations(w)
	if err != nil {
		return nil, err
	}
	vote.Annotations = annotations

	tally, err := tallyKeywords(body, false)
	if err != nil {
		return nil, err
	}
	if err := tally.checkExactlyOnce(voteExactlyOnce...); err != nil {
		return nil, err
	}
	if err := tally.checkAtMostOnce(voteAtMostOnce...); err != nil {
		return nil, err
	}
	if err := tally.checkFirst(KwNetworkStatusVersion); err != nil {
		return nil, err
	}

	secs := splitSections(body, false)
	header := &sectionParser{
		opts:         opts,
		docName:      "vote",
		assign:       vote.assignCertBlock,
		unrecognized: &vote.UnrecognizedLines,
	}
	header.handlers = vote.headerHandlers(header)
	if err := header.scan(secs.header); err != nil {
		return nil, err
	}
	if err := vote.parseStatusEntries(secs.body, false, opts, &vote.UnrecognizedLines); err != nil {
		return nil, err
	}
	footer := &sectionParser{
		opts:         opts,
		docName:      "vote",
		assign:       vote.assignSignatureBlock,
		unrecognized: &vote.UnrecognizedLines,
	}
	footer.handlers = vote.footerHandlers(footer)
	if err := footer.scan(secs.footer); err != nil {
		return nil, err
	}

	if vote.DigestSHA1Hex, err = digestSHA1Hex(body, digestStartToken, digestEndToken); err != nil {
		return nil, err
	}
	if err := vote.checkValidityWindow(); err != nil {
		return nil, err
	}
	return vote, nil
}

func (v *Vote) headerHandlers(p *sectionParser) map[Keyword]lineHandler {
	return map[Keyword]lineHandler{
		KwNetworkStatusVersion:     v.handleNetworkStatusVersion,
		KwVoteStatus:               v.handleVoteStatus,
		KwConsensusMethods:         v.handleConsensusMethods,
		KwPublished:                v.handlePublished,
		KwValidAfter:               v.handleValidAfter,
		KwFreshUntil:               v.handleFreshUntil,
		KwValidUntil:               v.handleValidUntil,
		KwVotingDelay:              v.handleVotingDelay,
		KwClientVersions:           v.handleClientVersions,
		KwServerVersions:           v.handleServerVersions,
		KwPackage:                  v.handlePackage,
		KwKnownFlags:               v.handleKnownFlags,
		KwFlagThresholds:           v.handleFlagThresholds,
		KwParams:                   v.handleParams,
		KwDirSource:                v.handleDirSource,
		KwContact:                  v.handleContact,
		KwDirKeyCertificateVersion: v.handleDirKeyCertificateVersion,
		KwDirAddress:               v.handleDirAddress,
		KwFingerprint:              v.handleFingerprint,
		KwLegacyDirKey:             v.handleLegacyDirKey,
		KwDirKeyPublished:          v.handleDirKeyPublished,
		KwDirKeyExpires:            v.handleDirKeyExpires,
		KwDirIdentityKey:           v.declareCert(p, KwDirIdentityKey),
		KwDirSigningKey:            v.declareCert(p, KwDirSigningKey),
		KwDirKeyCrosscert:          v.declareCert(p, KwDirKeyCrosscert),
		KwDirKeyCertification:      v.declareCert(p, KwDirKeyCertification),
	}
}

func (v *Vote) footerHandlers(p *sectionParser) map[Keyword]lineHandler {
	return map[Keyword]lineHandler{
		KwDirectoryFooter: func(string, []string) error { return nil },
		KwDirectorySignature: func(line string, parts []string) error {
			return v.handleDirectorySignature(p, line, parts)
		},
	}
}

func (v *Vote) handleNetworkStatusVersion(line string, parts []string) error {
	if line != "network-status-version 3" {
		return fieldErr(line, "illegal network status version number")
	}
	v.NetworkStatusVersion = 3
	return nil
}

func (v *Vote) handleVoteStatus(line string, parts []string) error {
	if len(parts) != 2 || parts[1] != "vote" {
		return fieldErr(line, "document is not a vote")
	}
	return nil
}

func (v *Vote) handleConsensusMethods(line string, parts []string) error {
	if len(parts) < 2 {
		return fieldErr(line, "illegal consensus-methods line")
	}
	methods := make([]int, 0, len(parts)-1)
	for _, part := range parts[1:] {
		method, err := strconv.Atoi(part)
		if err != nil || method < 1 {
			return fieldErr(line, "illegal consensus method number")
		}
		methods = append(methods, method)
	}
	v.ConsensusMethods = methods
	return nil
}

func (v *Vote) handlePublished(line string, parts []string) error {
	ts, err := parseTimestampAt(line, parts, 1)
	if err != nil {
		return err
	}
	v.Published = ts
	return nil
}

func (v *Vote) handlePackage(line string, parts []string) error {
	if len(parts) < 5 {
		return fieldErr(line, "wrong number of values in package line")
	}
	v.PackageLines = append(v.PackageLines, strings.TrimPrefix(line, "package "))
	return nil
}

func (v *Vote) handleFlagThresholds(line string, parts []string) error {
	if len(parts) < 2 {
		return fieldErr(line, "no flag thresholds")
	}
	thresholds, err := parseStringPairs(line, parts, 1)
	if err != nil {
		return err
	}
	for key, value := range thresholds {
		var err error
		switch key {
		case "stable-uptime":
			v.StableUptime, err = parseInt64(value)
		case "stable-mtbf":
			v.StableMTBF, err = parseInt64(value)
		case "fast-speed":
			v.FastBandwidth, err = parseInt64(value)
		case "guard-wfu":
			v.GuardWFU, err = strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		case "guard-tk":
			v.GuardTK, err = parseInt64(value)
		case "guard-bw-inc-exits":
			v.GuardBandwidthIncExits, err = parseInt64(value)
		case "guard-bw-exc-exits":
			v.GuardBandwidthExcExits, err = parseInt64(value)
		case "enough-mtbf":
			v.EnoughMTBFInfo, err = strconv.Atoi(value)
		case "ignoring-advertised-bws":
			v.IgnoringAdvertisedBws, err = strconv.Atoi(value)
		default:
			// Future thresholds pass through unparsed.
		}
		if err != nil {
			return fieldErr(line, "illegal flag threshold value")
		}
	}
	return nil
}

func (v *Vote) handleDirSource(line string, parts []string) error {
	if len(parts) != 7 {
		return fieldErr(line, "illegal dir-source line in vote")
	}
	var err error
	if v.Nickname, err = parseNickname(line, parts[1]); err != nil {
		return err
	}
	if v.Identity, err = parseFingerprint(line, parts[2]); err != nil {
		return err
	}
	if parts[3] == "" {
		return fieldErr(line, "illegal hostname")
	}
	v.Hostname = parts[3]
	if v.Address, err = parseIPv4(line, parts[4]); err != nil {
		return err
	}
	if v.DirPort, err = parsePort(line, parts[5]); err != nil {
		return err
	}
	if v.ORPort, err = parsePort(line, parts[6]); err != nil {
		return err
	}
	return nil
}

func (v *Vote) handleContact(line string, parts []string) error {
	if len(line) > len("contact ") {
		v.Contact = line[len("contact "):]
	}
	return nil
}

func (v *Vote) handleDirKeyCertificateVersion(line string, parts []string) error {
	if len(parts) != 2 {
		return fieldErr(line, "illegal dir-key-certificate-version line")
	}
	version, err := strconv.Atoi(parts[1])
	if err != nil || version < 1 {
		return fieldErr(line, "illegal dir key certificate version")
	}
	v.DirKeyCertificateVersion = version
	return nil
}

func (v *Vote) handleDirAddress(line string, parts []string) error {
	// Nothing to learn here; this line has not been observed in the wild
	// yet. Recognized so it neither fails strict parses nor lands in the
	// unrecognized list.
	return nil
}

func (v *Vote) handleFingerprint(line string, parts []string) error {
	// The fingerprint is already known from the dir-source line, but the
	// value must still be well-formed.
	if len(parts) != 2 {
		return fieldErr(line, "illegal fingerprint line in vote")
	}
	_, err := parseFingerprint(line, parts[1])
	return err
}

func (v *Vote) handleLegacyDirKey(line string, parts []string) error {
	if len(parts) != 2 {
		return fieldErr(line, "illegal legacy-dir-key line")
	}
	var err error
	v.LegacyDirKey, err = parseFingerprint(line, parts[1])
	return err
}

func (v *Vote) handleDirKeyPublished(line string, parts []string) error {
	ts, err := parseTimestampAt(line, parts, 1)
	if err != nil {
		return err
	}
	v.DirKeyPublished = ts
	return nil
}

func (v *Vote) handleDirKeyExpires(line string, parts []string) error {
	ts, err := parseTimestampAt(line, parts, 1)
	if err != nil {
		return err
	}
	v.DirKeyExpires = ts
	return nil
}

// declareCert builds the handler for a bare certificate keyword line that
// a PEM block must follow.
func (v *Vote) declareCert(p *sectionParser, k Keyword) lineHandler {
	return func(line string, parts []string) error {
		if line != k.String() {
			return fieldErr(line, "illegal line")
		}
		p.expectCrypto(k)
		return nil
	}
}

func (v *Vote) assignCertBlock(owner Keyword, block string) error {
	switch owner {
	case KwDirIdentityKey:
		v.DirIdentityKey = block
	case KwDirSigningKey:
		v.DirSigningKey = block
	case KwDirKeyCrosscert:
		v.DirKeyCrosscert = block
	case KwDirKeyCertification:
		v.DirKeyCertification = block
	default:
		return parseErr(ErrMalformedInput, "unrecognized crypto block in vote")
	}
	return nil
}

func (v *Vote) handleDirectorySignature(p *sectionParser, line string, parts []string) error {
	sig, err := parseDirectorySignatureLine(line, parts)
	if err != nil {
		return err
	}
	v.Signatures = append(v.Signatures, sig)
	p.expectCrypto(KwDirectorySignature)
	return nil
}

func (v *Vote) assignSignatureBlock(owner Keyword, block string) error {
	if owner != KwDirectorySignature || len(v.Signatures) == 0 {
		return parseErr(ErrMalformedInput, "unrecognized crypto block in vote")
	}
	v.Signatures[len(v.Signatures)-1].Signature = block
	return nil
}
