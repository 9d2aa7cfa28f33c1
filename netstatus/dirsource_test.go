package netstatus

import (
	"errors"
	"testing"
)

// ============================================================
// Dir-Source Entry Tests
// ============================================================

func TestParseDirSourceEntries(t *testing.T) {
	doc := "dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 9131 9101\n" +
		"contact 1024D/28988BF5 arma mit edu\n" +
		"vote-digest 0D1E2F3A4B5C6D7E8F90A1B2C3D4E5F60718293A\n" +
		"dir-source tor26 14C131DFC5C6F93646BE72FA1401C02A8DF2E8B4 86.59.21.38 86.59.21.38 80 443\n" +
		"vote-digest A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D4\n"
	sources, err := parseDirSourceEntries(newWindow([]byte(doc)), ParseOptions{}, nil)
	if err != nil {
		t.Fatalf("parseDirSourceEntries failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	moria := sources[0]
	if moria.Nickname != "moria1" || moria.Legacy {
		t.Errorf("moria1 = %+v", moria)
	}
	if moria.Identity != "D586D18309DED4CD6D57C18FDB97EFA96D330566" {
		t.Errorf("Identity = %q", moria.Identity)
	}
	if moria.Hostname != "128.31.0.39" || moria.Address != "128.31.0.39" {
		t.Errorf("host = %q %q", moria.Hostname, moria.Address)
	}
	if moria.DirPort != 9131 || moria.ORPort != 9101 {
		t.Errorf("ports = %d %d", moria.DirPort, moria.ORPort)
	}
	if moria.Contact != "1024D/28988BF5 arma mit edu" {
		t.Errorf("Contact = %q", moria.Contact)
	}
	if sources[1].Contact != "" {
		t.Errorf("tor26 contact = %q, want empty", sources[1].Contact)
	}
}

func TestParseDirSourceEntry_Legacy(t *testing.T) {
	// Legacy entries appear during signing key rollovers and carry no
	// vote-digest.
	doc := "dir-source dizum-legacy E2A2AF570166665D738736D0DD58169CC61D8A8B 194.109.206.212 194.109.206.212 80 443\n"
	sources, err := parseDirSourceEntries(newWindow([]byte(doc)), ParseOptions{}, nil)
	if err != nil {
		t.Fatalf("parseDirSourceEntries failed: %v", err)
	}
	if len(sources) != 1 || !sources[0].Legacy {
		t.Fatalf("sources = %+v", sources)
	}
	if sources[0].Nickname != "dizum" {
		t.Errorf("Nickname = %q, want dizum", sources[0].Nickname)
	}
	if sources[0].VoteDigest != "" {
		t.Errorf("VoteDigest = %q, want empty", sources[0].VoteDigest)
	}
}

func TestParseDirSourceEntry_MissingVoteDigest(t *testing.T) {
	doc := "dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 9131 9101\n"
	_, err := parseDirSourceEntries(newWindow([]byte(doc)), ParseOptions{}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ErrGrammarViolation {
		t.Fatalf("err = %v, want grammar violation", err)
	}
}

func TestParseDirSourceEntry_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong value count",
			"dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 9131 9101\n"},
		{"bad identity",
			"dir-source moria1 nothex 128.31.0.39 128.31.0.39 9131 9101\n"},
		{"bad address",
			"dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.999 9131 9101\n"},
		{"bad dir port",
			"dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 91310 9101\n"},
		{"bad vote digest",
			"dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 9131 9101\nvote-digest short\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDirSourceEntries(newWindow([]byte(tt.doc)), ParseOptions{}, nil)
			var perr *ParseError
			if !errors.As(err, &perr) || perr.Kind != ErrMalformedField {
				t.Fatalf("err = %v, want malformed field", err)
			}
		})
	}
}

func TestParseDirSourceEntry_UnrecognizedLine(t *testing.T) {
	doc := "dir-source moria1 D586D18309DED4CD6D57C18FDB97EFA96D330566 128.31.0.39 128.31.0.39 9131 9101\n" +
		"vote-digest 0D1E2F3A4B5C6D7E8F90A1B2C3D4E5F60718293A\n" +
		"shiny-new-line value\n"
	_, err := parseDirSourceEntries(newWindow([]byte(doc)), ParseOptions{}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ErrUnrecognizedKeyword {
		t.Fatalf("strict err = %v, want unrecognized keyword", err)
	}

	var unrecognized []string
	sources, err := parseDirSourceEntries(newWindow([]byte(doc)), ParseOptions{Lenient: true}, &unrecognized)
	if err != nil {
		t.Fatalf("lenient parse failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
	if len(unrecognized) != 1 || unrecognized[0] != "shiny-new-line value" {
		t.Errorf("unrecognized = %v", unrecognized)
	}
}

// ============================================================
// Error Matching Tests
// ============================================================

func TestParseErrorIs(t *testing.T) {
	err := fieldErr("some line", "bad value")
	if !errors.Is(err, &ParseError{Kind: ErrMalformedField}) {
		t.Error("errors.Is did not match on kind")
	}
	if errors.Is(err, &ParseError{Kind: ErrGrammarViolation}) {
		t.Error("errors.Is matched a different kind")
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := fieldErr("w Bandwidth=fast", "illegal bandwidth value")
	want := "malformed-field: illegal bandwidth value in line 'w Bandwidth=fast'"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	err = parseErr(ErrEmptyInput, "descriptor is empty")
	if got := err.Error(); got != "empty-input: descriptor is empty" {
		t.Errorf("Error() = %q", got)
	}
}
