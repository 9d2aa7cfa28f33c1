package netstatus

import (
	"errors"
	"testing"
)

// ============================================================
// Keyword Tally Tests
// ============================================================

func tallyOf(t *testing.T, doc string) *keywordTally {
	t.Helper()
	tally, err := tallyKeywords(newWindow([]byte(doc)), false)
	if err != nil {
		t.Fatalf("tallyKeywords failed: %v", err)
	}
	return tally
}

func TestTallyKeywords_Counts(t *testing.T) {
	tally := tallyOf(t, "network-status-version 3\nvote-status vote\nparams a=1\nparams b=2\n")
	if n := tally.count(KwNetworkStatusVersion); n != 1 {
		t.Errorf("count(network-status-version) = %d, want 1", n)
	}
	if n := tally.count(KwParams); n != 2 {
		t.Errorf("count(params) = %d, want 2", n)
	}
	if n := tally.count(KwKnownFlags); n != 0 {
		t.Errorf("count(known-flags) = %d, want 0", n)
	}
	if tally.first != KwNetworkStatusVersion {
		t.Errorf("first = %v, want network-status-version", tally.first)
	}
	if tally.last != KwParams {
		t.Errorf("last = %v, want params", tally.last)
	}
}

func TestTallyKeywords_SkipsCryptoBlocks(t *testing.T) {
	// Payload lines between the markers must never be keyword-classified,
	// even when they look like grammar lines.
	doc := "dir-identity-key\n" +
		"-----BEGIN RSA PUBLIC KEY-----\n" +
		"params notakeyvalue\n" +
		"vote-status vote\n" +
		"-----END RSA PUBLIC KEY-----\n" +
		"contact someone\n"
	tally := tallyOf(t, doc)
	if n := tally.count(KwParams); n != 0 {
		t.Errorf("count(params) = %d, want 0", n)
	}
	if n := tally.count(KwVoteStatus); n != 0 {
		t.Errorf("count(vote-status) = %d, want 0", n)
	}
	if tally.last != KwContact {
		t.Errorf("last = %v, want contact", tally.last)
	}
}

func TestTallyKeywords_SkipsAnnotations(t *testing.T) {
	tally := tallyOf(t, "@type something 1.0\nnetwork-status-version 3\n")
	if tally.first != KwNetworkStatusVersion {
		t.Errorf("first = %v, want network-status-version", tally.first)
	}
}

func TestTallyKeywords_StripsOptPrefix(t *testing.T) {
	tally := tallyOf(t, "opt fingerprint ABCD\n")
	if n := tally.count(KwFingerprint); n != 1 {
		t.Errorf("count(fingerprint) = %d, want 1", n)
	}
}

func TestTallyKeywords_UnknownKeyword(t *testing.T) {
	tally := tallyOf(t, "nonsense-line with values\nfingerprint ABCD\n")
	if n := tally.count(KeywordUnknown); n != 1 {
		t.Errorf("count(unknown) = %d, want 1", n)
	}
}

func TestTallyKeywords_BlankLines(t *testing.T) {
	doc := "fingerprint ABCD\n\ncontact someone\n"
	if _, err := tallyKeywords(newWindow([]byte(doc)), false); err == nil {
		t.Error("blank line accepted in strict line scan")
	}
	tally, err := tallyKeywords(newWindow([]byte(doc)), true)
	if err != nil {
		t.Fatalf("tallyKeywords failed with blank lines allowed: %v", err)
	}
	if n := tally.count(KwContact); n != 1 {
		t.Errorf("count(contact) = %d, want 1", n)
	}
}

func TestTallyKeywords_EmptyWindow(t *testing.T) {
	_, err := tallyKeywords(newWindow(nil), false)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ErrEmptyInput {
		t.Fatalf("err = %v, want empty input", err)
	}
}

func TestTallyKeywords_IllegalKeyword(t *testing.T) {
	_, err := tallyKeywords(newWindow([]byte(" leading-space value\n")), false)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ErrMalformedInput {
		t.Fatalf("err = %v, want malformed input", err)
	}
}

// ============================================================
// Grammar Assertion Tests
// ============================================================

func TestTally_Assertions(t *testing.T) {
	tally := tallyOf(t, "network-status-version 3\nvote-status vote\nparams a=1\nparams b=2\n")

	tests := []struct {
		name  string
		check func() error
		ok    bool
	}{
		{"exactly once present", func() error { return tally.checkExactlyOnce(KwVoteStatus) }, true},
		{"exactly once absent", func() error { return tally.checkExactlyOnce(KwKnownFlags) }, false},
		{"exactly once repeated", func() error { return tally.checkExactlyOnce(KwParams) }, false},
		{"at most once absent", func() error { return tally.checkAtMostOnce(KwKnownFlags) }, true},
		{"at most once repeated", func() error { return tally.checkAtMostOnce(KwParams) }, false},
		{"at least once repeated", func() error { return tally.checkAtLeastOnce(KwParams) }, true},
		{"at least once absent", func() error { return tally.checkAtLeastOnce(KwKnownFlags) }, false},
		{"first matches", func() error { return tally.checkFirst(KwNetworkStatusVersion) }, true},
		{"first mismatch", func() error { return tally.checkFirst(KwVoteStatus) }, false},
		{"last matches", func() error { return tally.checkLast(KwParams) }, true},
		{"last mismatch", func() error { return tally.checkLast(KwVoteStatus) }, false},
		{"depends-on satisfied", func() error { return tally.checkDependsOn(KwParams, KwVoteStatus) }, true},
		{"depends-on dependent absent", func() error { return tally.checkDependsOn(KwKnownFlags, KwVoteStatus) }, true},
		{"depends-on violated", func() error { return tally.checkDependsOn(KwParams, KwKnownFlags) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				var perr *ParseError
				if !errors.As(err, &perr) || perr.Kind != ErrGrammarViolation {
					t.Fatalf("err = %v, want grammar violation", err)
				}
			}
		})
	}
}

// ============================================================
// Keyword Lookup Tests
// ============================================================

func TestKeywordOf(t *testing.T) {
	tests := []struct {
		text string
		want Keyword
	}{
		{"network-status-version", KwNetworkStatusVersion},
		{"directory-signature", KwDirectorySignature},
		{"r", KwR},
		{"m", KwM},
		{"opt", KwOpt},
		{"Network-Status-Version", KeywordUnknown},
		{"not-a-keyword", KeywordUnknown},
		{"", KeywordUnknown},
	}
	for _, tt := range tests {
		if got := keywordOf(tt.text); got != tt.want {
			t.Errorf("keywordOf(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestKeywordString(t *testing.T) {
	if got := KwVoteStatus.String(); got != "vote-status" {
		t.Errorf("KwVoteStatus.String() = %q", got)
	}
	if got := KeywordEmpty.String(); got != "<empty>" {
		t.Errorf("KeywordEmpty.String() = %q", got)
	}
	if got := KeywordUnknown.String(); got != "<unknown>" {
		t.Errorf("KeywordUnknown.String() = %q", got)
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		line, want string
	}{
		{"fingerprint ABCD", "fingerprint"},
		{"fingerprint\tABCD", "fingerprint"},
		{"directory-footer", "directory-footer"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstToken(tt.line); got != tt.want {
			t.Errorf("firstToken(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
