package netstatus

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Digest tokens shared by votes and consensuses. The range hashed runs
// from the first byte of startToken through the last byte of endToken,
// taken from the annotation-stripped document bytes with no normalization
// whatsoever: the result must match what every other implementation
// computes from the same bytes.
const (
	digestStartToken = "network-status-version "
	digestEndToken   = "\ndirectory-signature "
)

// digestRange locates the [start, end) byte range delimited by the
// tokens. endToken == "" means "to end of buffer". Returns ok=false when
// the end token is absent, in which case no digest is computed and the
// document is still valid.
func digestRange(ascii string, startToken, endToken string) (start, end int, ok bool, err error) {
	if endToken == "" {
		end = len(ascii)
	} else {
		i := strings.Index(ascii, endToken)
		if i < 0 {
			return 0, 0, false, nil
		}
		end = i + len(endToken)
	}
	start = strings.Index(ascii, startToken)
	if start < 0 {
		return 0, 0, false, parseErr(ErrDigestUnavailable,
			"could not calculate descriptor digest: start token not found")
	}
	if end <= start {
		return 0, 0, false, parseErr(ErrDigestRangeInvalid,
			"could not calculate descriptor digest: end token precedes start token")
	}
	return start, end, true, nil
}

// digestSHA1Hex hashes the token-delimited range of w and returns the
// lowercase hex digest, or "" when the end token is absent.
func digestSHA1Hex(w window, startToken, endToken string) (string, error) {
	start, end, ok, err := digestRange(w.str(), startToken, endToken)
	if err != nil || !ok {
		return "", err
	}
	sum := sha1.Sum(w.view()[start:end])
	return hex.EncodeToString(sum[:]), nil
}

// digestSHA256Base64 hashes the token-delimited range of w and returns
// the unpadded base64 digest, or "" when the end token is absent.
func digestSHA256Base64(w window, startToken, endToken string) (string, error) {
	start, end, ok, err := digestRange(w.str(), startToken, endToken)
	if err != nil || !ok {
		return "", err
	}
	sum := sha256.Sum256(w.view()[start:end])
	return base64.RawStdEncoding.EncodeToString(sum[:]), nil
}
