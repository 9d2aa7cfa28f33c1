package netstatus

import (
	"encoding/base64"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Field-level validators shared by the vote and consensus parsers. Every
// failure cites the offending raw line.

const timestampLayout = "2006-01-02 15:04:05"

// parseTimestamp parses the two-token "YYYY-MM-DD HH:MM:SS" timestamp
// form used throughout the format family. Timestamps are UTC.
func parseTimestamp(line, dateTok, timeTok string) (time.Time, error) {
	if len(dateTok) != 10 || len(timeTok) != 8 {
		return time.Time{}, fieldErr(line, "illegal timestamp format")
	}
	ts, err := time.ParseInLocation(timestampLayout, dateTok+" "+timeTok, time.UTC)
	if err != nil {
		return time.Time{}, fieldErr(line, "illegal timestamp format")
	}
	return ts, nil
}

// parseTimestampAt parses a timestamp spanning parts[i] and parts[i+1].
func parseTimestampAt(line string, parts []string, i int) (time.Time, error) {
	if len(parts) < i+2 {
		return time.Time{}, fieldErr(line, "missing timestamp")
	}
	return parseTimestamp(line, parts[i], parts[i+1])
}

// parseFingerprint validates a 20-byte uppercase hex fingerprint.
func parseFingerprint(line, s string) (string, error) {
	if len(s) != 40 {
		return "", fieldErr(line, "illegal hex string")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return "", fieldErr(line, "illegal hex string")
		}
	}
	return s, nil
}

// parseBase64Fingerprint decodes an unpadded base64 encoding of 20 bytes
// (as used in relay status entries) and returns it as uppercase hex.
func parseBase64Fingerprint(line, s string) (string, error) {
	raw, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil || len(raw) != 20 {
		return "", fieldErr(line, "'%s' is not a valid base64-encoded 20-byte value", s)
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

// parseIPv4 validates a dotted-quad IPv4 address.
func parseIPv4(line, s string) (string, error) {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return "", fieldErr(line, "'%s' is not a valid IPv4 address", s)
	}
	for _, o := range octets {
		if len(o) == 0 || len(o) > 3 {
			return "", fieldErr(line, "'%s' is not a valid IPv4 address", s)
		}
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 || n > 255 {
			return "", fieldErr(line, "'%s' is not a valid IPv4 address", s)
		}
	}
	return s, nil
}

// parsePort validates a 0..65535 port number.
func parsePort(line, s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 0 || port > 65535 {
		return 0, fieldErr(line, "'%s' is not a valid port number", s)
	}
	return port, nil
}

// parseNickname validates a 1..19 character alphanumeric relay nickname.
func parseNickname(line, s string) (string, error) {
	if len(s) < 1 || len(s) > 19 {
		return "", fieldErr(line, "illegal nickname '%s'", s)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return "", fieldErr(line, "illegal nickname '%s'", s)
		}
	}
	return s, nil
}

// parseVersions parses a recommended-versions line: a bare keyword means
// an empty list, one value token is a comma-separated list with no empty
// elements.
func parseVersions(line string, parts []string) ([]string, error) {
	switch len(parts) {
	case 1:
		return []string{}, nil
	case 2:
		versions := strings.Split(parts[1], ",")
		for _, v := range versions {
			if v == "" {
				return nil, fieldErr(line, "illegal versions")
			}
		}
		return versions, nil
	default:
		return nil, fieldErr(line, "illegal versions")
	}
}

// IntPair is one entry of an ordered key→integer mapping.
type IntPair struct {
	Key   string
	Value int
}

// parseIntPairs parses "key=value" tokens from parts[from:] into a
// key-sorted list.
func parseIntPairs(line string, parts []string, from int) ([]IntPair, error) {
	pairs := make([]IntPair, 0, len(parts)-from)
	for _, part := range parts[from:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			return nil, fieldErr(line, "illegal key-value pair '%s'", part)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fieldErr(line, "illegal value in key-value pair '%s'", part)
		}
		pairs = append(pairs, IntPair{Key: key, Value: n})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, nil
}

// parseStringPairs parses "key=value" tokens from parts[from:], keeping
// values as raw strings.
func parseStringPairs(line string, parts []string, from int) (map[string]string, error) {
	pairs := make(map[string]string, len(parts)-from)
	for _, part := range parts[from:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			return nil, fieldErr(line, "illegal key-value pair '%s'", part)
		}
		pairs[key] = value
	}
	return pairs, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// fields splits a grammar line on runs of spaces and tabs.
func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}

// splitLines yields the \n-separated lines of a window, without emitting
// a trailing empty line for a trailing newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
