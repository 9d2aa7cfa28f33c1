package netstatus

import "strings"

// DirSourceEntry describes one authority listed in a consensus.
type DirSourceEntry struct {
	Nickname string
	Identity string
	Hostname string
	Address  string
	DirPort  int
	ORPort   int
	Contact  string
	// VoteDigest identifies the vote this authority contributed; legacy
	// entries carry none.
	VoteDigest string
	// Legacy marks a "-legacy" entry published during a signing key
	// rollover.
	Legacy bool
}

// parseDirSourceEntries splits the consensus authority section on
// dir-source lines and parses each entry.
func parseDirSourceEntries(w window, opts ParseOptions, unrecognized *[]string) ([]*DirSourceEntry, error) {
	if w.empty() {
		return nil, nil
	}
	var sources []*DirSourceEntry
	for _, ew := range splitByKeyword(w, KwDirSource, true) {
		src, err := parseDirSourceEntry(ew, opts, unrecognized)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func parseDirSourceEntry(w window, opts ParseOptions, unrecognized *[]string) (*DirSourceEntry, error) {
	src := &DirSourceEntry{}
	for _, line := range splitLines(w.str()) {
		line = stripOpt(line)
		parts := fields(line)
		if len(parts) == 0 {
			return nil, &ParseError{Kind: ErrMalformedInput,
				Message: "illegal keyword", Line: line}
		}
		var err error
		switch keywordOf(parts[0]) {
		case KwDirSource:
			err = src.parseDirSourceLine(line, parts)
		case KwContact:
			src.Contact = strings.TrimPrefix(line, "contact")
			src.Contact = strings.TrimPrefix(src.Contact, " ")
		case KwVoteDigest:
			if len(parts) != 2 {
				return nil, fieldErr(line, "illegal vote digest")
			}
			if src.VoteDigest, err = parseFingerprint(line, parts[1]); err != nil {
				return nil, err
			}
		default:
			if !opts.Lenient {
				return nil, &ParseError{Kind: ErrUnrecognizedKeyword,
					Message: "unrecognized line in dir-source entry", Line: line}
			}
			*unrecognized = append(*unrecognized, line)
		}
		if err != nil {
			return nil, err
		}
	}
	if !src.Legacy && src.VoteDigest == "" {
		return nil, parseErr(ErrGrammarViolation,
			"dir-source entry for %s has no vote-digest line", src.Nickname)
	}
	return src, nil
}

func (s *DirSourceEntry) parseDirSourceLine(line string, parts []string) error {
	if len(parts) != 7 {
		return fieldErr(line, "illegal dir-source line")
	}
	s.Legacy = strings.HasSuffix(parts[1], "-legacy")
	nickname := strings.TrimSuffix(parts[1], "-legacy")
	var err error
	if s.Nickname, err = parseNickname(line, nickname); err != nil {
		return err
	}
	if s.Identity, err = parseFingerprint(line, parts[2]); err != nil {
		return err
	}
	if parts[3] == "" {
		return fieldErr(line, "illegal hostname")
	}
	s.Hostname = parts[3]
	if s.Address, err = parseIPv4(line, parts[4]); err != nil {
		return err
	}
	if s.DirPort, err = parsePort(line, parts[5]); err != nil {
		return err
	}
	if s.ORPort, err = parsePort(line, parts[6]); err != nil {
		return err
	}
	return nil
}
