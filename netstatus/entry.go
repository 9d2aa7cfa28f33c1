package netstatus

// StatusEntry is one per-relay entry from a vote or consensus body.
type StatusEntry struct {
	Nickname    string
	Fingerprint string
	// DescriptorDigest is empty in microdesc-flavored consensuses, whose
	// "r" lines omit it.
	DescriptorDigest string
	Published        string
	Address          string
	ORPort           int
	DirPort          int

	// ORAddresses holds additional "a" line addresses verbatim.
	ORAddresses []string
	Flags       []string
	Version     string

	Bandwidth  int64
	Measured   int64
	Unmeasured bool

	DefaultPolicy string
	PortList      string

	// MicrodescDigests holds "m" line values verbatim: microdescriptor
	// hashes in microdesc consensuses, method lists plus hashes in votes.
	MicrodescDigests []string
}

// parseStatusEntry parses one relay entry window: an "r" line followed by
// optional "a", "s", "v", "w" and "p" lines. Unrecognized lines follow
// the parse-wide mode and accumulate on the owning document.
func parseStatusEntry(w window, microdesc bool, opts ParseOptions, unrecognized *[]string) (*StatusEntry, error) {
	entry := &StatusEntry{Bandwidth: -1, Measured: -1}
	first := true
	for _, line := range splitLines(w.str()) {
		line = stripOpt(line)
		parts := fields(line)
		if len(parts) == 0 {
			return nil, &ParseError{Kind: ErrMalformedInput,
				Message: "illegal keyword", Line: line}
		}
		keyword := keywordOf(parts[0])
		if first && keyword != KwR {
			return nil, &ParseError{Kind: ErrMalformedInput,
				Message: "status entry must start with an r line", Line: line}
		}
		first = false
		var err error
		switch keyword {
		case KwR:
			err = entry.parseRLine(line, parts, microdesc)
		case KwA:
			err = entry.parseALine(line, parts)
		case KwS:
			entry.Flags = append([]string{}, parts[1:]...)
		case KwV:
			err = entry.parseVLine(line)
		case KwW:
			err = entry.parseWLine(line, parts)
		case KwP:
			err = entry.parsePLine(line, parts)
		case KwM:
			if len(parts) < 2 {
				return nil, fieldErr(line, "illegal m line")
			}
			entry.MicrodescDigests = append(entry.MicrodescDigests, line[2:])
		default:
			if !opts.Lenient {
				return nil, &ParseError{Kind: ErrUnrecognizedKeyword,
					Message: "unrecognized line in status entry", Line: line}
			}
			*unrecognized = append(*unrecognized, line)
		}
		if err != nil {
			return nil, err
		}
	}
	return entry, nil
}

func (e *StatusEntry) parseRLine(line string, parts []string, microdesc bool) error {
	// Microdesc consensus entries omit the descriptor digest.
	want := 9
	if microdesc {
		want = 8
	}
	if len(parts) != want {
		return fieldErr(line, "r line with wrong number of values")
	}
	var err error
	if e.Nickname, err = parseNickname(line, parts[1]); err != nil {
		return err
	}
	if e.Fingerprint, err = parseBase64Fingerprint(line, parts[2]); err != nil {
		return err
	}
	next := 3
	if !microdesc {
		if e.DescriptorDigest, err = parseBase64Fingerprint(line, parts[3]); err != nil {
			return err
		}
		next = 4
	}
	published, err := parseTimestampAt(line, parts, next)
	if err != nil {
		return err
	}
	e.Published = published.Format(timestampLayout)
	if e.Address, err = parseIPv4(line, parts[next+2]); err != nil {
		return err
	}
	if e.ORPort, err = parsePort(line, parts[next+3]); err != nil {
		return err
	}
	if e.DirPort, err = parsePort(line, parts[next+4]); err != nil {
		return err
	}
	return nil
}

func (e *StatusEntry) parseALine(line string, parts []string) error {
	if len(parts) != 2 {
		return fieldErr(line, "illegal a line")
	}
	e.ORAddresses = append(e.ORAddresses, parts[1])
	return nil
}

func (e *StatusEntry) parseVLine(line string) error {
	if len(line) < 3 {
		return fieldErr(line, "illegal v line")
	}
	e.Version = line[2:]
	return nil
}

func (e *StatusEntry) parseWLine(line string, parts []string) error {
	pairs, err := parseStringPairs(line, parts, 1)
	if err != nil {
		return err
	}
	if bw, ok := pairs["Bandwidth"]; ok {
		if e.Bandwidth, err = parseInt64(bw); err != nil {
			return fieldErr(line, "illegal bandwidth value")
		}
	}
	if m, ok := pairs["Measured"]; ok {
		if e.Measured, err = parseInt64(m); err != nil {
			return fieldErr(line, "illegal measured bandwidth value")
		}
	}
	if u, ok := pairs["Unmeasured"]; ok {
		if u != "1" {
			return fieldErr(line, "illegal unmeasured value")
		}
		e.Unmeasured = true
	}
	return nil
}

func (e *StatusEntry) parsePLine(line string, parts []string) error {
	if len(parts) != 3 || (parts[1] != "accept" && parts[1] != "reject") {
		return fieldErr(line, "illegal p line")
	}
	for _, c := range parts[2] {
		if !(c >= '0' && c <= '9' || c == ',' || c == '-') {
			return fieldErr(line, "illegal port list")
		}
	}
	e.DefaultPolicy = parts[1]
	e.PortList = parts[2]
	return nil
}
