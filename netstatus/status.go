package netstatus

import (
	"sort"
	"strings"
	"time"
)

// ParseOptions configures a single parse call and is threaded by value
// through the whole parse. The zero value is strict: unrecognized
// keywords abort the parse. Lenient parses collect unrecognized lines on
// the resulting document instead. Grammar and field violations fail in
// both modes.
type ParseOptions struct {
	Lenient bool
}

// NetworkStatus holds the fields shared by votes and consensuses. Values
// are immutable once the parser entry point returns and are safe to share
// across goroutines without synchronization.
type NetworkStatus struct {
	NetworkStatusVersion int

	ValidAfter  time.Time
	FreshUntil  time.Time
	ValidUntil  time.Time
	VoteSeconds int64
	DistSeconds int64

	KnownFlags                []string
	RecommendedClientVersions []string
	RecommendedServerVersions []string
	ConsensusParams           []IntPair

	// StatusEntries maps relay fingerprints to per-relay entries.
	StatusEntries map[string]*StatusEntry
	Signatures    []*DirectorySignature

	// DigestSHA1Hex is the document's identity digest, present whenever
	// the document carries a directory-signature marker.
	DigestSHA1Hex string

	Annotations       []string
	UnrecognizedLines []string
}

// Fingerprints returns the status entry fingerprints in sorted order.
func (ns *NetworkStatus) Fingerprints() []string {
	fps := make([]string, 0, len(ns.StatusEntries))
	for fp := range ns.StatusEntries {
		fps = append(fps, fp)
	}
	sort.Strings(fps)
	return fps
}

// lineHandler parses one dispatched grammar line. parts is the line split
// on spaces/tabs, with parts[0] the keyword.
type lineHandler func(line string, parts []string) error

// sectionParser drives the line scan of one document section (header,
// dir-source entries, or footer), dispatching each line by keyword
// through a format-specific handler table. PEM payload lines are
// accumulated between BEGIN/END markers and assigned to whichever
// preceding keyword declared that a block follows it; that pending
// keyword is explicit state, reset on every assignment.
type sectionParser struct {
	opts     ParseOptions
	docName  string
	handlers map[Keyword]lineHandler

	// pending names the keyword awaiting a crypto block; KeywordEmpty
	// means no block is expected.
	pending Keyword
	crypto  *strings.Builder
	// assign receives each completed crypto block with its owner.
	assign func(owner Keyword, block string) error

	unrecognized *[]string
}

// expectCrypto marks k as the owner of the next crypto block.
func (p *sectionParser) expectCrypto(k Keyword) {
	p.pending = k
}

// scan dispatches every line of w. An END marker without a preceding
// BEGIN, or reaching the end of the section still inside a block, is a
// hard error.
func (p *sectionParser) scan(w window) error {
	for _, line := range splitLines(w.str()) {
		switch {
		case line == "" || line[0] == '@':
			// Annotations were split off the document window already;
			// runs attached to a following sibling document are not
			// grammar lines of this one.
		case strings.HasPrefix(line, cryptoBeginPrefix):
			p.crypto = &strings.Builder{}
			p.crypto.WriteString(line)
			p.crypto.WriteByte('\n')
		case strings.HasPrefix(line, cryptoEndPrefix):
			if p.crypto == nil {
				return &ParseError{Kind: ErrMalformedInput,
					Message: "crypto block END marker without BEGIN", Line: line}
			}
			p.crypto.WriteString(line)
			p.crypto.WriteByte('\n')
			block := p.crypto.String()
			p.crypto = nil
			if p.pending == KeywordEmpty {
				return parseErr(ErrMalformedInput,
					"unrecognized crypto block in %s", p.docName)
			}
			if err := p.assign(p.pending, block); err != nil {
				return err
			}
			p.pending = KeywordEmpty
		case p.crypto != nil:
			p.crypto.WriteString(line)
			p.crypto.WriteByte('\n')
		default:
			// Strip the legacy prefix once, so dispatch and the handler's
			// value extraction see the same text.
			line = stripOpt(line)
			parts := fields(line)
			if len(parts) == 0 {
				return &ParseError{Kind: ErrMalformedInput,
					Message: "illegal keyword", Line: line}
			}
			handler, ok := p.handlers[keywordOf(parts[0])]
			if !ok {
				if !p.opts.Lenient {
					return &ParseError{Kind: ErrUnrecognizedKeyword,
						Message: "unrecognized line in " + p.docName, Line: line}
				}
				*p.unrecognized = append(*p.unrecognized, line)
				continue
			}
			if err := handler(line, parts); err != nil {
				return err
			}
		}
	}
	if p.crypto != nil {
		return parseErr(ErrMalformedInput,
			"unterminated crypto block in %s", p.docName)
	}
	return nil
}

// sections are the byte ranges of one document's header, optional
// dir-source entries, per-relay status entries, and footer.
type sections struct {
	header     window
	dirSources window
	body       window
	footer     window
}

// splitSections locates the section boundaries of a validated document
// window. The body opens at the first relay entry line, the footer at
// directory-footer or, for documents predating it, at the first
// directory-signature. withDirSources carves authority dir-source entries
// out of the header (consensuses list authorities there; in votes,
// dir-source is an ordinary header line).
func splitSections(w window, withDirSources bool) sections {
	ascii := w.str()
	end := w.len()
	footerStart := keywordStart(ascii, KwDirectoryFooter, 0)
	if footerStart < 0 {
		footerStart = keywordStart(ascii, KwDirectorySignature, 0)
	}
	if footerStart < 0 {
		footerStart = end
	}
	bodyStart := keywordStart(ascii, KwR, 0)
	if bodyStart < 0 || bodyStart > footerStart {
		bodyStart = footerStart
	}
	dirSourceStart := bodyStart
	if withDirSources {
		if i := keywordStart(ascii, KwDirSource, 0); i >= 0 && i < bodyStart {
			dirSourceStart = i
		}
	}
	return sections{
		header:     w.narrow(0, dirSourceStart),
		dirSources: w.narrow(dirSourceStart, bodyStart-dirSourceStart),
		body:       w.narrow(bodyStart, footerStart-bodyStart),
		footer:     w.narrow(footerStart, end-footerStart),
	}
}

// parseStatusEntries splits the body section on relay entry lines and
// parses each entry, indexing it by fingerprint.
func (ns *NetworkStatus) parseStatusEntries(body window, microdesc bool, opts ParseOptions, unrecognized *[]string) error {
	ns.StatusEntries = make(map[string]*StatusEntry)
	if body.empty() {
		return nil
	}
	for _, ew := range splitByKeyword(body, KwR, true) {
		entry, err := parseStatusEntry(ew, microdesc, opts, unrecognized)
		if err != nil {
			return err
		}
		ns.StatusEntries[entry.Fingerprint] = entry
	}
	return nil
}

// checkValidityWindow enforces validAfter < freshUntil <= validUntil.
func (ns *NetworkStatus) checkValidityWindow() error {
	if !ns.ValidAfter.Before(ns.FreshUntil) || ns.ValidUntil.Before(ns.FreshUntil) {
		return parseErr(ErrMalformedField,
			"illegal validity window: valid-after %s, fresh-until %s, valid-until %s",
			ns.ValidAfter.Format(timestampLayout),
			ns.FreshUntil.Format(timestampLayout),
			ns.ValidUntil.Format(timestampLayout))
	}
	return nil
}

// Shared header line handlers.

func (ns *NetworkStatus) handleValidAfter(line string, parts []string) error {
	ts, err := parseTimestampAt(line, parts, 1)
	if err != nil {
		return err
	}
	ns.ValidAfter = ts
	return nil
}

func (ns *NetworkStatus) handleFreshUntil(line string, parts []string) error {
	ts, err := parseTimestampAt(line, parts, 1)
	if err != nil {
		return err
	}
	ns.FreshUntil = ts
	return nil
}

func (ns *NetworkStatus) handleValidUntil(line string, parts []string) error {
	ts, err := parseTimestampAt(line, parts, 1)
	if err != nil {
		return err
	}
	ns.ValidUntil = ts
	return nil
}

func (ns *NetworkStatus) handleVotingDelay(line string, parts []string) error {
	if len(parts) != 3 {
		return fieldErr(line, "wrong number of values")
	}
	vote, err1 := parseInt64(parts[1])
	dist, err2 := parseInt64(parts[2])
	if err1 != nil || err2 != nil {
		return fieldErr(line, "illegal voting delay values")
	}
	ns.VoteSeconds = vote
	ns.DistSeconds = dist
	return nil
}

func (ns *NetworkStatus) handleClientVersions(line string, parts []string) error {
	versions, err := parseVersions(line, parts)
	if err != nil {
		return err
	}
	ns.RecommendedClientVersions = versions
	return nil
}

func (ns *NetworkStatus) handleServerVersions(line string, parts []string) error {
	versions, err := parseVersions(line, parts)
	if err != nil {
		return err
	}
	ns.RecommendedServerVersions = versions
	return nil
}

func (ns *NetworkStatus) handleKnownFlags(line string, parts []string) error {
	if len(parts) < 2 {
		return fieldErr(line, "no known flags")
	}
	flags := make([]string, len(parts)-1)
	copy(flags, parts[1:])
	sort.Strings(flags)
	ns.KnownFlags = flags
	return nil
}

func (ns *NetworkStatus) handleParams(line string, parts []string) error {
	pairs, err := parseIntPairs(line, parts, 1)
	if err != nil {
		return err
	}
	ns.ConsensusParams = pairs
	return nil
}
