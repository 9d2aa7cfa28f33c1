package netstatus

import "strings"

// keywordTally scans a document window once, classifies every line, and
// records keyword statistics for the grammar assertions below. Lines
// between a crypto-block BEGIN marker and the matching END marker are
// opaque PEM payload and are never keyword-classified; annotation lines
// are skipped outright.
type keywordTally struct {
	first  Keyword
	last   Keyword
	counts map[Keyword]int
}

// tallyKeywords builds the tally for w. Blank lines are rejected unless
// the document format explicitly allows them.
func tallyKeywords(w window, blankLinesAllowed bool) (*keywordTally, error) {
	if w.empty() {
		return nil, parseErr(ErrEmptyInput, "descriptor is empty")
	}
	t := &keywordTally{counts: make(map[Keyword]int)}
	skipCrypto := false
	for _, line := range splitLines(w.str()) {
		switch {
		case line == "" && !blankLinesAllowed:
			return nil, parseErr(ErrMalformedInput, "blank lines are not allowed")
		case strings.HasPrefix(line, cryptoBeginPrefix):
			skipCrypto = true
		case strings.HasPrefix(line, cryptoEndPrefix):
			skipCrypto = false
		case line == "" || line[0] == '@' || skipCrypto:
			// Annotation or PEM payload: not a grammar line.
		default:
			keyword := firstToken(stripOpt(line))
			if keyword == "" {
				return nil, &ParseError{Kind: ErrMalformedInput,
					Message: "illegal keyword", Line: line}
			}
			k := keywordOf(keyword)
			if t.first == KeywordEmpty {
				t.first = k
			}
			t.last = k
			t.counts[k]++
		}
	}
	return t, nil
}

// count returns how many times k occurred.
func (t *keywordTally) count(k Keyword) int { return t.counts[k] }

func (t *keywordTally) checkFirst(k Keyword) error {
	if t.first != k {
		return parseErr(ErrGrammarViolation,
			"keyword '%s' must be contained in the first line", k)
	}
	return nil
}

func (t *keywordTally) checkLast(k Keyword) error {
	if t.last != k {
		return parseErr(ErrGrammarViolation,
			"keyword '%s' must be contained in the last line", k)
	}
	return nil
}

func (t *keywordTally) checkExactlyOnce(keys ...Keyword) error {
	for _, k := range keys {
		if n := t.counts[k]; n != 1 {
			return parseErr(ErrGrammarViolation,
				"keyword '%s' is contained %d times, but must be contained exactly once", k, n)
		}
	}
	return nil
}

func (t *keywordTally) checkAtMostOnce(keys ...Keyword) error {
	for _, k := range keys {
		if n := t.counts[k]; n > 1 {
			return parseErr(ErrGrammarViolation,
				"keyword '%s' is contained %d times, but must be contained at most once", k, n)
		}
	}
	return nil
}

func (t *keywordTally) checkAtLeastOnce(keys ...Keyword) error {
	for _, k := range keys {
		if t.counts[k] == 0 {
			return parseErr(ErrGrammarViolation,
				"keyword '%s' is contained 0 times, but must be contained at least once", k)
		}
	}
	return nil
}

// checkDependsOn fails when dependent occurs without depending.
func (t *keywordTally) checkDependsOn(dependent, depending Keyword) error {
	if t.counts[dependent] > 0 && t.counts[depending] == 0 {
		return parseErr(ErrGrammarViolation,
			"keyword '%s' is contained, but keyword '%s' is not", dependent, depending)
	}
	return nil
}

const (
	cryptoBeginPrefix = "-----BEGIN"
	cryptoEndPrefix   = "-----END"
	optPrefix         = "opt "
)

// stripOpt removes the legacy optional-line prefix before keyword lookup.
func stripOpt(line string) string {
	return strings.TrimPrefix(line, optPrefix)
}

// firstToken cuts line at the first space or tab.
func firstToken(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}
