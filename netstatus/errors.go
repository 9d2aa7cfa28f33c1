package netstatus

import "fmt"

// ErrorKind is a machine-readable classification of a parse failure.
type ErrorKind uint8

const (
	// ErrEmptyInput: the raw blob has zero length.
	ErrEmptyInput ErrorKind = iota
	// ErrMalformedInput: structural violation such as an unterminated
	// annotation line, an unterminated crypto block, or a blank line
	// where none is allowed.
	ErrMalformedInput
	// ErrGrammarViolation: a keyword cardinality or position rule failed.
	ErrGrammarViolation
	// ErrMalformedField: a field value failed its local format check.
	ErrMalformedField
	// ErrUnrecognizedKeyword: an unknown keyword in strict mode.
	ErrUnrecognizedKeyword
	// ErrDigestRangeInvalid: both digest tokens are present but the end
	// precedes the start.
	ErrDigestRangeInvalid
	// ErrDigestUnavailable: the identity digest cannot be computed even
	// though the document otherwise parses.
	ErrDigestUnavailable
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "empty-input"
	case ErrMalformedInput:
		return "malformed-input"
	case ErrGrammarViolation:
		return "grammar-violation"
	case ErrMalformedField:
		return "malformed-field"
	case ErrUnrecognizedKeyword:
		return "unrecognized-keyword"
	case ErrDigestRangeInvalid:
		return "digest-range-invalid"
	case ErrDigestUnavailable:
		return "digest-unavailable"
	default:
		return "unknown"
	}
}

// ParseError is a terminal failure for the single document being parsed.
// Line carries the offending raw line when one can be cited.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Line    string
}

func (e *ParseError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("%s: %s in line '%s'", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports kind equality, so callers can match with
// errors.Is(err, &ParseError{Kind: ErrGrammarViolation}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func parseErr(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func fieldErr(line, format string, args ...any) *ParseError {
	return &ParseError{Kind: ErrMalformedField, Message: fmt.Sprintf(format, args...), Line: line}
}
