package netstatus

import "bytes"

// splitAnnotations strips the leading run of @-prefixed lines from w and
// returns them, in order, together with the remaining body window.
// Annotation bytes are excluded from all later grammar and digest
// processing. An @ line without a terminating newline is a structural
// error.
func splitAnnotations(w window) ([]string, window, error) {
	var annotations []string
	raw := w.view()
	start := 0
	for start < len(raw) && raw[start] == '@' {
		end := bytes.IndexByte(raw[start:], '\n')
		if end < 0 {
			return nil, window{}, parseErr(ErrMalformedInput,
				"annotation line does not contain a newline")
		}
		annotations = append(annotations, string(raw[start:start+end]))
		start += end + 1
	}
	return annotations, w.narrow(start, w.len()-start), nil
}
