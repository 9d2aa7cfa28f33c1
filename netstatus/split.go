package netstatus

import "strings"

// keywordStart reports the index of the first line-aligned occurrence of
// kw at or after from, matched as "\nkw " or "\nkw\n", plus a match at
// the very start of the window. Returns -1 if kw never occurs.
func keywordStart(ascii string, kw Keyword, from int) int {
	token := kw.String()
	if from == 0 && (strings.HasPrefix(ascii, token+" ") || strings.HasPrefix(ascii, token+"\n") || ascii == token) {
		return 0
	}
	rest := ascii[from:]
	idxSP := strings.Index(rest, "\n"+token+" ")
	idxNL := strings.Index(rest, "\n"+token+"\n")
	idx := idxSP
	if idx < 0 || (idxNL >= 0 && idxNL < idx) {
		idx = idxNL
	}
	if idx < 0 {
		// A bare keyword terminating the buffer has no trailing
		// delimiter to match on.
		if strings.HasSuffix(rest, "\n"+token) {
			return from + len(rest) - len(token)
		}
		return -1
	}
	return from + idx + 1
}

// splitByKeyword partitions w into sub-windows, each spanning from one
// line-aligned occurrence of kw up to (but not including) the next, or
// end of input for the last. Content before the first occurrence is not
// emitted. truncate drops trailing newlines from each sub-window.
func splitByKeyword(w window, kw Keyword, truncate bool) []window {
	ascii := w.str()
	var parts []window
	from := keywordStart(ascii, kw, 0)
	if from < 0 {
		return nil
	}
	for from < len(ascii) {
		to := keywordStart(ascii, kw, from)
		if to <= from {
			// keywordStart(.., from) re-finds the occurrence at from
			// itself only when from == 0; step past the keyword line.
			to = keywordStart(ascii, kw, from+1)
		}
		if to < 0 {
			to = len(ascii)
		}
		end := to
		for truncate && end > from && ascii[end-1] == '\n' {
			end--
		}
		parts = append(parts, w.narrow(from, end-from))
		from = to
	}
	return parts
}

// annotationRunStart walks backwards from pos over a contiguous run of
// @-prefixed lines and returns the index where the run begins, so that a
// document's annotations stay attached to its window.
func annotationRunStart(ascii string, pos int) int {
	start := pos
	for start > 0 {
		lineStart := strings.LastIndexByte(ascii[:start-1], '\n') + 1
		if ascii[lineStart] != '@' {
			break
		}
		start = lineStart
	}
	return start
}

// splitDocuments partitions a multi-document blob into one window per
// document, each anchored at a line-aligned occurrence of kw and extended
// backwards over the document's leading annotation lines. An empty blob
// is an error; a blob in which kw never occurs yields zero windows, which
// callers treat as "no documents here".
func splitDocuments(w window, kw Keyword) ([]window, error) {
	if w.empty() {
		return nil, parseErr(ErrEmptyInput, "descriptor blob is empty")
	}
	ascii := w.str()
	var starts []int
	pos := keywordStart(ascii, kw, 0)
	for pos >= 0 {
		starts = append(starts, annotationRunStart(ascii, pos))
		next := keywordStart(ascii, kw, pos+1)
		if next <= pos {
			break
		}
		pos = next
	}
	var docs []window
	for i, s := range starts {
		end := len(ascii)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		docs = append(docs, w.narrow(s, end-s))
	}
	return docs, nil
}
