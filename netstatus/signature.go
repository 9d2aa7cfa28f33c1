package netstatus

// DirectorySignature is one authority's signature over a document's
// identity digest.
type DirectorySignature struct {
	// Algorithm is the digest algorithm the signature covers; the line
	// omits it for the original "sha1" style.
	Algorithm        string
	Identity         string
	SigningKeyDigest string
	// Signature is the raw PEM block, including its BEGIN/END markers.
	Signature string
}

// parseDirectorySignatureLine parses
// "directory-signature [algorithm] identity signing-key-digest". The
// SIGNATURE crypto block that follows is attached by the section scan.
func parseDirectorySignatureLine(line string, parts []string) (*DirectorySignature, error) {
	sig := &DirectorySignature{Algorithm: "sha1"}
	var identityTok, digestTok string
	switch len(parts) {
	case 3:
		identityTok, digestTok = parts[1], parts[2]
	case 4:
		sig.Algorithm = parts[1]
		identityTok, digestTok = parts[2], parts[3]
	default:
		return nil, fieldErr(line, "illegal directory signature")
	}
	var err error
	if sig.Identity, err = parseFingerprint(line, identityTok); err != nil {
		return nil, err
	}
	if sig.SigningKeyDigest, err = parseFingerprint(line, digestTok); err != nil {
		return nil, err
	}
	return sig, nil
}
