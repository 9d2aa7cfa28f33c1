// Package netstatus parses the network-status documents exchanged in the
// directory protocol: authority votes and consensuses (including flavored
// consensus variants).
//
// Input is untrusted, byte-oriented data that may contain:
//   - Many concatenated documents in one blob
//   - Optional leading @-prefixed annotation lines
//   - Embedded PEM-style crypto blocks
//   - Strict keyword grammars with cardinality constraints
//
// # Parsing Model
//
// All parsing operates on windows: (offset, length) views into one shared
// immutable byte buffer. A multi-document blob is split into per-document
// windows on line-aligned occurrences of the leading keyword; each window
// is parsed independently and produces an immutable Vote or Consensus
// value.
//
// # Identity Digests
//
// A document's identity is a cryptographic digest over an exactly
// delimited sub-range of its original bytes, from the first occurrence of
// "network-status-version " through the end of "\ndirectory-signature ".
// No normalization happens before hashing: the digest must reproduce
// bit-for-bit what every other protocol participant computes from the
// same bytes. Signed documents carry a lowercase-hex SHA-1 digest;
// flavored consensuses additionally carry an unpadded-base64 SHA-256
// digest.
//
// # Strict and Lenient Mode
//
// ParseOptions.Lenient controls what happens on an unrecognized keyword:
// strict parses fail with ErrUnrecognizedKeyword, lenient parses collect
// the raw lines on the resulting document. Grammar and field violations
// fail in both modes.
//
// # Example
//
//	doc, err := netstatus.ParseConsensus(raw, netstatus.ParseOptions{})
//	if err != nil {
//		return err
//	}
//	fmt.Println(doc.DigestSHA1Hex, doc.ValidAfter)
package netstatus
