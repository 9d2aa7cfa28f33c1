package netstatus

// Keyword identifies a recognized line keyword. After lookup, equality is
// by identity, never by string comparison. The enumeration is closed and
// case-sensitive; anything else maps to KeywordUnknown.
type Keyword uint8

const (
	// KeywordEmpty means "no keyword seen yet".
	KeywordEmpty Keyword = iota
	// KeywordUnknown is the sentinel for unrecognized keyword text.
	KeywordUnknown

	KwNetworkStatusVersion
	KwVoteStatus
	KwConsensusMethod
	KwConsensusMethods
	KwPublished
	KwValidAfter
	KwFreshUntil
	KwValidUntil
	KwVotingDelay
	KwClientVersions
	KwServerVersions
	KwPackage
	KwKnownFlags
	KwFlagThresholds
	KwParams
	KwDirSource
	KwContact
	KwVoteDigest
	KwDirKeyCertificateVersion
	KwDirAddress
	KwFingerprint
	KwLegacyDirKey
	KwDirKeyPublished
	KwDirKeyExpires
	KwDirIdentityKey
	KwDirSigningKey
	KwDirKeyCrosscert
	KwDirKeyCertification
	KwDirectoryFooter
	KwBandwidthWeights
	KwDirectorySignature

	// Relay status entry lines.
	KwR
	KwA
	KwS
	KwV
	KwW
	KwP
	KwM

	// KwOpt is the legacy optional-line prefix, stripped before lookup.
	KwOpt
	// KwCryptoBegin / KwCryptoEnd delimit PEM-style crypto blocks.
	KwCryptoBegin
	KwCryptoEnd
)

var keywordNames = map[Keyword]string{
	KwNetworkStatusVersion:     "network-status-version",
	KwVoteStatus:               "vote-status",
	KwConsensusMethod:          "consensus-method",
	KwConsensusMethods:         "consensus-methods",
	KwPublished:                "published",
	KwValidAfter:               "valid-after",
	KwFreshUntil:               "fresh-until",
	KwValidUntil:               "valid-until",
	KwVotingDelay:              "voting-delay",
	KwClientVersions:           "client-versions",
	KwServerVersions:           "server-versions",
	KwPackage:                  "package",
	KwKnownFlags:               "known-flags",
	KwFlagThresholds:           "flag-thresholds",
	KwParams:                   "params",
	KwDirSource:                "dir-source",
	KwContact:                  "contact",
	KwVoteDigest:               "vote-digest",
	KwDirKeyCertificateVersion: "dir-key-certificate-version",
	KwDirAddress:               "dir-address",
	KwFingerprint:              "fingerprint",
	KwLegacyDirKey:             "legacy-dir-key",
	KwDirKeyPublished:          "dir-key-published",
	KwDirKeyExpires:            "dir-key-expires",
	KwDirIdentityKey:           "dir-identity-key",
	KwDirSigningKey:            "dir-signing-key",
	KwDirKeyCrosscert:          "dir-key-crosscert",
	KwDirKeyCertification:      "dir-key-certification",
	KwDirectoryFooter:          "directory-footer",
	KwBandwidthWeights:         "bandwidth-weights",
	KwDirectorySignature:       "directory-signature",
	KwR:                        "r",
	KwA:                        "a",
	KwS:                        "s",
	KwV:                        "v",
	KwW:                        "w",
	KwP:                        "p",
	KwM:                        "m",
	KwOpt:                      "opt",
	KwCryptoBegin:              "-----BEGIN",
	KwCryptoEnd:                "-----END",
}

var keywordsByName = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for k, name := range keywordNames {
		m[name] = k
	}
	return m
}()

// String returns the literal keyword text, or a placeholder for the
// sentinels.
func (k Keyword) String() string {
	switch k {
	case KeywordEmpty:
		return "<empty>"
	case KeywordUnknown:
		return "<unknown>"
	default:
		return keywordNames[k]
	}
}

// keywordOf looks up literal keyword text. Unknown text maps to
// KeywordUnknown, never to an error: whether that is fatal depends on the
// parse mode.
func keywordOf(text string) Keyword {
	if k, ok := keywordsByName[text]; ok {
		return k
	}
	return KeywordUnknown
}
