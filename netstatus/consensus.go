package netstatus

import (
	"errors"
	"strconv"
)

// Consensus is a parsed network-status consensus, either the unflavored
// document or a flavor variant such as "microdesc".
type Consensus struct {
	NetworkStatus

	// Flavor is empty for the unflavored consensus.
	Flavor          string
	ConsensusMethod int

	DirSources       []*DirSourceEntry
	BandwidthWeights []IntPair

	// DigestSHA256Base64 is the second digest style, carried by flavored
	// consensuses.
	DigestSHA256Base64 string
}

var consensusExactlyOnce = []Keyword{
	KwVoteStatus, KwConsensusMethod, KwValidAfter, KwFreshUntil,
	KwValidUntil, KwVotingDelay, KwKnownFlags,
}

var consensusAtMostOnce = []Keyword{
	KwClientVersions, KwServerVersions, KwParams, KwDirectoryFooter,
	KwBandwidthWeights,
}

// ParseConsensuses splits a blob into consensus windows and parses each
// one independently. Documents that parse are returned even when siblings
// fail; the joined error reports every failed window.
func ParseConsensuses(raw []byte, opts ParseOptions) ([]*Consensus, error) {
	windows, err := splitDocuments(newWindow(raw), KwNetworkStatusVersion)
	if err != nil {
		return nil, err
	}
	var consensuses []*Consensus
	var errs []error
	for _, w := range windows {
		consensus, err := parseConsensusWindow(w, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		consensuses = append(consensuses, consensus)
	}
	return consensuses, errors.Join(errs...)
}

// ParseConsensus parses a single consensus document.
func ParseConsensus(raw []byte, opts ParseOptions) (*Consensus, error) {
	return parseConsensusWindow(newWindow(raw), opts)
}

func parseConsensusWindow(w window, opts ParseOptions) (*Consensus, error) {
	consensus := &Consensus{}
	annotations, body, err := splitAnnotations(w)
	if err != nil {
		return nil, err
	}
	consensus.Annotations = annotations

	tally, err := tallyKeywords(body, false)
	if err != nil {
		return nil, err
	}
	if err := tally.checkExactlyOnce(consensusExactlyOnce...); err != nil {
		return nil, err
	}
	if err := tally.checkAtMostOnce(consensusAtMostOnce...); err != nil {
		return nil, err
	}
	if err := tally.checkFirst(KwNetworkStatusVersion); err != nil {
		return nil, err
	}
	// bandwidth-weights lives in the footer, so it can only appear in
	// documents that have one.
	if err := tally.checkDependsOn(KwBandwidthWeights, KwDirectoryFooter); err != nil {
		return nil, err
	}

	secs := splitSections(body, true)
	header := &sectionParser{
		opts:         opts,
		docName:      "consensus",
		handlers:     consensus.headerHandlers(),
		unrecognized: &consensus.UnrecognizedLines,
	}
	if err := header.scan(secs.header); err != nil {
		return nil, err
	}
	if consensus.DirSources, err = parseDirSourceEntries(secs.dirSources, opts, &consensus.UnrecognizedLines); err != nil {
		return nil, err
	}
	microdesc := consensus.Flavor == "microdesc"
	if err := consensus.parseStatusEntries(secs.body, microdesc, opts, &consensus.UnrecognizedLines); err != nil {
		return nil, err
	}
	footer := &sectionParser{
		opts:         opts,
		docName:      "consensus",
		assign:       consensus.assignSignatureBlock,
		unrecognized: &consensus.UnrecognizedLines,
	}
	footer.handlers = consensus.footerHandlers(footer)
	if err := footer.scan(secs.footer); err != nil {
		return nil, err
	}

	if consensus.DigestSHA1Hex, err = digestSHA1Hex(body, digestStartToken, digestEndToken); err != nil {
		return nil, err
	}
	if consensus.Flavor != "" {
		if consensus.DigestSHA256Base64, err = digestSHA256Base64(body, digestStartToken, digestEndToken); err != nil {
			return nil, err
		}
	}
	if err := consensus.checkValidityWindow(); err != nil {
		return nil, err
	}
	return consensus, nil
}

func (c *Consensus) headerHandlers() map[Keyword]lineHandler {
	return map[Keyword]lineHandler{
		KwNetworkStatusVersion: c.handleNetworkStatusVersion,
		KwVoteStatus:           c.handleVoteStatus,
		KwConsensusMethod:      c.handleConsensusMethod,
		KwValidAfter:           c.handleValidAfter,
		KwFreshUntil:           c.handleFreshUntil,
		KwValidUntil:           c.handleValidUntil,
		KwVotingDelay:          c.handleVotingDelay,
		KwClientVersions:       c.handleClientVersions,
		KwServerVersions:       c.handleServerVersions,
		KwKnownFlags:           c.handleKnownFlags,
		KwParams:               c.handleParams,
	}
}

func (c *Consensus) footerHandlers(p *sectionParser) map[Keyword]lineHandler {
	return map[Keyword]lineHandler{
		KwDirectoryFooter:  func(string, []string) error { return nil },
		KwBandwidthWeights: c.handleBandwidthWeights,
		KwDirectorySignature: func(line string, parts []string) error {
			return c.handleDirectorySignature(p, line, parts)
		},
	}
}

// handleNetworkStatusVersion accepts "network-status-version 3" with an
// optional flavor token.
func (c *Consensus) handleNetworkStatusVersion(line string, parts []string) error {
	if len(parts) < 2 || len(parts) > 3 || parts[1] != "3" {
		return fieldErr(line, "illegal network status version number")
	}
	c.NetworkStatusVersion = 3
	if len(parts) == 3 {
		c.Flavor = parts[2]
	}
	return nil
}

func (c *Consensus) handleVoteStatus(line string, parts []string) error {
	if len(parts) != 2 || parts[1] != "consensus" {
		return fieldErr(line, "document is not a consensus")
	}
	return nil
}

func (c *Consensus) handleConsensusMethod(line string, parts []string) error {
	if len(parts) != 2 {
		return fieldErr(line, "illegal consensus-method line")
	}
	method, err := strconv.Atoi(parts[1])
	if err != nil || method < 1 {
		return fieldErr(line, "illegal consensus method number")
	}
	c.ConsensusMethod = method
	return nil
}

func (c *Consensus) handleBandwidthWeights(line string, parts []string) error {
	pairs, err := parseIntPairs(line, parts, 1)
	if err != nil {
		return err
	}
	c.BandwidthWeights = pairs
	return nil
}

func (c *Consensus) handleDirectorySignature(p *sectionParser, line string, parts []string) error {
	sig, err := parseDirectorySignatureLine(line, parts)
	if err != nil {
		return err
	}
	c.Signatures = append(c.Signatures, sig)
	p.expectCrypto(KwDirectorySignature)
	return nil
}

func (c *Consensus) assignSignatureBlock(owner Keyword, block string) error {
	if owner != KwDirectorySignature || len(c.Signatures) == 0 {
		return parseErr(ErrMalformedInput, "unrecognized crypto block in consensus")
	}
	c.Signatures[len(c.Signatures)-1].Signature = block
	return nil
}
