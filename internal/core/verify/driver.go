// Package verify drives DNSSEC signature verification: it selects
// (key, signature) pairs, runs canonicalization and cryptographic
// verification, and aggregates the result into a single verdict, per
// the authentication procedure in RFC 4035 Section 5.3. It also exposes
// the smaller DS/DNSKEY helper operations the validator layer outside
// this package calls directly.
package verify

import (
	"github.com/sigcore/dnssecd/internal/core/canon"
	"github.com/sigcore/dnssecd/internal/core/cryptoadapter"
	"github.com/sigcore/dnssecd/internal/core/digest"
	"github.com/sigcore/dnssecd/internal/core/domain"
	"github.com/sigcore/dnssecd/internal/core/ports"
	"github.com/sigcore/dnssecd/internal/core/rdataaccess"
	"github.com/sigcore/dnssecd/internal/core/rrsig"
)

// MaxPreimageSize bounds the scratch buffer a single verification call
// can require: the largest signed preimage is bounded by the DNS
// message size a single RRset can occupy on the wire.
const MaxPreimageSize = 65535

// Driver drives a single verification call end to end. It holds no
// mutable state beyond its injected dependencies and is safe for
// concurrent use provided each caller supplies its own ScratchAllocator.
type Driver struct {
	Clock   ports.Clock
	Scratch ports.ScratchAllocator
	Logger  ports.Logger
	Crypto  cryptoadapter.Adapter
}

// NewDriver builds a Driver with the given injected dependencies. A nil
// Logger defaults to a no-op logger.
func NewDriver(clock ports.Clock, scratch ports.ScratchAllocator, logger ports.Logger) *Driver {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &Driver{Clock: clock, Scratch: scratch, Logger: logger}
}

// VerifyRRsetWithKeyset tries every RRSIG over rrset against every
// candidate key in dnskeyRRset, returning secure on the first (key, sig)
// pair that verifies. An RRset with no RRSIGs is bogus. Otherwise the
// verdict is bogus unless every attempt was unchecked with none bogus,
// in which case unchecked is surfaced.
func (d *Driver) VerifyRRsetWithKeyset(rrset, dnskeyRRset *domain.RRset) domain.Verdict {
	if rrset.SigCount() == 0 {
		d.Logger.Debugf("rrset has no signatures")
		return domain.Bogus
	}

	sawBogus, sawUnchecked := false, false
	for sigIdx := 0; sigIdx < rrset.SigCount(); sigIdx++ {
		switch v := d.VerifyRRsetWithKeysetSig(rrset, dnskeyRRset, sigIdx); v {
		case domain.Secure:
			return domain.Secure
		case domain.Bogus:
			sawBogus = true
		default:
			sawUnchecked = true
		}
	}
	return aggregate(sawBogus, sawUnchecked)
}

// VerifyRRsetWithKey tries every RRSIG over rrset against one specific
// candidate key, a single-key entry point kept separate from the
// whole-keyset search.
func (d *Driver) VerifyRRsetWithKey(rrset, dnskeyRRset *domain.RRset, keyIdx int) domain.Verdict {
	if rrset.SigCount() == 0 {
		return domain.Bogus
	}

	sawBogus, sawUnchecked := false, false
	for sigIdx := 0; sigIdx < rrset.SigCount(); sigIdx++ {
		switch v := d.verifyRRsetWithKeySig(rrset, dnskeyRRset, keyIdx, sigIdx); v {
		case domain.Secure:
			return domain.Secure
		case domain.Bogus:
			sawBogus = true
		default:
			sawUnchecked = true
		}
	}
	return aggregate(sawBogus, sawUnchecked)
}

// VerifyRRsetWithKeysetSig pre-filters dnskeyRRset to keys whose
// algorithm and computed key tag match RRSIG sigIdx's own fields, then
// tries each matching key in appearance order. No candidate matching at
// all is bogus ("could not find appropriate key").
func (d *Driver) VerifyRRsetWithKeysetSig(rrset, dnskeyRRset *domain.RRset, sigIdx int) domain.Verdict {
	rawIdx := rrset.Count() + sigIdx
	keytag := rdataaccess.RRSIGKeyTag(rrset, rawIdx)
	algorithm := rdataaccess.RRSIGAlgorithm(rrset, rawIdx)

	numChecked := 0
	sawBogus, sawUnchecked := false, false
	for keyIdx := 0; keyIdx < dnskeyRRset.Count(); keyIdx++ {
		if rdataaccess.DNSKEYAlgorithm(dnskeyRRset, keyIdx) != algorithm {
			continue
		}
		if d.DNSKeyCalcKeytag(dnskeyRRset, keyIdx) != keytag {
			continue
		}
		numChecked++

		switch v := d.verifyRRsetWithKeySig(rrset, dnskeyRRset, keyIdx, sigIdx); v {
		case domain.Secure:
			return domain.Secure
		case domain.Bogus:
			sawBogus = true
		default:
			sawUnchecked = true
		}
	}

	if numChecked == 0 {
		d.Logger.Debugf("could not find appropriate key for keytag=%d algorithm=%d", keytag, algorithm)
		return domain.Bogus
	}
	return aggregate(sawBogus, sawUnchecked)
}

// verifyRRsetWithKeySig runs full static RRSIG validation against one
// (key, sig) pair, then invokes canonicalization and crypto.
func (d *Driver) verifyRRsetWithKeySig(rrset, dnskeyRRset *domain.RRset, keyIdx, sigIdx int) domain.Verdict {
	now := d.Clock.Now()
	fields, ok := rrsig.ValidateStatic(rrset, sigIdx, now)
	if !ok {
		d.Logger.Debugf("rrsig %d failed static validation", sigIdx)
		return domain.Bogus
	}

	keyFlags := rdataaccess.DNSKEYFlags(dnskeyRRset, keyIdx)
	keyAlgorithm := rdataaccess.DNSKEYAlgorithm(dnskeyRRset, keyIdx)
	keyTag := d.DNSKeyCalcKeytag(dnskeyRRset, keyIdx)

	if !rrsig.ValidateKeyBinding(fields, keyFlags, keyAlgorithm, keyTag, dnskeyRRset.Owner) {
		d.Logger.Debugf("key %d does not bind to rrsig %d", keyIdx, sigIdx)
		return domain.Bogus
	}

	scratch := d.Scratch.Alloc(MaxPreimageSize)
	if scratch == nil {
		d.Logger.Debugf("scratch allocation failed")
		return domain.Unchecked
	}

	preimage, ok := canon.BuildPreimage(rrset, fields, scratch)
	if !ok {
		d.Logger.Debugf("preimage construction failed for rrsig %d", sigIdx)
		return domain.Unchecked
	}

	pubKey := rdataaccess.DNSKEYPublicKey(dnskeyRRset, keyIdx)
	result := d.Crypto.Verify(fields.Algorithm, preimage, fields.Signature, pubKey)

	switch result {
	case cryptoadapter.Secure:
		return domain.Secure
	case cryptoadapter.Bogus:
		return domain.Bogus
	default:
		d.Logger.Debugf("algorithm %d unsupported by crypto adapter", fields.Algorithm)
		return domain.Unchecked
	}
}

// aggregate applies the bogus-wins-over-unchecked tie-break: secure is
// handled by the caller on first success, so here bogus wins over
// unchecked whenever any attempt was bogus, and unchecked is surfaced
// only when every attempt was unchecked.
func aggregate(sawBogus, sawUnchecked bool) domain.Verdict {
	if sawBogus {
		return domain.Bogus
	}
	if sawUnchecked {
		return domain.Unchecked
	}
	return domain.Bogus
}

// DSDigestAlgoIsSupported reports whether DS idx's digest algorithm is
// one this core can compute.
func (d *Driver) DSDigestAlgoIsSupported(dsRRset *domain.RRset, idx int) bool {
	return digest.IsSupported(rdataaccess.DSDigestAlgorithm(dsRRset, idx))
}

// DSKeyAlgoIsSupported reports whether DS idx's attested DNSKEY
// algorithm is one this core can verify signatures for.
func (d *Driver) DSKeyAlgoIsSupported(dsRRset *domain.RRset, idx int) bool {
	return cryptoadapter.IsSupported(rdataaccess.DSKeyAlgorithm(dsRRset, idx))
}

// DSDigestMatchDNSKey reports whether DS ds_idx is the digest of DNSKEY
// key_idx, per RFC 4509.
func (d *Driver) DSDigestMatchDNSKey(dnskeyRRset *domain.RRset, keyIdx int, dsRRset *domain.RRset, dsIdx int) bool {
	return digest.Match(dnskeyRRset, keyIdx, dsRRset, dsIdx)
}

// DNSKeyAlgoIsSupported reports whether DNSKEY key_idx's algorithm is in
// the supported set.
func (d *Driver) DNSKeyAlgoIsSupported(dnskeyRRset *domain.RRset, keyIdx int) bool {
	return cryptoadapter.IsSupported(rdataaccess.DNSKEYAlgorithm(dnskeyRRset, keyIdx))
}

// DNSKeyCalcKeytag computes DNSKEY key_idx's RFC 4034 Appendix B key tag.
func (d *Driver) DNSKeyCalcKeytag(dnskeyRRset *domain.RRset, keyIdx int) uint16 {
	algorithm := rdataaccess.DNSKEYAlgorithm(dnskeyRRset, keyIdx)
	rdata := rdataaccess.Rdata(dnskeyRRset, keyIdx)
	return cryptoadapter.KeyTag(algorithm, rdata)
}
