// Package digest reconstructs the hashed preimage from a DNSKEY and
// compares it against a candidate DS digest, per RFC 4509.
package digest

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is a mandatory DS digest type per RFC 4034 §5.1.4
	"crypto/sha256"

	"github.com/sigcore/dnssecd/internal/core/domain"
	"github.com/sigcore/dnssecd/internal/core/rdataaccess"
)

// Digest type numbers (RFC 4034 §5.1.4 / RFC 4509).
const (
	AlgoSHA1   uint8 = 1
	AlgoSHA256 uint8 = 2
)

// Size returns the fixed digest output size for a DS digest-type
// number, or 0 if unsupported. Unknown types are "not a match", never an
// error.
func Size(digestType uint8) int {
	switch digestType {
	case AlgoSHA1:
		return sha1.Size
	case AlgoSHA256:
		return sha256.Size
	default:
		return 0
	}
}

// IsSupported reports whether digestType is one of the mandatory DS
// digest algorithms.
func IsSupported(digestType uint8) bool {
	return Size(digestType) != 0
}

// compute hashes the DNSKEY preimage, the lowercased owner name
// concatenated with the DNSKEY rdata (flags, protocol, algorithm, public
// key, with no rdata-length prefix), under the given digest type.
// Returns nil if the digest type is unsupported.
func compute(digestType uint8, owner domain.Name, dnskeyRdata []byte) []byte {
	lowered := make(domain.Name, len(owner))
	copy(lowered, owner)
	lowered.LowercaseInPlace()

	preimage := make([]byte, 0, len(lowered)+len(dnskeyRdata))
	preimage = append(preimage, lowered...)
	preimage = append(preimage, dnskeyRdata...)

	switch digestType {
	case AlgoSHA1:
		sum := sha1.Sum(preimage) //nolint:gosec
		return sum[:]
	case AlgoSHA256:
		sum := sha256.Sum256(preimage)
		return sum[:]
	default:
		return nil
	}
}

// Match reports whether the DS record at ds_idx in dsRRset is the digest
// of the DNSKEY at keyIdx in dnskeyRRset: the digest type must be
// supported, the candidate digest's length must equal the algorithm's
// fixed output size, and the computed digest must equal the candidate
// byte for byte.
func Match(dnskeyRRset *domain.RRset, keyIdx int, dsRRset *domain.RRset, dsIdx int) bool {
	digestType := rdataaccess.DSDigestAlgorithm(dsRRset, dsIdx)
	size := Size(digestType)
	if size == 0 {
		return false
	}

	candidate := rdataaccess.DSDigest(dsRRset, dsIdx)
	if len(candidate) != size {
		return false
	}

	dnskeyRdata := rdataaccess.Rdata(dnskeyRRset, keyIdx)
	if dnskeyRdata == nil {
		return false
	}

	computed := compute(digestType, dnskeyRRset.Owner, dnskeyRdata)
	if computed == nil {
		return false
	}

	if len(computed) != len(candidate) {
		return false
	}
	for i := range computed {
		if computed[i] != candidate[i] {
			return false
		}
	}
	return true
}
