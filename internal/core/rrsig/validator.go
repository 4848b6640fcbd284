// Package rrsig performs static validation of an RRSIG candidate,
// carried out before any expensive crypto.
package rrsig

import "github.com/sigcore/dnssecd/internal/core/domain"

// ValidateStatic checks RRSIG candidate sigIdx within rrset: structural
// rdata-length and signer-name parse, type-covered match, label-count
// range, and the validity window under serial-number (RFC 1982-style
// 32-bit signed) arithmetic. now is the caller-supplied wall-clock time
// in seconds since epoch. Returns the parsed fields and true on success;
// false means bogus.
func ValidateStatic(rrset *domain.RRset, sigIdx int, now int32) (domain.RRSIGFields, bool) {
	n := rrset.Count()
	rd := rrset.Rdata(n + sigIdx)

	fields, ok := domain.ParseRRSIG(rd)
	if !ok {
		return fields, false
	}

	if fields.TypeCovered != rrset.Type {
		return fields, false
	}

	if int(fields.Labels) > rrset.Owner.Labels() {
		return fields, false
	}

	if !validWindow(fields.Inception, fields.Expiration, now) {
		return fields, false
	}

	return fields, true
}

// validWindow applies RFC 1982 serial-number arithmetic to the
// inception/expiration/now triple: bogus if inception is after
// expiration, now precedes inception, or now is past expiration, each
// comparison done as a signed 32-bit subtraction so wraparound near the
// epoch's 32-bit boundary is handled the way RRSIG timestamps require.
func validWindow(inception, expiration uint32, now int32) bool {
	if serialGreater(inception, expiration) {
		return false
	}
	if serialGreater(inception, uint32(now)) {
		return false
	}
	if serialGreater(uint32(now), expiration) {
		return false
	}
	return true
}

// serialGreater reports whether a is strictly after b under 32-bit
// signed wraparound arithmetic: (int32)(a-b) > 0.
func serialGreater(a, b uint32) bool {
	return int32(a-b) > 0
}

// ValidateKeyBinding checks a specific candidate DNSKEY against fields:
// the ZSK bit must be set, algorithms must match, the DNSKEY's computed
// key tag must match the RRSIG's, and the RRSIG's signer name must equal
// the DNSKEY's owner name caselessly. keyTag is the already-computed
// (via cryptoadapter.KeyTag) tag of the candidate key, and
// keyFlags/keyAlgorithm are its raw rdata fields.
func ValidateKeyBinding(fields domain.RRSIGFields, keyFlags uint16, keyAlgorithm uint8, keyTag uint16, keyOwner domain.Name) bool {
	const zskBit = 0x0100
	if keyFlags&zskBit == 0 {
		return false
	}
	if keyAlgorithm != fields.Algorithm {
		return false
	}
	if keyTag != fields.KeyTag {
		return false
	}
	return domain.EqualCaseless(fields.SignerName, keyOwner)
}
