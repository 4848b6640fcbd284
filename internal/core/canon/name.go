// Package canon reconstructs, byte for byte, the preimage a DNSSEC
// signature was computed over, per RFC 4034 Section 6.
package canon

import "github.com/sigcore/dnssecd/internal/core/domain"

// CanonicalOwner derives the owner name to use in the signed preimage for
// an RRset signed by an RRSIG claiming rrsigLabels labels, per RFC 4035
// Section 5.3.2. When rrsigLabels equals the owner's own label count the
// owner is used as-is (lowercased); when it is smaller, this is a
// wildcard signature and the owner is synthesized as "*." followed by
// the rightmost rrsigLabels labels. rrsigLabels greater than the owner's
// label count is malformed: static RRSIG validation must have already
// rejected it, so CanonicalOwner reports that case as failure rather
// than guessing.
func CanonicalOwner(owner domain.Name, rrsigLabels int) (domain.Name, bool) {
	l := owner.Labels()
	if rrsigLabels == l {
		out := make(domain.Name, len(owner))
		copy(out, owner)
		out.LowercaseInPlace()
		return out, true
	}
	if rrsigLabels > l {
		return nil, false
	}

	name := owner
	for i := 0; i < l-rrsigLabels; i++ {
		shortened, ok := name.RemoveLeadingLabel()
		if !ok {
			return nil, false
		}
		name = shortened
	}

	out := make(domain.Name, 0, len(domain.Wildcard)+len(name))
	out = append(out, domain.Wildcard...)
	out = append(out, name...)
	out.LowercaseInPlace()
	return out, true
}
