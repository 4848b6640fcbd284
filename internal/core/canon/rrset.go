package canon

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/sigcore/dnssecd/internal/core/domain"
)

// canonicalRR is one data RR after per-type rdata canonicalization,
// carried alongside its rewritten bytes so the sort in BuildPreimage
// orders on the canonical form rather than the original wire bytes.
type canonicalRR struct {
	rdata []byte
}

// BuildPreimage emits the exact byte sequence a DNSSEC signature was
// computed over, per RFC 4034 Section 6.3: the RRSIG's fixed fields, its
// lowercased signer name, then each RR of rrset, sorted into canonical
// rdata order with duplicates removed, rendered as canonical owner,
// type, class, the RRSIG's original TTL (never the observed TTL), rdata
// length, and canonicalized rdata. scratch is written into directly and
// returned as the read view; false is returned (with no partial state
// visible to the caller) if scratch is too small.
func BuildPreimage(rrset *domain.RRset, sig domain.RRSIGFields, scratch []byte) ([]byte, bool) {
	n := rrset.Count()
	crrs := make([]canonicalRR, 0, n)
	for i := 0; i < n; i++ {
		rd := rrset.Rdata(i)
		crrs = append(crrs, canonicalRR{rdata: CanonicalizeRdata(rrset.Type, rd)})
	}

	sort.Slice(crrs, func(i, j int) bool {
		return bytes.Compare(crrs[i].rdata, crrs[j].rdata) < 0
	})

	deduped := crrs[:0:0]
	for i, c := range crrs {
		if i > 0 && bytes.Equal(c.rdata, deduped[len(deduped)-1].rdata) {
			continue
		}
		deduped = append(deduped, c)
	}

	canonOwner, ok := CanonicalOwner(rrset.Owner, int(sig.Labels))
	if !ok {
		return nil, false
	}

	buf := NewBuffer(scratch)

	if !buf.Write(sig.FixedAndSigner[:domain.RRSIGFixedLen]) {
		return nil, false
	}

	lowerSigner := make(domain.Name, sig.SignerNameLen)
	copy(lowerSigner, sig.SignerName)
	lowerSigner.LowercaseInPlace()
	if !buf.Write(lowerSigner) {
		return nil, false
	}

	var ttlBytes, typeBytes, classBytes [4]byte
	binary.BigEndian.PutUint32(ttlBytes[:], sig.OriginalTTL)
	binary.BigEndian.PutUint16(typeBytes[:2], rrset.Type)
	binary.BigEndian.PutUint16(classBytes[:2], rrset.Class)

	for _, c := range deduped {
		if !buf.Write(canonOwner) {
			return nil, false
		}
		if !buf.Write(typeBytes[:2]) {
			return nil, false
		}
		if !buf.Write(classBytes[:2]) {
			return nil, false
		}
		if !buf.Write(ttlBytes[:4]) {
			return nil, false
		}
		var rdlen [2]byte
		binary.BigEndian.PutUint16(rdlen[:], uint16(len(c.rdata)))
		if !buf.Write(rdlen[:]) {
			return nil, false
		}
		if !buf.Write(c.rdata) {
			return nil, false
		}
	}

	return buf.Bytes(), true
}
