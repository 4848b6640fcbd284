package canon

import "github.com/sigcore/dnssecd/internal/core/domain"

// ruleKind enumerates the small set of per-type canonicalization shapes
// RFC 4034 Section 6.2 describes. Representing the per-type rule as
// data, driven by one interpreter, turns adding a type into a table
// edit, not a new case in a growing switch.
type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleName          // lowercase one embedded name starting at offset `skip`
	ruleTwoNames      // lowercase two consecutive embedded names starting at `skip`
	ruleHinfoText     // lowercase two consecutive length-prefixed text fields at offset 0
	ruleNaptrName     // skip `skip` fixed bytes + 3 text fields, then lowercase the trailing name
)

type rdataRule struct {
	kind ruleKind
	skip int
}

var rdataRules = map[uint16]rdataRule{
	domain.TypeNS:    {ruleName, 0},
	domain.TypeMD:    {ruleName, 0},
	domain.TypeMF:    {ruleName, 0},
	domain.TypeCNAME: {ruleName, 0},
	domain.TypeMB:    {ruleName, 0},
	domain.TypeMG:    {ruleName, 0},
	domain.TypeMR:    {ruleName, 0},
	domain.TypePTR:   {ruleName, 0},
	domain.TypeDNAME: {ruleName, 0},
	domain.TypeNSEC:  {ruleName, 0},
	domain.TypeNXT:   {ruleName, 0},

	domain.TypeSOA:   {ruleTwoNames, 0},
	domain.TypeRP:    {ruleTwoNames, 0},
	domain.TypeMINFO: {ruleTwoNames, 0},

	domain.TypeMX:    {ruleName, 2},
	domain.TypeRT:    {ruleName, 2},
	domain.TypeAFSDB: {ruleName, 2},
	domain.TypeKX:    {ruleName, 2},
	domain.TypeSRV:   {ruleName, 6},
	domain.TypeRRSIG: {ruleName, 18},
	domain.TypeSIG:   {ruleName, 18},

	domain.TypePX: {ruleTwoNames, 2},

	domain.TypeHINFO: {ruleHinfoText, 0},
	domain.TypeNAPTR: {ruleNaptrName, 4},
}

// CanonicalizeRdata returns a copy of rdata with embedded DNS names and,
// for HINFO, text fields lowercased in place. The canonical form for
// this era of DNSSEC forbids name compression and never changes rdata
// length, so every rewrite happens within the original byte span. Every
// step is bounds-checked against len(rdata); a truncated or malformed
// field short-circuits the rewrite without reporting an error (the
// downstream signature comparison will fail naturally).
func CanonicalizeRdata(rrtype uint16, rdata []byte) []byte {
	out := make([]byte, len(rdata))
	copy(out, rdata)

	rule, ok := rdataRules[rrtype]
	if !ok {
		return out
	}

	switch rule.kind {
	case ruleName:
		lowercaseNameAt(out, rule.skip)
	case ruleTwoNames:
		second := lowercaseNameAt(out, rule.skip)
		if second >= 0 {
			lowercaseNameAt(out, second)
		}
	case ruleHinfoText:
		next := lowercaseTextAt(out, 0)
		if next >= 0 {
			lowercaseTextAt(out, next)
		}
	case ruleNaptrName:
		pos := rule.skip
		for i := 0; i < 3; i++ {
			pos = skipText(out, pos)
			if pos < 0 {
				return out
			}
		}
		lowercaseNameAt(out, pos)
	}

	return out
}

// lowercaseNameAt lowercases the name starting at offset, returning the
// offset immediately following it, or -1 if offset is out of range or
// the name there is malformed.
func lowercaseNameAt(buf []byte, offset int) int {
	if offset < 0 || offset > len(buf) {
		return -1
	}
	_, n, ok := domain.ParseName(buf[offset:])
	if !ok {
		return -1
	}
	domain.Name(buf[offset : offset+n]).LowercaseInPlace()
	return offset + n
}

// lowercaseTextAt lowercases the length-prefixed text field starting at
// offset, returning the offset immediately following it, or -1 on
// truncation.
func lowercaseTextAt(buf []byte, offset int) int {
	if offset < 0 || offset >= len(buf) {
		return -1
	}
	l := int(buf[offset])
	end := offset + 1 + l
	if end > len(buf) {
		return -1
	}
	for i := offset + 1; i < end; i++ {
		buf[i] = asciiLowerByte(buf[i])
	}
	return end
}

// skipText advances past a length-prefixed text field without modifying
// it, returning -1 on truncation.
func skipText(buf []byte, offset int) int {
	if offset < 0 || offset >= len(buf) {
		return -1
	}
	l := int(buf[offset])
	end := offset + 1 + l
	if end > len(buf) {
		return -1
	}
	return end
}

func asciiLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
