package domain

// RR type numbers the core refers to (RFC 1035, RFC 2782, RFC 4034):
// every type with a canonicalization rule, plus a few (A, TXT, KEY, DS,
// DNSKEY) that are named elsewhere but have no rule. A type without a
// rule falls through unrewritten.
const (
	TypeA      uint16 = 1
	TypeNS     uint16 = 2
	TypeMD     uint16 = 3
	TypeMF     uint16 = 4
	TypeCNAME  uint16 = 5
	TypeSOA    uint16 = 6
	TypeMB     uint16 = 7
	TypeMG     uint16 = 8
	TypeMR     uint16 = 9
	TypePTR    uint16 = 12
	TypeHINFO  uint16 = 13
	TypeMINFO  uint16 = 14
	TypeMX     uint16 = 15
	TypeTXT    uint16 = 16
	TypeRP     uint16 = 17
	TypeAFSDB  uint16 = 18
	TypeRT     uint16 = 21
	TypeKX     uint16 = 36
	TypeSIG    uint16 = 24
	TypeKEY    uint16 = 25
	TypePX     uint16 = 26
	TypeNXT    uint16 = 30
	TypeSRV    uint16 = 33
	TypeNAPTR  uint16 = 35
	TypeDNAME  uint16 = 39
	TypeDS     uint16 = 43
	TypeRRSIG  uint16 = 46
	TypeNSEC   uint16 = 47
	TypeDNSKEY uint16 = 48

	ClassIN uint16 = 1
)
