// Package rdataaccess performs bounds-checked typed field extraction
// from packed rdata. Every helper performs its own length check and
// returns a sentinel zero value or an empty slice on underflow rather
// than an error; callers treat a sentinel as "malformed, not usable",
// which is equivalent to no-match at every call site. This layer
// replaces the raw-offset pointer arithmetic that is the historical
// source of the worst bugs parsing DNS rdata.
package rdataaccess

import (
	"encoding/binary"

	"github.com/sigcore/dnssecd/internal/core/domain"
)

// Rdata returns the bytes+length view of RR idx's rdata (length prefix
// already stripped). Returns nil for an out-of-range or truncated entry.
func Rdata(rrset *domain.RRset, idx int) []byte {
	return rrset.Rdata(idx)
}

// DNSKEYFlags returns the 16-bit flags field of DNSKEY idx, or 0 if the
// rdata is too short to contain it.
func DNSKEYFlags(rrset *domain.RRset, idx int) uint16 {
	rd := rrset.Rdata(idx)
	if len(rd) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(rd[0:2])
}

// DNSKEYProtocol returns the protocol octet of DNSKEY idx, or 0 if short.
func DNSKEYProtocol(rrset *domain.RRset, idx int) uint8 {
	rd := rrset.Rdata(idx)
	if len(rd) < 3 {
		return 0
	}
	return rd[2]
}

// DNSKEYAlgorithm returns the algorithm octet of DNSKEY idx, or 0 if short.
func DNSKEYAlgorithm(rrset *domain.RRset, idx int) uint8 {
	rd := rrset.Rdata(idx)
	if len(rd) < 4 {
		return 0
	}
	return rd[3]
}

// DNSKEYPublicKey returns the public key bytes of DNSKEY idx (everything
// after the 4-byte fixed header), or nil if short.
func DNSKEYPublicKey(rrset *domain.RRset, idx int) []byte {
	rd := rrset.Rdata(idx)
	if len(rd) < 4 {
		return nil
	}
	return rd[4:]
}

// DSKeyTag returns the keytag field of DS idx, or 0 if short.
func DSKeyTag(rrset *domain.RRset, idx int) uint16 {
	rd := rrset.Rdata(idx)
	if len(rd) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(rd[0:2])
}

// DSKeyAlgorithm returns the DNSKEY-algorithm field of DS idx, or 0 if short.
func DSKeyAlgorithm(rrset *domain.RRset, idx int) uint8 {
	rd := rrset.Rdata(idx)
	if len(rd) < 3 {
		return 0
	}
	return rd[2]
}

// DSDigestAlgorithm returns the digest-type field of DS idx, or 0 if short.
func DSDigestAlgorithm(rrset *domain.RRset, idx int) uint8 {
	rd := rrset.Rdata(idx)
	if len(rd) < 4 {
		return 0
	}
	return rd[3]
}

// DSDigest returns the digest bytes of DS idx, or an empty slice if short.
func DSDigest(rrset *domain.RRset, idx int) []byte {
	rd := rrset.Rdata(idx)
	if len(rd) < 4 {
		return nil
	}
	return rd[4:]
}

// RRSIGKeyTag returns the keytag field of RRSIG idx, or 0 if short.
func RRSIGKeyTag(rrset *domain.RRset, idx int) uint16 {
	rd := rrset.Rdata(idx)
	if len(rd) < 18 {
		return 0
	}
	return binary.BigEndian.Uint16(rd[16:18])
}

// RRSIGAlgorithm returns the algorithm field of RRSIG idx, or 0 if short.
func RRSIGAlgorithm(rrset *domain.RRset, idx int) uint8 {
	rd := rrset.Rdata(idx)
	if len(rd) < 3 {
		return 0
	}
	return rd[2]
}
