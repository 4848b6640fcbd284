package api

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/sigcore/dnssecd/internal/core/domain"
)

// rrsetJSON is the wire shape a verification request or its embedded
// keyset carries: a presentation-format owner name plus base64-encoded
// rdata for each RR and RRSIG, matching how the teacher's API layer
// exchanges JSON with callers rather than raw wire bytes.
type rrsetJSON struct {
	Owner  string   `json:"owner"`
	Class  uint16   `json:"class"`
	Type   uint16   `json:"type"`
	TTL    uint32   `json:"ttl"`
	RRs    []string `json:"rrs,omitempty"`
	RRSIGs []string `json:"rrsigs,omitempty"`
}

func encodePresentationName(name string) (domain.Name, error) {
	name = strings.TrimSuffix(name, ".")
	var out []byte
	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if len(label) == 0 || len(label) > 63 {
				return nil, fmt.Errorf("invalid label length in name %q", name)
			}
			out = append(out, byte(len(label)))
			out = append(out, label...)
		}
	}
	out = append(out, 0)
	return domain.Name(out), nil
}

func decodeRDBytesList(encoded []string) ([]domain.RDBytes, error) {
	out := make([]domain.RDBytes, 0, len(encoded))
	for _, e := range encoded {
		raw, err := base64.StdEncoding.DecodeString(e)
		if err != nil {
			return nil, fmt.Errorf("decode rdata: %w", err)
		}
		prefixed := make(domain.RDBytes, 2+len(raw))
		binary.BigEndian.PutUint16(prefixed[0:2], uint16(len(raw)))
		copy(prefixed[2:], raw)
		out = append(out, prefixed)
	}
	return out, nil
}

func (r rrsetJSON) toRRset() (*domain.RRset, error) {
	owner, err := encodePresentationName(r.Owner)
	if err != nil {
		return nil, err
	}
	rrs, err := decodeRDBytesList(r.RRs)
	if err != nil {
		return nil, fmt.Errorf("rrs: %w", err)
	}
	rrsigs, err := decodeRDBytesList(r.RRSIGs)
	if err != nil {
		return nil, fmt.Errorf("rrsigs: %w", err)
	}
	return &domain.RRset{
		Owner:  owner,
		Class:  r.Class,
		Type:   r.Type,
		TTL:    r.TTL,
		RRs:    rrs,
		RRSIGs: rrsigs,
	}, nil
}
