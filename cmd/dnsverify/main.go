// Command dnsverify is a one-shot CLI around the verification core: it
// reads a JSON fixture describing an RRset (with its RRSIGs) and a
// DNSKEY RRset, runs VerifyRRsetWithKeyset, and prints the verdict.
package main

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sigcore/dnssecd/internal/core/domain"
	"github.com/sigcore/dnssecd/internal/core/ports"
	"github.com/sigcore/dnssecd/internal/core/verify"
)

type rrsetFixture struct {
	Owner  string   `json:"owner"`
	Class  uint16   `json:"class"`
	Type   uint16   `json:"type"`
	TTL    uint32   `json:"ttl"`
	RRs    []string `json:"rrs"`
	RRSIGs []string `json:"rrsigs"`
}

type fixture struct {
	RRset     rrsetFixture `json:"rrset"`
	DNSKeySet rrsetFixture `json:"dnskey_rrset"`
}

func main() {
	path := flag.String("fixture", "", "path to a JSON fixture ({rrset, dnskey_rrset}); reads stdin if empty")
	at := flag.Int64("at", 0, "wall-clock time (seconds since epoch) to validate against; 0 means now")
	flag.Parse()

	if err := run(*path, *at, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(path string, at int64, out *os.File) error {
	data, err := readFixture(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode fixture: %w", err)
	}

	rrset, err := f.RRset.toRRset()
	if err != nil {
		return fmt.Errorf("rrset: %w", err)
	}
	dnskeySet, err := f.DNSKeySet.toRRset()
	if err != nil {
		return fmt.Errorf("dnskey_rrset: %w", err)
	}

	now := at
	if now == 0 {
		now = time.Now().Unix()
	}
	clock := ports.FixedClock(int32(now))
	scratch := make([]byte, verify.MaxPreimageSize)
	driver := verify.NewDriver(clock, simpleScratch{buf: scratch}, ports.NopLogger{})

	verdict := driver.VerifyRRsetWithKeyset(rrset, dnskeySet)
	_, err = fmt.Fprintln(out, verdict.String())
	return err
}

func readFixture(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

type simpleScratch struct{ buf []byte }

func (s simpleScratch) Alloc(n int) []byte {
	if n > len(s.buf) {
		return nil
	}
	return s.buf[:n]
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

func (r rrsetFixture) toRRset() (*domain.RRset, error) {
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
