package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/sigcore/dnssecd/internal/core/domain"
	"github.com/sigcore/dnssecd/internal/core/ports"
	"github.com/sigcore/dnssecd/internal/core/verify"
	"github.com/sigcore/dnssecd/internal/testutil"
)

type sliceScratch struct{ buf []byte }

func (s sliceScratch) Alloc(n int) []byte {
	if n > len(s.buf) {
		return nil
	}
	return s.buf[:n]
}

func b64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func TestAPIHandlerHealthCheck(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "UP" {
		t.Errorf("status body = %v, want UP", body)
	}
}

func TestAPIHandlerMetrics(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	h.Metrics(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("expected non-empty Prometheus exposition body")
	}
}

func TestAPIHandlerVerifyInvalidBody(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAPIHandlerVerifyCacheHit(t *testing.T) {
	driver := verify.NewDriver(ports.FixedClock(0), sliceScratch{buf: make([]byte, verify.MaxPreimageSize)}, nil)
	cache := &testutil.MockVerdictCache{}
	cache.On("Get", mock.Anything, mock.Anything).Return("secure", true, nil)

	h := NewAPIHandler(driver, nil, cache, nil)

	body := []byte(`{"rrset":{"owner":"example.com.","class":1,"type":1,"ttl":3600,"rrs":[],"rrsigs":[]},"dnskey_rrset":{"owner":"example.com.","class":1,"type":48,"ttl":3600,"rrs":[],"rrsigs":[]}}`)
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var resp verifyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Verdict != "secure" {
		t.Errorf("verdict = %q, want %q (from cache)", resp.Verdict, "secure")
	}
	cache.AssertExpectations(t)
}

// TestAPIHandlerVerifyNoAppropriateKey checks an RRSIG whose keytag
// matches nothing in an empty DNSKEY set comes back bogus, the "could
// not find appropriate key" path, end to end through the HTTP layer.
func TestAPIHandlerVerifyNoAppropriateKey(t *testing.T) {
	driver := verify.NewDriver(ports.FixedClock(1_500_000_000), sliceScratch{buf: make([]byte, verify.MaxPreimageSize)}, nil)
	h := NewAPIHandler(driver, nil, nil, nil)

	rrsigRdata := make([]byte, domain.RRSIGFixedLen+1+1)
	rrsigRdata[2] = 8 // RSASHA256
	rrsigRdata[3] = 0 // labels
	rrsigRdata[8], rrsigRdata[9], rrsigRdata[10], rrsigRdata[11] = 0xFF, 0xFF, 0xFF, 0xFF
	rrsigRdata[12], rrsigRdata[13], rrsigRdata[14], rrsigRdata[15] = 0, 0, 0, 0

	reqBody := map[string]any{
		"rrset": map[string]any{
			"owner":  "example.com.",
			"class":  1,
			"type":   1,
			"ttl":    3600,
			"rrs":    []string{b64([]byte{1, 2, 3, 4})},
			"rrsigs": []string{b64(rrsigRdata)},
		},
		"dnskey_rrset": map[string]any{
			"owner":  "example.com.",
			"class":  1,
			"type":   48,
			"ttl":    3600,
			"rrs":    []string{},
			"rrsigs": []string{},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.Verify(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var resp verifyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Verdict != "bogus" {
		t.Errorf("verdict = %q, want bogus (no candidate key matched)", resp.Verdict)
	}
	if resp.RequestID == "" {
		t.Error("expected a non-empty request id")
	}
}
