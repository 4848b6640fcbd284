// Package api exposes the verification core over HTTP: a single
// verification endpoint plus health and metrics, in the style of the
// teacher's stdlib-ServeMux APIHandler.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sigcore/dnssecd/internal/core/cryptoadapter"
	"github.com/sigcore/dnssecd/internal/core/domain"
	"github.com/sigcore/dnssecd/internal/core/ports"
	"github.com/sigcore/dnssecd/internal/core/verify"
	"github.com/sigcore/dnssecd/internal/infrastructure/metrics"
)

// APIHandler handles HTTP requests against the verification core.
type APIHandler struct {
	driver  *verify.Driver
	anchors ports.AnchorStore
	cache   ports.VerdictCache
	logger  *slog.Logger
}

// NewAPIHandler creates an APIHandler. anchors and cache may be nil,
// disabling persistence and caching respectively; the verification
// itself never depends on either.
func NewAPIHandler(driver *verify.Driver, anchors ports.AnchorStore, cache ports.VerdictCache, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{driver: driver, anchors: anchors, cache: cache, logger: logger}
}

// RegisterRoutes registers the API routes with the provided ServeMux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /metrics", h.Metrics)
	mux.HandleFunc("POST /verify", h.Verify)
}

// Metrics handles Prometheus metrics scraping requests.
func (h *APIHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// HealthCheck handles liveness probes.
func (h *APIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "UP"})
}

type verifyRequest struct {
	RRset       rrsetJSON `json:"rrset"`
	DNSKeySet   rrsetJSON `json:"dnskey_rrset"`
	SkipCache   bool      `json:"skip_cache,omitempty"`
}

type verifyResponse struct {
	Verdict   string `json:"verdict"`
	RequestID string `json:"request_id"`
}

// Verify decodes a (rrset, rrsig, dnskey) triple and returns the verdict
// the verification core reaches for it.
func (h *APIHandler) Verify(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID)

	var req verifyRequest
	body, err := decodeAndRetainBody(r, &req)
	if err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	rrset, err := req.RRset.toRRset()
	if err != nil {
		http.Error(w, "invalid rrset: "+err.Error(), http.StatusBadRequest)
		return
	}
	dnskeySet, err := req.DNSKeySet.toRRset()
	if err != nil {
		http.Error(w, "invalid dnskey_rrset: "+err.Error(), http.StatusBadRequest)
		return
	}

	fingerprint := fingerprintOf(body)

	if !req.SkipCache && h.cache != nil {
		if verdict, ok, cacheErr := h.cache.Get(r.Context(), fingerprint); cacheErr == nil && ok {
			metrics.VerdictCacheOperations.WithLabelValues("hit").Inc()
			writeVerifyResponse(w, verdict, requestID)
			return
		}
		metrics.VerdictCacheOperations.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	verdict := h.driver.VerifyRRsetWithKeyset(rrset, dnskeySet)
	elapsed := time.Since(start)

	algoLabel := "mixed"
	if rrset.SigCount() == 1 {
		algoLabel = algorithmLabel(rrset)
	}
	metrics.VerificationDuration.WithLabelValues(algoLabel).Observe(elapsed.Seconds())
	metrics.VerificationsTotal.WithLabelValues(verdict.String()).Inc()

	logger.Debug("verification complete", "verdict", verdict.String(), "duration", elapsed)

	if h.cache != nil {
		if setErr := h.cache.Set(r.Context(), fingerprint, verdict.String()); setErr != nil {
			logger.Debug("verdict cache set failed", "error", setErr)
		}
	}

	if h.anchors != nil {
		h.recordAnchors(r.Context(), dnskeySet, verdict, logger)
	}

	writeVerifyResponse(w, verdict.String(), requestID)
}

func (h *APIHandler) recordAnchors(ctx context.Context, dnskeySet *domain.RRset, verdict domain.Verdict, logger *slog.Logger) {
	zone := string(dnskeySet.Owner)
	for i := 0; i < dnskeySet.Count(); i++ {
		rdata := dnskeySet.Rdata(i)
		if rdata == nil {
			continue
		}
		keyTag := h.driver.DNSKeyCalcKeytag(dnskeySet, i)
		algorithm := rdataAlgorithm(rdata)
		if err := h.anchors.SaveVerifiedKey(ctx, zone, keyTag, algorithm, verdict.String()); err != nil {
			metrics.AnchorStoreQueriesTotal.WithLabelValues("save", "error").Inc()
			logger.Debug("anchor store save failed", "error", err)
			continue
		}
		metrics.AnchorStoreQueriesTotal.WithLabelValues("save", "ok").Inc()
	}
}

func rdataAlgorithm(rdata []byte) uint8 {
	if len(rdata) < 4 {
		return 0
	}
	return rdata[3]
}

func algorithmLabel(rrset *domain.RRset) string {
	n := rrset.Count()
	algo := rrset.Rdata(n)
	if len(algo) < 3 {
		return "unknown"
	}
	return cryptoadapter.AlgorithmName(algo[2])
}

func writeVerifyResponse(w http.ResponseWriter, verdict, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(verifyResponse{Verdict: verdict, RequestID: requestID})
}

func fingerprintOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// decodeAndRetainBody reads r's body fully, unmarshals it into v, and
// returns the raw bytes so the caller can fingerprint exactly what was
// decoded rather than re-serializing it.
func decodeAndRetainBody(r *http.Request, v any) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return nil, err
	}
	return body, nil
}
