/*
handlers.go - HTTP handlers for both calculators

PURPOSE:
  Decodes requests, runs the pure engines, and owns the two side
  effects the engines deliberately don't have: caching results and
  appending to the calculation history.

CACHING:
  Both engines are deterministic, so a result is cached forever under
  sha256(kind + raw body). A hit answers straight from the cache with
  X-Cache: HIT; engines only run on misses. Requests that fail
  validation are never cached.

ERROR MAPPING:
  Validation failures -> 400 with {"error": ...}
  Unknown history id  -> 404
  Storage failures    -> logged, but the computed result is still
  served; history is best-effort, the calculation is the product.
*/
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/advocato/penal-engine/alimony"
	"github.com/advocato/penal-engine/cache"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/sentence"
	storesqlite "github.com/advocato/penal-engine/store/sqlite"
)

// Handler carries the handlers' dependencies.
type Handler struct {
	store *storesqlite.Store
	cache cache.Repository
	zone  legaldate.Zone
}

// NewHandler wires a handler. A nil cache disables caching.
func NewHandler(store *storesqlite.Store, c cache.Repository, zone legaldate.Zone) *Handler {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Handler{store: store, cache: c, zone: zone}
}

// =============================================================================
// SENTENCE ENDPOINTS
// =============================================================================

const (
	kindSentence      = "sentence"
	kindSentenceQuick = "sentence_quick"
	kindAlimony       = "alimony"
)

// CalculateSentence handles POST /api/sentence/calculate.
func (h *Handler) CalculateSentence(w http.ResponseWriter, r *http.Request) {
	body, hit := h.tryCache(w, r, kindSentence)
	if hit {
		return
	}

	var req SentenceCalcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	s, episodes, remissions, err := req.toEngine()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	zone, asOf, err := resolveZoneAsOf(req.Zone, req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := sentence.Compute(s, episodes, remissions, asOf, sentence.Options{
		IncludeReleaseDay: req.IncludeReleaseDay,
		Zone:              zone,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.respond(w, r, kindSentence, body, toSentenceResultDTO(s, res))
}

// QuickSentence handles POST /api/sentence/quick, the single-offense
// convenience entry (quick fraction table).
func (h *Handler) QuickSentence(w http.ResponseWriter, r *http.Request) {
	body, hit := h.tryCache(w, r, kindSentenceQuick)
	if hit {
		return
	}

	var req QuickSentenceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	zone, baseDate, err := resolveZoneAsOf(req.Zone, req.BaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := sentence.ComputeQuick(
		req.Penalty, sentence.Classification(req.Classification), sentence.Regime(req.Regime),
		req.DaysServed, baseDate, sentence.Options{Zone: zone})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The memorandum needs the synthesized sentence; rebuild the shell
	// the quick path used.
	shell := sentence.Sentence{
		Offenses:    []sentence.Offense{{Description: "single offense (quick entry)", Penalty: req.Penalty}},
		TotalDays:   res.TotalDays,
		Regime:      res.Regime,
		Progression: res.ProgressionFraction,
		Release:     res.ReleaseFraction,
	}
	h.respond(w, r, kindSentenceQuick, body, toSentenceResultDTO(shell, res))
}

// CustodyStatus handles POST /api/sentence/status.
func (h *Handler) CustodyStatus(w http.ResponseWriter, r *http.Request) {
	var req CustodyStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	episodes, err := toEpisodes(req.Episodes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	zone, asOf, err := resolveZoneAsOf(req.Zone, req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if asOf.IsZero() {
		asOf = legaldate.Today(zone)
	}
	writeJSON(w, http.StatusOK, CustodyStatusDTO{
		Status: string(sentence.CustodyStatus(episodes, asOf)),
		AsOf:   asOf.ISO(),
	})
}

// =============================================================================
// ALIMONY ENDPOINT
// =============================================================================

// CalculateAlimony handles POST /api/alimony/calculate.
func (h *Handler) CalculateAlimony(w http.ResponseWriter, r *http.Request) {
	body, hit := h.tryCache(w, r, kindAlimony)
	if hit {
		return
	}

	var req AlimonyCalcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	o, payments, err := req.toEngine()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	zone, asOf, err := resolveZoneAsOf(req.Zone, req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := alimony.Compute(o, payments, asOf, zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.respond(w, r, kindAlimony, body, toAlimonyResultDTO(res))
}

// =============================================================================
// HISTORY ENDPOINTS
// =============================================================================

// ListCalculations handles GET /api/calculations.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListCalculations(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]CalculationDTO, 0, len(recs))
	for _, rec := range recs {
		dtos = append(dtos, toCalculationDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalculation handles GET /api/calculations/{id}, returning the
// full stored input and result.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.store.GetCalculation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("calculation %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         rec.ID,
		"kind":       rec.Kind,
		"created_at": rec.CreatedAt.UTC().Format(time.RFC3339),
		"input":      rec.Input,
		"result":     rec.Result,
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "zone": h.zone.Name()})
}

// =============================================================================
// PLUMBING
// =============================================================================

// tryCache reads the body and answers from the cache when possible.
// Returns the body for the miss path.
func (h *Handler) tryCache(w http.ResponseWriter, r *http.Request, kind string) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return nil, true
	}
	key := cacheKey(kind, body)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return nil, true
	}
	return body, false
}

// respond serializes the result, caches it and appends it to history.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, kind string, body []byte, result any) {
	payload, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	key := cacheKey(kind, body)
	if err := h.cache.Set(r.Context(), key, string(payload)); err != nil {
		log.Printf("cache set failed: %v", err)
	}
	if h.store != nil {
		rec := storesqlite.CalculationRecord{
			ID:     fmt.Sprintf("%s-%d", key[:12], time.Now().UnixNano()),
			Kind:   kind,
			Input:  json.RawMessage(body),
			Result: json.RawMessage(payload),
		}
		if err := h.store.SaveCalculation(r.Context(), rec); err != nil {
			log.Printf("history save failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func cacheKey(kind string, body []byte) string {
	sum := sha256.Sum256(append([]byte(kind+"|"), body...))
	return hex.EncodeToString(sum[:])
}

func resolveZoneAsOf(zoneName, asOf string) (legaldate.Zone, legaldate.Date, error) {
	zone, err := legaldate.LoadZone(zoneName)
	if err != nil {
		return legaldate.Zone{}, legaldate.Date{}, err
	}
	d, err := parseOptionalDate(asOf, "as_of")
	if err != nil {
		return legaldate.Zone{}, legaldate.Date{}, err
	}
	return zone, d, nil
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
