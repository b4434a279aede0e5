package handlers

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	fs "musiclegends/firestore"
	"musiclegends/packs"
	"musiclegends/scrapers"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type PackGenerator interface {
	Generate(ctx context.Context, heroSource string) packs.Result
}

type PackStore interface {
	SavePack(ctx context.Context, doc fs.PackDocument) error
	RecentPacks(ctx context.Context, limit int) ([]fs.PackDocument, error)
}

// VideoSearcher resolves free text to a video identifier.
type VideoSearcher interface {
	SearchVideo(ctx context.Context, query string) (string, error)
}

type (
	ChartFunc   func() ([]scrapers.Song, error)
	CleanupFunc func(ctx context.Context) (int, error)
)

type PackHandler struct {
	gen     PackGenerator
	store   PackStore
	search  VideoSearcher
	chart   ChartFunc
	cleanup CleanupFunc
	logger  *zap.Logger
	intN    func(n int) int
}

// NewPackHandler wires the pack endpoints. search may be nil, in which case
// trending heroes are resolved to Last.fm identifiers.
func NewPackHandler(
	gen PackGenerator,
	store PackStore,
	search VideoSearcher,
	chart ChartFunc,
	cleanup CleanupFunc,
	logger *zap.Logger,
) *PackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackHandler{
		gen:     gen,
		store:   store,
		search:  search,
		chart:   chart,
		cleanup: cleanup,
		logger:  logger,
		intN:    rand.IntN,
	}
}

type generateRequest struct {
	Hero string `json:"hero"`
}

type packResponse struct {
	packs.Result
	Trending *scrapers.Song `json:"trending,omitempty"`
}

// HandleGenerate builds a pack for the hero in the request body. Failed
// generations answer 422 with the failure result.
func (h *PackHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Hero) == "" {
		http.Error(w, "Missing hero", http.StatusBadRequest)
		return
	}
	h.generate(w, r, req.Hero, nil)
}

func (h *PackHandler) generate(w http.ResponseWriter, r *http.Request, hero string, trending *scrapers.Song) {
	ctx := r.Context()
	debugMode := r.URL.Query().Get("debug") == "true"

	result := h.gen.Generate(ctx, hero)
	if !result.Success {
		h.logger.Info("Pack generation failed", zap.String("hero", hero), zap.String("error", result.Error))
		writeJSON(w, http.StatusUnprocessableEntity, packResponse{Result: result, Trending: trending})
		return
	}

	if !debugMode {
		if err := h.store.SavePack(ctx, fs.NewPackDocument(result)); err != nil {
			h.logger.Error("Failed to save pack", zap.String("id", result.ID), zap.Error(err))
			http.Error(w, "Failed to save pack: "+err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		h.logger.Debug("Debug mode: skipping pack save", zap.String("id", result.ID))
	}

	writeJSON(w, http.StatusOK, packResponse{Result: result, Trending: trending})
}

// HandleRecent lists stored packs, newest first.
func (h *PackHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecentLimit)
	}

	docs, err := h.store.RecentPacks(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list packs", zap.Error(err))
		http.Error(w, "Failed to list packs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []fs.PackDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// HandleCleanup deletes stored packs past their TTL.
func (h *PackHandler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.cleanup(r.Context())
	if err != nil {
		h.logger.Error("Cleanup finished with errors", zap.Int("deleted", deleted), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"deleted": deleted,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
