package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"svw.info/mathtiles/internal/corpus"
	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/generator"
	"svw.info/mathtiles/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/round", h.handleRound)
	r.Get("/api/targets", h.handleTargets)
	r.Post("/api/check", h.handleCheck)
	r.Post("/api/hint", h.handleHint)
	r.Post("/api/save", h.handleSave)
	r.Post("/api/load", h.handleLoad)
	r.Get("/api/list", h.handleList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---- Round ----

type roundReq struct {
	K    int   `json:"k"`
	Seed int64 `json:"seed,omitempty"`
}

type roundResp struct {
	Round      *domain.Round `json:"round,omitempty"`
	Attempts   int           `json:"attempts,omitempty"`
	DurationMs int64         `json:"durationMs,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func (h *Handler) handleRound(w http.ResponseWriter, r *http.Request) {
	var req roundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, roundResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.K == 0 {
		req.K = 3
	}
	if req.K < 2 {
		writeJSON(w, http.StatusBadRequest, roundResp{Error: "k must be at least 2"})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	round, st, err := h.UC.Generate(r.Context(), seed, req.K)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, corpus.ErrCorpusMissing):
			status = http.StatusNotFound
		case errors.Is(err, generator.ErrNoSolvableTarget):
			// Retryable: the client should offer a retry affordance.
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, roundResp{Attempts: st.Attempts, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, roundResp{
		Round:      round,
		Attempts:   st.Attempts,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Targets ----

type targetsResp struct {
	K       int    `json:"k"`
	Targets []int  `json:"targets"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleTargets(w http.ResponseWriter, r *http.Request) {
	k, err := strconv.Atoi(r.URL.Query().Get("k"))
	if err != nil || k < 2 {
		writeJSON(w, http.StatusBadRequest, targetsResp{Error: "missing or invalid k"})
		return
	}
	targets, err := h.UC.Targets(r.Context(), k)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, targetsResp{K: k, Error: err.Error()})
		return
	}
	if targets == nil {
		targets = []int{}
	}
	writeJSON(w, http.StatusOK, targetsResp{K: k, Targets: targets})
}

// ---- Check ----

type checkReq struct {
	Numbers []int       `json:"numbers"`
	Ops     []domain.Op `json:"ops"`
	Target  int         `json:"target"`
}

type checkResp struct {
	Win   bool   `json:"win"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, checkResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Ops) != len(req.Numbers)-1 {
		writeJSON(w, http.StatusBadRequest, checkResp{Error: "ops must be one shorter than numbers"})
		return
	}
	win, value, err := h.UC.Check(r.Context(), req.Numbers, req.Ops, req.Target)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, checkResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkResp{Win: win, Value: value})
}

// ---- Hint ----

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var round domain.Round
	if err := json.NewDecoder(r.Body).Decode(&round); err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), &round)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, hintResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: ok, Hint: hh})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var round domain.Round
	if err := json.NewDecoder(r.Body).Decode(&round); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if round.ID == "" {
		round.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if round.CreatedAt == 0 {
		round.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &round); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: round.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Round *domain.Round `json:"round,omitempty"`
	Error string        `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "invalid JSON or missing id"})
		return
	}
	round, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Round: round})
}

type listResp struct {
	Rounds []domain.RoundMeta `json:"rounds"`
	Error  string             `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	if metas == nil {
		metas = []domain.RoundMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Rounds: metas})
}
