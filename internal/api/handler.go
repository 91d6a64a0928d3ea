package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nosbielc/blog-globals/internal/globaldata"
)

type contextKey string

const requestInfoContextKey contextKey = "requestInfo"

// Handler serves the blog global data built from a lookup source.
type Handler struct {
	provider globaldata.Provider
	lookup   globaldata.LookupFunc

	clock  func() time.Time
	logger *zap.Logger
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLogger sets the logger used to report configuration failures.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler. The record is rebuilt from lookup on every request.
func NewHandler(provider globaldata.Provider, lookup globaldata.LookupFunc, opts ...HandlerOption) *Handler {
	h := &Handler{
		provider: provider,
		lookup:   lookup,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGlobalData(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.Load(h.lookup)
	if err != nil {
		var decodeErr *globaldata.DecodeError
		if errors.As(err, &decodeErr) {
			if info := requestInfoFromContext(r.Context()); info != nil {
				info.invalidKey = decodeErr.Key
			}
			h.logger.Error("invalid site configuration",
				zap.String("key", decodeErr.Key),
				zap.String("request_id", requestIDFromContext(r.Context())),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "Invalid site configuration", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, data)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
