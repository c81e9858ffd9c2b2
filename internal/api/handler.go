package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Submanifold/bin-packing-heuristics/internal/binpack"
	"github.com/Submanifold/bin-packing-heuristics/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the packing heuristics and instance storage into HTTP handlers.
type Handler struct {
	heuristics map[string]binpack.Heuristic
	names      []string
	storage    storage.Storage

	clock       func() time.Time
	maxItems    int
	maxCapacity int

	mu                 sync.RWMutex
	instancesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLimits bounds the instances accepted over the API. Zero disables a bound.
func WithLimits(maxItems, maxCapacity int) HandlerOption {
	return func(h *Handler) {
		h.maxItems = maxItems
		h.maxCapacity = maxCapacity
	}
}

// NewHandler constructs a Handler exposing the given heuristics. The order of
// the slice fixes the order of comparison results.
func NewHandler(heuristics []binpack.Heuristic, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		heuristics: make(map[string]binpack.Heuristic, len(heuristics)),
		names:      make([]string, 0, len(heuristics)),
		storage:    store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, heuristic := range heuristics {
		h.heuristics[heuristic.Name()] = heuristic
		h.names = append(h.names, heuristic.Name())
	}
	for _, opt := range opts {
		opt(h)
	}
	h.instancesUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:     "ok",
		Heuristics: h.names,
		Timestamp:  h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListInstances(w http.ResponseWriter, r *http.Request) {
	_ = r
	names, err := h.storage.Names()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	summaries := make([]instanceSummary, 0, len(names))
	for _, name := range names {
		inst, err := h.storage.Get(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, instanceSummary{
			Name:       name,
			Items:      inst.Len(),
			Capacity:   inst.Capacity(),
			LowerBound: inst.LowerBound(),
		})
	}

	resp := instancesResponse{
		Instances: summaries,
		UpdatedAt: h.currentInstancesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetInstance(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	inst, err := h.storage.Get(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown instance", fmt.Sprintf("no instance stored under %q", name))
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instanceResponse{
		Name:        name,
		Items:       inst.Items(),
		Capacity:    inst.Capacity(),
		MinItemSize: inst.MinItemSize(),
		LowerBound:  inst.LowerBound(),
	})
}

func (h *Handler) handlePutInstance(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req instanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	inst, ok := h.buildInstance(w, &req)
	if !ok {
		return
	}

	if err := h.storage.Put(name, inst); err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			writeError(w, http.StatusBadRequest, "Invalid instance name", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markInstancesUpdated()

	writeJSON(w, http.StatusOK, instanceResponse{
		Name:        name,
		Items:       inst.Items(),
		Capacity:    inst.Capacity(),
		MinItemSize: inst.MinItemSize(),
		LowerBound:  inst.LowerBound(),
		Message:     "Instance stored successfully",
	})
}

func (h *Handler) handlePack(w http.ResponseWriter, r *http.Request) {
	var req packRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	heuristic, ok := h.heuristics[req.Heuristic]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown heuristic",
			fmt.Sprintf("heuristic %q is not registered", req.Heuristic),
			"Available heuristics: "+strings.Join(h.names, ", "))
		return
	}

	inst, ok := h.resolveInstance(w, &req.instanceSource)
	if !ok {
		return
	}

	result, err := heuristic.Pack(inst)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, packResponse{
		Heuristic:      heuristic.Name(),
		Bins:           result.Bins,
		LowerBound:     inst.LowerBound(),
		ElapsedSeconds: result.Elapsed.Seconds(),
		Assignment:     result.Assignment,
	})
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	inst, ok := h.resolveInstance(w, &req.instanceSource)
	if !ok {
		return
	}

	// The instance is immutable and every Pack call allocates its own working
	// structures, so the heuristics can race against each other safely.
	results := make([]packResponse, len(h.names))
	var g errgroup.Group
	for i, name := range h.names {
		i, heuristic := i, h.heuristics[name]
		g.Go(func() error {
			result, err := heuristic.Pack(inst)
			if err != nil {
				return fmt.Errorf("%s: %w", heuristic.Name(), err)
			}
			results[i] = packResponse{
				Heuristic:      heuristic.Name(),
				Bins:           result.Bins,
				LowerBound:     inst.LowerBound(),
				ElapsedSeconds: result.Elapsed.Seconds(),
				Assignment:     result.Assignment,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compareResponse{
		Items:      inst.Len(),
		Capacity:   inst.Capacity(),
		LowerBound: inst.LowerBound(),
		Results:    results,
	})
}

// resolveInstance loads a stored instance or builds one from inline fields.
// On failure it writes the error response and reports false.
func (h *Handler) resolveInstance(w http.ResponseWriter, src *instanceSource) (*binpack.Instance, bool) {
	if src.Instance != "" {
		if len(src.Items) > 0 || src.Capacity != 0 {
			writeError(w, http.StatusBadRequest, "Invalid request", "provide either an instance name or inline items, not both")
			return nil, false
		}
		inst, err := h.storage.Get(src.Instance)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Unknown instance", fmt.Sprintf("no instance stored under %q", src.Instance))
				return nil, false
			}
			writeInternalError(w, err)
			return nil, false
		}
		return inst, true
	}

	return h.buildInstance(w, &instanceRequest{
		Items:       src.Items,
		Capacity:    src.Capacity,
		MinItemSize: src.MinItemSize,
	})
}

// buildInstance validates inline instance fields against the configured
// limits. On failure it writes the error response and reports false.
func (h *Handler) buildInstance(w http.ResponseWriter, req *instanceRequest) (*binpack.Instance, bool) {
	if h.maxItems > 0 && len(req.Items) > h.maxItems {
		writeError(w, http.StatusBadRequest, "Instance too large",
			fmt.Sprintf("at most %d items are accepted, got %d", h.maxItems, len(req.Items)))
		return nil, false
	}
	if h.maxCapacity > 0 && req.Capacity > h.maxCapacity {
		writeError(w, http.StatusBadRequest, "Capacity too large",
			fmt.Sprintf("at most %d capacity is accepted, got %d", h.maxCapacity, req.Capacity))
		return nil, false
	}

	var opts []binpack.InstanceOption
	if req.MinItemSize > 0 {
		opts = append(opts, binpack.WithMinItemSize(req.MinItemSize))
	}

	inst, err := binpack.NewInstance(req.Items, req.Capacity, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid instance", err.Error())
		return nil, false
	}
	return inst, true
}

func (h *Handler) currentInstancesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.instancesUpdatedAt
}

func (h *Handler) markInstancesUpdated() {
	h.mu.Lock()
	h.instancesUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// instanceSource selects a stored instance by name or carries one inline.
type instanceSource struct {
	Instance    string `json:"instance,omitempty"`
	Items       []int  `json:"items,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
	MinItemSize int    `json:"minItemSize,omitempty"`
}

type instanceRequest struct {
	Items       []int `json:"items"`
	Capacity    int   `json:"capacity"`
	MinItemSize int   `json:"minItemSize,omitempty"`
}

type packRequest struct {
	Heuristic string `json:"heuristic"`
	instanceSource
}

type compareRequest struct {
	instanceSource
}

type packResponse struct {
	Heuristic      string  `json:"heuristic"`
	Bins           int     `json:"bins"`
	LowerBound     int     `json:"lowerBound"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	Assignment     []int   `json:"assignment,omitempty"`
}

type compareResponse struct {
	Items      int            `json:"items"`
	Capacity   int            `json:"capacity"`
	LowerBound int            `json:"lowerBound"`
	Results    []packResponse `json:"results"`
}

type instanceSummary struct {
	Name       string `json:"name"`
	Items      int    `json:"items"`
	Capacity   int    `json:"capacity"`
	LowerBound int    `json:"lowerBound"`
}

type instancesResponse struct {
	Instances []instanceSummary `json:"instances"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type instanceResponse struct {
	Name        string `json:"name"`
	Items       []int  `json:"items"`
	Capacity    int    `json:"capacity"`
	MinItemSize int    `json:"minItemSize"`
	LowerBound  int    `json:"lowerBound"`
	Message     string `json:"message,omitempty"`
}

type healthResponse struct {
	Status     string    `json:"status"`
	Heuristics []string  `json:"heuristics"`
	Timestamp  time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
