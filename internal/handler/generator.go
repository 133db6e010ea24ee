// Package handler serves the generator page, downloads and the JSON view
// of the last result.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/content"
	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/export"
	"github.com/rampantspark/genpass/internal/stats"
)

// NothingToSave is shown when a download is requested with no items.
const NothingToSave = "No data available to save."

// Options configures a GeneratorHandler.
type Options struct {
	DefaultCategory category.Category // Category used when the form omits one
	DefaultCount    uint              // Count used when the form value is not a number
	MaxCount        uint              // Upper bound for requested counts
}

// GeneratorHandler handles the web host requests.
//
// All clients share one Registry, so the page and the download always
// reflect the most recent generation from any client.
type GeneratorHandler struct {
	registry *engine.Registry
	stats    *stats.Manager
	logger   *slog.Logger
	opts     Options
}

// New creates a new generator handler.
func New(registry *engine.Registry, stats *stats.Manager, logger *slog.Logger, opts Options) *GeneratorHandler {
	if opts.MaxCount == 0 {
		opts.MaxCount = 1
	}
	opts.DefaultCount = clampCount(uint64(opts.DefaultCount), opts.MaxCount)
	if !opts.DefaultCategory.Valid() {
		opts.DefaultCategory = category.Password
	}
	return &GeneratorHandler{
		registry: registry,
		stats:    stats,
		logger:   logger,
		opts:     opts,
	}
}

// Register adds the handler routes to mux.
func (h *GeneratorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /generate", h.HandleGenerate)
	mux.HandleFunc("POST /generate", h.HandleGenerate)
	mux.HandleFunc("GET /download", h.HandleDownload)
	mux.HandleFunc("GET /api/last", h.HandleLast)
}

// HandleIndex serves the generator page with the last result.
func (h *GeneratorHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, http.StatusOK, h.pageData(h.opts.DefaultCount, ""))
}

// HandleGenerate runs a generation from the "category" and "count" form
// values and serves the page with the new result.
//
// An unknown category answers 400 and leaves the last result untouched.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	c := h.opts.DefaultCategory
	if name := r.Form.Get("category"); name != "" {
		parsed, err := category.Parse(name)
		if err != nil {
			h.logger.Debug("Rejected generation", "category", name, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c = parsed
	}
	n := parseCount(r.Form.Get("count"), h.opts.DefaultCount, h.opts.MaxCount)

	ctx := r.Context()
	res, err := h.registry.Generate(c, n)
	if err != nil {
		// Only an invalid category fails, and it was parsed above
		h.logger.Error("Generation failed", "category", c, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	client := h.stats.GetClientIP(r)
	h.logger.Info("Generated", "category", res.Category, "count", res.Count, "elapsed", res.ElapsedText, "client", client)
	if err := h.stats.RecordGeneration(ctx, stats.FromResult(res, client)); err != nil {
		h.logger.Warn("Failed to record generation", "error", err)
	}

	if ctx.Err() != nil {
		return
	}
	h.writePage(w, http.StatusOK, h.pageData(n, ""))
}

// HandleDownload serves the raw buffer of the last result as a text file
// named "<category>_<timestamp>.txt".
func (h *GeneratorHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	last := h.registry.Last()
	if export.Empty(last.Raw) {
		h.writePage(w, http.StatusNotFound, h.pageData(h.opts.DefaultCount, NothingToSave))
		return
	}

	name := export.Filename(last.Category, last.TimestampText)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Cache-Control", "no-store")
	if err := export.Write(w, &last); err != nil {
		h.logger.Warn("Failed to write download", "file", name, "error", err)
	}
}

// lastResponse is the JSON view of the last result.
type lastResponse struct {
	Category      string   `json:"category"`
	Count         uint     `json:"count"`
	Elapsed       string   `json:"elapsed"`
	Timestamp     string   `json:"timestamp"`
	PreviewItems  int      `json:"previewItems"`
	Preview       []string `json:"preview"`
	PreviewCapped bool     `json:"previewCapped"`
}

// HandleLast serves the last result as JSON, or 404 before the first run.
func (h *GeneratorHandler) HandleLast(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if !h.registry.HasResult() {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no generation yet"})
		return
	}

	last := h.registry.Last()
	items := last.Items()
	resp := lastResponse{
		Category:      last.Category.String(),
		Count:         last.Count,
		Elapsed:       last.ElapsedText,
		Timestamp:     last.TimestampText,
		PreviewItems:  last.PreviewItems,
		Preview:       items[:last.PreviewItems],
		PreviewCapped: uint(last.PreviewItems) < last.Count,
	}
	if resp.Preview == nil {
		resp.Preview = []string{}
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Warn("Failed to encode last result", "error", err)
	}
}

func (h *GeneratorHandler) pageData(count uint, message string) content.PageData {
	data := content.NewPageData(h.registry, count, h.opts.MaxCount)
	if data.Result == nil {
		data.Selected = h.opts.DefaultCategory
	}
	data.Message = message
	return data
}

func (h *GeneratorHandler) writePage(w http.ResponseWriter, status int, data content.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.WriteHeader(status)
	io.WriteString(w, content.RenderIndex(data))
}
