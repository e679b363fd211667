package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/buildinfo"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/cache"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/httputil"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/store"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type layoutRequest struct {
	Title   string            `json:"title,omitempty"`
	Records []tracking.Record `json:"records"`
	Options pipeline.Options  `json:"options"`
}

type createResponse struct {
	ID      string   `json:"id"`
	Nodes   int      `json:"nodes"`
	Dropped []string `json:"dropped,omitempty"`
	Cached  bool     `json:"cached"`
}

type listResponse struct {
	Layouts []store.Summary `json:"layouts"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	for _, c := range s.checks {
		if err := c.p.Ping(ctx); err != nil {
			s.fail(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "%s unreachable", c.name))
			return
		}
	}
	httputil.RespondJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleComputeLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLayoutRequest(w, r)
	if !ok {
		return
	}
	l, hit, err := s.runner.ComputeLayout(r.Context(), req.Records, s.options(req.Options))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	httputil.RespondJSON(w, http.StatusOK, l)
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLayoutRequest(w, r)
	if !ok {
		return
	}
	l, hit, err := s.runner.ComputeLayout(r.Context(), req.Records, s.options(req.Options))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	recordsHash, err := cache.HashJSON(req.Records)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := s.store.Save(r.Context(), store.Document{
		Title:       req.Title,
		RecordsHash: recordsHash,
		Layout:      l,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/layouts/"+doc.ID)
	httputil.RespondJSON(w, http.StatusCreated, createResponse{
		ID:      doc.ID,
		Nodes:   len(l.Nodes),
		Dropped: l.Dropped,
		Cached:  hit,
	})
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidRequest, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	httputil.RespondJSON(w, http.StatusOK, listResponse{Layouts: summaries})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	opts, err := s.renderOptions(r, doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	artifacts, hit, err := s.runner.Render(r.Context(), doc.Layout, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (layoutRequest, bool) {
	var req layoutRequest
	if err := httputil.DecodeJSON(w, r, &req, s.maxBodyBytes); err != nil {
		s.fail(w, r, err)
		return req, false
	}
	if len(req.Records) > s.maxRecords {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidRequest,
			"too many records: %d (max %d)", len(req.Records), s.maxRecords))
		return req, false
	}
	return req, true
}

func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (store.Document, bool) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.fail(w, r, err)
		return store.Document{}, false
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return store.Document{}, false
	}
	return doc, true
}

// options overlays the fields a request sets on the server defaults.
// Layout geometry is merged field by field, so a request may change just
// the node width.
func (s *Server) options(req pipeline.Options) pipeline.Options {
	d := s.defaults
	out := pipeline.Options{
		Layout:      mergeConfig(d.Layout, req.Layout),
		Style:       firstNonEmpty(req.Style, d.Style),
		Engine:      firstNonEmpty(req.Engine, d.Engine),
		Title:       firstNonEmpty(req.Title, d.Title),
		Interactive: req.Interactive || d.Interactive,
		Tooltips:    req.Tooltips || d.Tooltips,
		WithData:    req.WithData || d.WithData,
		Scale:       d.Scale,
		Refresh:     req.Refresh,
	}
	if req.Scale != 0 {
		out.Scale = req.Scale
	}
	return out
}

func (s *Server) renderOptions(r *http.Request, doc store.Document) (pipeline.Options, error) {
	q := r.URL.Query()
	req := pipeline.Options{
		Style:  q.Get("style"),
		Engine: q.Get("engine"),
		Title:  firstNonEmpty(q.Get("title"), doc.Title),
	}
	for name, dst := range map[string]*bool{
		"interactive": &req.Interactive,
		"tooltips":    &req.Tooltips,
		"data":        &req.WithData,
		"refresh":     &req.Refresh,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return pipeline.Options{}, errors.New(errors.ErrCodeInvalidRequest, "%s must be a boolean, got %q", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidRequest, "scale must be a number, got %q", v)
		}
		req.Scale = f
	}

	opts := s.options(req)
	opts.Layout = doc.Layout.Config
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	return opts, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.RespondError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
	}
}

func mergeConfig(base, over layout.Config) layout.Config {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	if base == (layout.Config{}) {
		base = layout.DefaultConfig()
	}
	set(&base.NodeWidth, over.NodeWidth)
	set(&base.NodeHeight, over.NodeHeight)
	set(&base.SiblingSpacing, over.SiblingSpacing)
	set(&base.SubtreeSpacing, over.SubtreeSpacing)
	set(&base.LevelHeight, over.LevelHeight)
	set(&base.Padding, over.Padding)
	return base
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
