package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a structured logger at debug
// level, and failures at warn level.
type LogPipelineHooks struct {
	logger *log.Logger
}

// NewLogPipelineHooks returns pipeline hooks that log to logger.
func NewLogPipelineHooks(logger *log.Logger) *LogPipelineHooks {
	return &LogPipelineHooks{logger: logger}
}

func (h *LogPipelineHooks) OnBuildStart(_ context.Context, records int) {
	h.logger.Debug("build started", "records", records)
}

func (h *LogPipelineHooks) OnBuildComplete(_ context.Context, nodes, dropped int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("build failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("build complete", "nodes", nodes, "dropped", dropped, "duration", d)
}

func (h *LogPipelineHooks) OnLayoutStart(_ context.Context, nodes int) {
	h.logger.Debug("layout started", "nodes", nodes)
}

func (h *LogPipelineHooks) OnLayoutComplete(_ context.Context, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("layout complete", "nodes", nodes, "duration", d)
}

func (h *LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err, "duration", d)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

// LogCacheHooks writes cache events to a structured logger at debug level.
type LogCacheHooks struct {
	logger *log.Logger
}

// NewLogCacheHooks returns cache hooks that log to logger.
func NewLogCacheHooks(logger *log.Logger) *LogCacheHooks {
	return &LogCacheHooks{logger: logger}
}

func (h *LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes one line per API response.
type LogHTTPHooks struct {
	logger *log.Logger
}

// NewLogHTTPHooks returns HTTP hooks that log to logger.
func NewLogHTTPHooks(logger *log.Logger) *LogHTTPHooks {
	return &LogHTTPHooks{logger: logger}
}

func (h *LogHTTPHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHTTPHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	switch {
	case status >= 500:
		h.logger.Error("response", "method", method, "route", route, "status", status, "duration", d)
	case status >= 400:
		h.logger.Warn("response", "method", method, "route", route, "status", status, "duration", d)
	default:
		h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
	}
}

var (
	_ PipelineHooks = (*LogPipelineHooks)(nil)
	_ CacheHooks    = (*LogCacheHooks)(nil)
	_ HTTPHooks     = (*LogHTTPHooks)(nil)
)
