package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log
// records. Errors are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnSolveStart(_ context.Context, width, height float64) {
	h.logger.Debug("solve start", "width", width, "height", height)
}

func (h *LogHooks) OnSolveComplete(_ context.Context, nodeCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("solve failed", "nodes", nodeCount, "duration", duration, "err", err)
		return
	}
	h.logger.Debug("solve complete", "nodes", nodeCount, "duration", duration)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "duration", duration, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", duration)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, statusCode int, duration time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", statusCode, "duration", duration)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}

var (
	_ SolveHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
