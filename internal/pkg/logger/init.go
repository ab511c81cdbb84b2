package logger

import (
	log "log/slog"
	"os"
)

// InitLogger 初始化全局 slog，JSON 输出到 stdout，并注入 trace_id
func InitLogger() {
	handler := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})
	logger := log.New(&ContextHandler{handler})
	log.SetDefault(logger)
}
