package server

import (
	"context"
	"net/http"
	"runtime"
	"time"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ok(w, "ok", map[string]any{"status": "UP"})
}

func (s *Server) healthDetailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "UP"
	if err := s.db.PingContext(ctx); err != nil {
		dbStatus = "DOWN"
	}

	data := map[string]any{
		"status":     dbStatus,
		"uptime":     time.Since(s.started).Round(time.Second).String(),
		"goVersion":  runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"database":   dbStatus,
		"clientMode": s.cfg.ClientMode,
		"cache":      s.cfg.CacheBackend,
		"platform":   s.cfg.DefaultPlatform,
		"regional":   s.cfg.RegionalRoute,
	}
	if dbStatus != "UP" {
		writeJSON(w, http.StatusServiceUnavailable, apiResponse{Success: false, Message: "degraded", Data: data})
		return
	}
	ok(w, "ok", data)
}
