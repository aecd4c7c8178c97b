package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/zulfikawr/chanscope/internal/export"
	"github.com/zulfikawr/chanscope/internal/metrics"
)

// handleHealth returns a simple JSON payload indicating the server is alive
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
	})
}

// handleChannels serves the channel entities document
func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	doc := export.Channels(s.registry.Snapshot(), s.registry.ElapsedNS())
	writeJSON(w, doc)
	observe("/channels", http.StatusOK, start)
}

// handleStreams serves the stream entities document
func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	doc := export.Streams(s.registry.Snapshot(), s.registry.ElapsedNS())
	writeJSON(w, doc)
	observe("/streams", http.StatusOK, start)
}

// handleExport serves the combined document
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	doc := export.Combined(s.registry.Snapshot(), s.registry.ElapsedNS())
	writeJSON(w, doc)
	observe("/export", http.StatusOK, start)
}

// handleChannelLogs serves one channel's retained log entries
func (s *Server) handleChannelLogs(w http.ResponseWriter, r *http.Request) {
	s.handleEntityLogs(w, r, "/channels/{id}/logs", false)
}

// handleStreamLogs serves one stream's retained log entries
func (s *Server) handleStreamLogs(w http.ResponseWriter, r *http.Request) {
	s.handleEntityLogs(w, r, "/streams/{id}/logs", true)
}

// handleEntityLogs resolves the path ID against the registry. Unknown or
// wrong-kind IDs get a 404; the endpoint never reveals more than that.
func (s *Server) handleEntityLogs(w http.ResponseWriter, r *http.Request, path string, wantStream bool) {
	start := time.Now()

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		observe(path, http.StatusNotFound, start)
		return
	}

	view, ok := s.registry.View(id)
	if !ok || view.IsStream() != wantStream {
		http.Error(w, "not found", http.StatusNotFound)
		observe(path, http.StatusNotFound, start)
		return
	}

	writeJSON(w, export.Logs(view))
	observe(path, http.StatusOK, start)
}

// writeJSON writes v with the headers every snapshot response carries.
// Snapshots go stale immediately, so caching is disabled outright.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	_ = json.NewEncoder(w).Encode(v)
}

func observe(path string, status int, start time.Time) {
	code := strconv.Itoa(status)
	metrics.SnapshotRequestsTotal.WithLabelValues(path, code).Inc()
	metrics.SnapshotRequestDuration.WithLabelValues(path, code).Observe(time.Since(start).Seconds())
}
