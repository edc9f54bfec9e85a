package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const pingPeriod = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for simplicity
	},
}

// isTerminal reports whether a job has reached a final state.
func isTerminal(status JobStatus) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		s.logger.Error("WebSocket connection missing job_id")
		return
	}

	// Subscribe to job updates
	updates := s.jobMgr.Subscribe(jobID)
	defer s.jobMgr.Unsubscribe(jobID, updates)

	// Send initial job state; a job that is already done needs no stream
	if job, err := s.jobMgr.GetJob(jobID); err == nil {
		if err := s.writeJob(conn, job); err != nil {
			return
		}
		if isTerminal(job.Status) {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case job, ok := <-updates:
			if !ok {
				return
			}

			if err := s.writeJob(conn, job); err != nil {
				s.logger.Error("Failed to write WebSocket message: %v", err)
				return
			}

			// Close connection once the job is done
			if isTerminal(job.Status) {
				return
			}

		case <-ticker.C:
			// Send ping to keep connection alive
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeJob(conn *websocket.Conn, job Job) error {
	data, err := json.Marshal(s.jobToResponse(job))
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
