package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"lyricfill/internal/pipeline"
)

type EnrichRequest struct {
	Path      string `json:"path"`
	Overwrite bool   `json:"overwrite"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Status      JobStatus `json:"status"`
	Progress    int       `json:"progress"`
	Total       int       `json:"total"`
	Written     int       `json:"written"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   string    `json:"created_at"`
	StartedAt   *string   `json:"started_at,omitempty"`
	CompletedAt *string   `json:"completed_at,omitempty"`
}

func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EnrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Path == "" {
		http.Error(w, "Path is required", http.StatusBadRequest)
		return
	}

	// Per-job config: the request picks the target, the server keeps the rest
	jobConfig := s.config
	jobConfig.Path = req.Path
	if req.Overwrite {
		jobConfig.Overwrite = true
	}
	if err := jobConfig.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.jobMgr.CreateJob(req.Path, jobConfig)
	s.logger.Info("Created job %s for path: %s", job.ID, req.Path)

	// Start enrichment in background
	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobToResponse(job))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = s.jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id} or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Handle GET /api/jobs/{id}
	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.jobToResponse(job))
		return
	}

	// Handle POST /api/jobs/{id}/cancel
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		// Stopping the pipeline and marking the job are one step under the
		// manager's lock, so a job starting concurrently cannot slip between.
		err := s.jobMgr.UpdateJob(jobID, func(j *Job) {
			if j.Cancel != nil {
				j.Cancel()
			}
			j.Status = StatusCancelled
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

func (s *Server) processJob(job Job) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelled := false
	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		// A cancel that arrived while the job was still pending wins.
		if j.Status == StatusCancelled {
			cancelled = true
			return
		}
		j.Cancel = cancel
		j.Status = StatusRunning
	})
	if cancelled {
		return
	}

	s.logger.Info("Starting job %s", job.ID)

	hooks := pipeline.Hooks{
		OnFilesFound: func(total int) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Total = total
			})
		},
		OnProgress: func() {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Progress++
			})
		},
	}

	stats, err := pipeline.Run(ctx, job.Config, s.logger, hooks)
	if err != nil {
		s.logger.Error("Job %s failed: %v", job.ID, err)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			// A cancelled job surfaces as a pipeline error; keep its status
			if j.Status != StatusCancelled {
				j.Status = StatusFailed
				j.Error = err.Error()
			}
		})
		return
	}

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Written = stats.Written
		j.Skipped = stats.Skipped
		j.Failed = stats.Failed
		j.Status = StatusCompleted
	})

	s.logger.Info("Job %s completed: %d written, %d skipped, %d failed",
		job.ID, stats.Written, stats.Skipped, stats.Failed)
}

func (s *Server) jobToResponse(job Job) *JobResponse {
	resp := &JobResponse{
		ID:        job.ID,
		Path:      job.Path,
		Status:    job.Status,
		Progress:  job.Progress,
		Total:     job.Total,
		Written:   job.Written,
		Skipped:   job.Skipped,
		Failed:    job.Failed,
		Error:     job.Error,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}

	return resp
}
