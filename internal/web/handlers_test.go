package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lyricfill/internal/config"
	"lyricfill/internal/logger"
)

func newTestServer() (*Server, *JobManager) {
	jm := NewJobManager()
	return NewServer(jm, config.DefaultConfig(), logger.New(logger.LevelError)), jm
}

func jobStatus(jm *JobManager, id string) JobStatus {
	jm.mu.RLock()
	defer jm.mu.RUnlock()
	return jm.jobs[id].Status
}

func waitForTerminal(t *testing.T, jm *JobManager, id string) JobStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if st := jobStatus(jm, id); isTerminal(st) {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", id)
	return ""
}

func TestHandleEnrich(t *testing.T) {
	s, jm := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	// An empty directory: the job completes without touching any provider
	dir := t.TempDir()

	resp, err := http.Post(srv.URL+"/api/enrich", "application/json",
		strings.NewReader(`{"path": "`+dir+`"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var jr JobResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(jr.ID, "job_") {
		t.Errorf("job ID = %q, want job_ prefix", jr.ID)
	}
	if jr.Path != dir {
		t.Errorf("job path = %q, want %q", jr.Path, dir)
	}

	if st := waitForTerminal(t, jm, jr.ID); st != StatusCompleted {
		t.Errorf("job status = %s, want completed", st)
	}
}

func TestHandleEnrichInvalidPath(t *testing.T) {
	s, jm := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/enrich", "application/json",
		strings.NewReader(`{"path": "/does/not/exist"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	var jr JobResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if st := waitForTerminal(t, jm, jr.ID); st != StatusFailed {
		t.Errorf("job status = %s, want failed", st)
	}

	job, err := jm.GetJob(jr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if job.Error == "" {
		t.Error("failed job should carry an error message")
	}
}

func TestHandleEnrichValidation(t *testing.T) {
	s, _ := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/enrich")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/enrich", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty path status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/enrich", "application/json", strings.NewReader(`not json`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleJobLookup(t *testing.T) {
	s, jm := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	job := jm.CreateJob("/music", config.DefaultConfig())

	resp, err := http.Get(srv.URL + "/api/jobs/" + job.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var jr JobResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		t.Fatal(err)
	}
	if jr.ID != job.ID {
		t.Errorf("job ID = %q, want %q", jr.ID, job.ID)
	}

	resp, err = http.Get(srv.URL + "/api/jobs/job_unknown")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleJobCancel(t *testing.T) {
	s, jm := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	job := jm.CreateJob("/music", config.DefaultConfig())

	resp, err := http.Post(srv.URL+"/api/jobs/"+job.ID+"/cancel", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if st := jobStatus(jm, job.ID); st != StatusCancelled {
		t.Errorf("job status = %s, want cancelled", st)
	}
}

func TestCancelBeforeStartKeepsCancelled(t *testing.T) {
	s, jm := newTestServer()

	cfg := config.DefaultConfig()
	cfg.Path = t.TempDir()
	job := jm.CreateJob(cfg.Path, cfg)
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCancelled
	})

	s.processJob(job)

	if st := jobStatus(jm, job.ID); st != StatusCancelled {
		t.Errorf("job status = %s, want cancelled", st)
	}
	snap, err := jm.GetJob(job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.StartedAt != nil {
		t.Error("cancelled job should never start")
	}
}
