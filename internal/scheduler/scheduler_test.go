package scheduler

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 5; i++ {
		h.AddResult(JobResult{
			JobName:   "lead_rescore",
			StartTime: time.Now(),
			Success:   i%2 == 0,
		})
	}

	results := h.GetLatestResults(3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// 3 of 5 runs succeeded.
	rate := h.GetSuccessRate()
	if rate < 0.59 || rate > 0.61 {
		t.Errorf("success rate: got %.2f, want 0.60", rate)
	}
}

func TestJobHistory_Capped(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{
			JobName: fmt.Sprintf("run-%d", i),
			Success: true,
		})
	}

	results := h.GetLatestResults(200)
	if len(results) != 100 {
		t.Fatalf("history should cap at 100, got %d", len(results))
	}
	// The oldest runs are evicted first.
	if results[0].JobName != "run-50" {
		t.Errorf("oldest kept run: got %s, want run-50", results[0].JobName)
	}
}

func TestJobHistory_Empty(t *testing.T) {
	h := &JobHistory{}

	if got := h.GetSuccessRate(); got != 0 {
		t.Errorf("empty history success rate: got %.2f, want 0", got)
	}
	if got := h.GetLatestResults(10); len(got) != 0 {
		t.Errorf("empty history results: got %d", len(got))
	}
}

func TestJobResultError(t *testing.T) {
	result := JobResult{
		JobName: "utility_rate_refresh",
		Success: false,
		Error:   errors.New("connection refused").Error(),
	}
	if result.Error != "connection refused" {
		t.Errorf("unexpected error text: %s", result.Error)
	}
}
