package report

import (
	"sort"
	"sync"
	"time"

	"ebsencryptor/internal/models"
)

// VolumeResult is the terminal outcome of one volume's migration pipeline.
type VolumeResult struct {
	VolumeID    string            `json:"volume_id"`
	Name        string            `json:"name,omitempty"`
	SizeGiB     int32             `json:"size_gib"`
	Device      string            `json:"device,omitempty"`
	NewVolumeID string            `json:"new_volume_id,omitempty"`
	Status      models.TaskStatus `json:"status"`
	FailedStep  string            `json:"failed_step,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// InstanceResult is the outcome of processing one instance.
type InstanceResult struct {
	InstanceID string         `json:"instance_id"`
	Name       string         `json:"name,omitempty"`
	Skipped    bool           `json:"skipped,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
	Restarted  bool           `json:"restarted,omitempty"`
	Error      string         `json:"error,omitempty"`
	Duration   time.Duration  `json:"duration_ns,omitempty"`
	Volumes    []VolumeResult `json:"volumes,omitempty"`
}

// RunSummary accumulates per-instance results from concurrent workers.
// Appends are synchronized; results are written once per instance and never
// mutated afterwards.
type RunSummary struct {
	mu      sync.Mutex
	results []InstanceResult
	started time.Time
}

// NewRunSummary creates an empty summary for a run starting now.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		started: time.Now(),
	}
}

// Add records the result for one instance. Safe for concurrent use.
func (s *RunSummary) Add(result InstanceResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Results returns a copy of the recorded results, ordered by instance ID.
func (s *RunSummary) Results() []InstanceResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]InstanceResult, len(s.results))
	copy(results, s.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].InstanceID < results[j].InstanceID
	})
	return results
}

// Elapsed returns the wall-clock duration since the run started.
func (s *RunSummary) Elapsed() time.Duration {
	return time.Since(s.started)
}

// Counts holds the aggregate totals of a run.
type Counts struct {
	InstancesProcessed int   `json:"instances_processed"`
	InstancesSkipped   int   `json:"instances_skipped"`
	InstancesFailed    int   `json:"instances_failed"`
	VolumesMigrated    int   `json:"volumes_migrated"`
	VolumesFailed      int   `json:"volumes_failed"`
	MigratedSizeGiB    int64 `json:"migrated_size_gib"`
}

// Counts computes the aggregate totals over all recorded results.
func (s *RunSummary) Counts() Counts {
	var counts Counts
	for _, result := range s.Results() {
		if result.Skipped {
			counts.InstancesSkipped++
			continue
		}
		counts.InstancesProcessed++
		if result.Error != "" {
			counts.InstancesFailed++
		}
		for _, volume := range result.Volumes {
			switch volume.Status {
			case models.TaskStatusDone:
				counts.VolumesMigrated++
				counts.MigratedSizeGiB += int64(volume.SizeGiB)
			case models.TaskStatusFailed:
				counts.VolumesFailed++
			}
		}
	}
	return counts
}
