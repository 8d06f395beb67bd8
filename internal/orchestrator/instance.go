package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ebsencryptor/internal/discovery"
	"ebsencryptor/internal/models"
	"ebsencryptor/internal/report"
)

// processInstance drives one instance through the migration state machine:
// DISCOVERED -> STOPPING -> STOPPED -> MIGRATING -> RESTARTING -> RUNNING.
// The instance is stopped at most once and restarted exactly once if
// this run stopped it, regardless of per-volume outcomes. An instance that was
// already stopped by the operator is left stopped.
func (s *Service) processInstance(ctx context.Context, target discovery.Target) report.InstanceResult {
	instance := target.Instance
	result := report.InstanceResult{
		InstanceID: instance.InstanceID,
		Name:       instance.Name,
	}
	start := time.Now()

	s.transition(instance, StateDiscovered, StateStopping)
	stoppedByUs, err := s.cloud.StopInstance(ctx, instance.InstanceID)
	if err != nil {
		s.logger.Error("Instance %s: failed to stop: %s", instance.InstanceID, err)
		result.Error = fmt.Sprintf("failed to stop instance: %s", err)
		result.Volumes = failAllVolumes(target.Volumes, StepStopInstance, result.Error)
		result.Duration = time.Since(start)
		return result
	}
	s.transition(instance, StateStopping, StateStopped)
	if !stoppedByUs {
		s.logger.Info("Instance %s (%s) was already stopped", instance.InstanceID, instance.Name)
	}

	s.transition(instance, StateStopped, StateMigrating)
	result.Volumes = s.migrateVolumes(ctx, instance, target.Volumes)
	result.Restarted, result.Error = s.restoreInstanceState(ctx, instance, stoppedByUs)
	result.Duration = time.Since(start)

	s.logger.Info("Instance %s (%s) processed in %s. Verify that services hosted on it are healthy.",
		instance.InstanceID, instance.Name, result.Duration.Round(time.Second))
	return result
}

// migrateVolumes runs the per-volume pipelines concurrently. All pipelines see
// the instance stopped before any begins, and the caller restarts the instance
// only after every pipeline has reached a terminal state (the errgroup Wait is
// the join barrier). A failed volume never aborts its siblings.
func (s *Service) migrateVolumes(ctx context.Context, instance models.Instance, volumes []models.Volume) []report.VolumeResult {
	g := new(errgroup.Group)
	resultChan := make(chan report.VolumeResult, len(volumes))

	for _, volume := range volumes {
		// Cancellation stops new pipelines from starting; in-flight ones
		// finish to avoid stranding a half-migrated volume.
		if ctx.Err() != nil {
			resultChan <- report.VolumeResult{
				VolumeID:   volume.VolumeID,
				Name:       volume.Name,
				SizeGiB:    volume.SizeGiB,
				Device:     volume.Device,
				Status:     models.TaskStatusFailed,
				FailedStep: StepSnapshot,
				Error:      "run cancelled before pipeline started",
			}
			continue
		}
		volume := volume
		g.Go(func() error {
			task := models.NewMigrationTask(volume)
			s.runPipeline(ctx, instance, task)
			resultChan <- volumeResult(task)
			return nil
		})
	}

	_ = g.Wait()
	close(resultChan)

	results := make([]report.VolumeResult, 0, len(volumes))
	for result := range resultChan {
		results = append(results, result)
	}
	return results
}

// restoreInstanceState restarts the instance when this run stopped it. The
// restart is attempted even when the run was cancelled or every volume failed;
// stranding a previously running workload is worse than leaving a volume
// unencrypted.
func (s *Service) restoreInstanceState(ctx context.Context, instance models.Instance, stoppedByUs bool) (bool, string) {
	if !stoppedByUs {
		s.logger.Info("Instance %s left stopped to match its state before the run", instance.InstanceID)
		return false, ""
	}

	s.transition(instance, StateMigrating, StateRestarting)
	if err := s.cloud.StartInstance(context.WithoutCancel(ctx), instance.InstanceID); err != nil {
		s.logger.Error("Instance %s: failed to restart: %s", instance.InstanceID, err)
		return false, fmt.Sprintf("failed to restart instance: %s", err)
	}
	s.transition(instance, StateRestarting, StateRunning)
	return true, ""
}

// transition logs a state machine transition for one instance.
func (s *Service) transition(instance models.Instance, from, to InstanceState) {
	s.logger.Info("Instance %s: %s -> %s", instance.InstanceID, from, to)
}

func failAllVolumes(volumes []models.Volume, step, reason string) []report.VolumeResult {
	results := make([]report.VolumeResult, 0, len(volumes))
	for _, volume := range volumes {
		results = append(results, report.VolumeResult{
			VolumeID:   volume.VolumeID,
			Name:       volume.Name,
			SizeGiB:    volume.SizeGiB,
			Device:     volume.Device,
			Status:     models.TaskStatusFailed,
			FailedStep: step,
			Error:      reason,
		})
	}
	return results
}

// volumeResult converts a finished task into its summary row.
func volumeResult(task *models.MigrationTask) report.VolumeResult {
	result := report.VolumeResult{
		VolumeID:    task.Volume.VolumeID,
		Name:        task.Volume.Name,
		SizeGiB:     task.Volume.SizeGiB,
		Device:      task.Volume.Device,
		NewVolumeID: task.NewVolumeID,
		Status:      task.Status,
		FailedStep:  task.FailedStep,
	}
	if task.Err != nil {
		result.Error = task.Err.Error()
	}
	return result
}
