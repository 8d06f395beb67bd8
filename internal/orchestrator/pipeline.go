package orchestrator

import (
	"context"

	"ebsencryptor/internal/models"
	aws "ebsencryptor/internal/providers/aws"
)

// runPipeline executes the encryption pipeline for one volume of a stopped
// instance. Steps are strictly sequential; the first unrecoverable failure
// marks the task failed at that step and aborts only this volume. The source
// volume is never detached before its encrypted replacement volume exists, so
// the narrowest failure window is between detach and attach.
func (s *Service) runPipeline(ctx context.Context, instance models.Instance, task *models.MigrationTask) {
	volume := task.Volume
	task.Status = models.TaskStatusStopped

	s.logger.Info("Volume %s: creating snapshot", volume.VolumeID)
	sourceSnapshotID, err := s.cloud.CreateSnapshot(ctx, volume)
	if err != nil {
		task.Fail(StepSnapshot, err)
		return
	}
	task.SourceSnapshotID = sourceSnapshotID

	if err := s.cloud.WaitSnapshotCompleted(ctx, sourceSnapshotID, s.config.SnapshotWaitTimeout); err != nil {
		task.Fail(StepWaitSnapshot, err)
		return
	}
	task.Status = models.TaskStatusSnapshotted
	s.logger.Info("Volume %s: snapshot %s completed", volume.VolumeID, sourceSnapshotID)

	s.logger.Info("Volume %s: copying snapshot %s with KMS key %s", volume.VolumeID, sourceSnapshotID, s.config.KMSKeyID)
	encryptedSnapshotID, err := s.cloud.CopySnapshotEncrypted(ctx, sourceSnapshotID, s.config.KMSKeyID,
		aws.CopySnapshotOptions{SourceVolume: volume})
	if err != nil {
		task.Fail(StepCopyEncrypted, err)
		return
	}
	task.EncryptedSnapshotID = encryptedSnapshotID

	if s.config.EnableFastRestore {
		if err := s.cloud.EnableFastRestore(ctx, encryptedSnapshotID, []string{volume.AvailabilityZone}); err != nil {
			s.logger.Warn("Volume %s: could not enable fast snapshot restore on %s: %s",
				volume.VolumeID, encryptedSnapshotID, err)
		} else {
			task.FastRestoreEnabled = true
			s.logger.Info("Volume %s: fast snapshot restore enabled on %s in %s",
				volume.VolumeID, encryptedSnapshotID, volume.AvailabilityZone)
		}
	}

	if err := s.cloud.WaitSnapshotCompleted(ctx, encryptedSnapshotID, s.config.SnapshotWaitTimeout); err != nil {
		task.Fail(StepWaitEncryptedCopy, err)
		return
	}
	task.Status = models.TaskStatusCopied
	s.logger.Info("Volume %s: encrypted snapshot %s completed", volume.VolumeID, encryptedSnapshotID)

	// The encrypted copy is self-sufficient now; losing the source snapshot
	// costs nothing but storage.
	if err := s.cloud.DeleteSnapshot(ctx, sourceSnapshotID); err != nil {
		s.logger.Warn("Volume %s: could not delete source snapshot %s: %s", volume.VolumeID, sourceSnapshotID, err)
	} else {
		s.logger.Info("Volume %s: source snapshot %s deleted", volume.VolumeID, sourceSnapshotID)
	}

	s.logger.Info("Volume %s: creating encrypted volume from %s in %s",
		volume.VolumeID, encryptedSnapshotID, volume.AvailabilityZone)
	newVolumeID, err := s.cloud.CreateVolume(ctx, encryptedSnapshotID, volume.AvailabilityZone, s.config.KMSKeyID)
	if err != nil {
		task.Fail(StepCreateVolume, err)
		return
	}
	task.NewVolumeID = newVolumeID
	task.Status = models.TaskStatusVolumeCreated

	if err := s.cloud.CopyTags(ctx, volume.VolumeID, newVolumeID); err != nil {
		task.Fail(StepCopyTags, err)
		return
	}

	s.logger.Info("Volume %s: detaching from instance %s", volume.VolumeID, instance.InstanceID)
	if err := s.cloud.DetachVolume(ctx, volume.VolumeID); err != nil {
		task.Fail(StepDetachVolume, err)
		return
	}

	// The device path recorded at discovery time is reused verbatim; device
	// enumeration order is not stable once the old volume is gone.
	s.logger.Info("Volume %s: attaching replacement %s at %s", volume.VolumeID, newVolumeID, volume.Device)
	if err := s.cloud.AttachVolume(ctx, newVolumeID, instance.InstanceID, volume.Device); err != nil {
		task.Fail(StepAttachVolume, err)
		return
	}
	task.Status = models.TaskStatusAttached

	s.cleanupEncryptedSnapshot(ctx, task)
	task.Status = models.TaskStatusDone
	s.logger.Info("Volume %s: migrated to encrypted volume %s", volume.VolumeID, newVolumeID)
}

// cleanupEncryptedSnapshot disables fast restore and deletes the encrypted
// snapshot once the new volume exists independently of it. Both operations are
// best-effort: the encrypted volume is already attached.
func (s *Service) cleanupEncryptedSnapshot(ctx context.Context, task *models.MigrationTask) {
	volume := task.Volume
	if task.FastRestoreEnabled {
		if err := s.cloud.DisableFastRestore(ctx, task.EncryptedSnapshotID, []string{volume.AvailabilityZone}); err != nil {
			s.logger.Warn("Volume %s: could not disable fast snapshot restore on %s: %s",
				volume.VolumeID, task.EncryptedSnapshotID, err)
			return
		}
	}
	if err := s.cloud.DeleteSnapshot(ctx, task.EncryptedSnapshotID); err != nil {
		s.logger.Warn("Volume %s: could not delete encrypted snapshot %s: %s",
			volume.VolumeID, task.EncryptedSnapshotID, err)
	}
}
