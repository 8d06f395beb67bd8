package models

// Instance holds the details of an EC2 instance relevant to volume encryption.
type Instance struct {
	InstanceID          string   `json:"instance_id"`
	Name                string   `json:"name,omitempty"`
	State               string   `json:"state"`
	AvailabilityZone    string   `json:"availability_zone"`
	ManagedByAutoscaler bool     `json:"managed_by_autoscaler"`
	IsSpot              bool     `json:"is_spot"`
	Volumes             []Volume `json:"volumes,omitempty"`
}

// IsRunning reports whether the instance is in the running power state.
func (i Instance) IsRunning() bool {
	return i.State == InstanceStateRunning
}

// IsStopped reports whether the instance is in the stopped power state.
func (i Instance) IsStopped() bool {
	return i.State == InstanceStateStopped
}

// EC2 power states as reported by DescribeInstances.
const (
	InstanceStateRunning = "running"
	InstanceStateStopped = "stopped"
)

// Volume holds the details of an EBS volume. InstanceID is a lookup key back to
// the owning instance, not an ownership relation.
type Volume struct {
	VolumeID         string            `json:"volume_id"`
	Name             string            `json:"name,omitempty"`
	Encrypted        bool              `json:"encrypted"`
	SizeGiB          int32             `json:"size_gib"`
	Device           string            `json:"device"`
	AvailabilityZone string            `json:"availability_zone"`
	InstanceID       string            `json:"instance_id,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// TaskStatus tracks how far a MigrationTask progressed through the pipeline.
type TaskStatus string

const (
	TaskStatusPending       TaskStatus = "pending"
	TaskStatusStopped       TaskStatus = "stopped"
	TaskStatusSnapshotted   TaskStatus = "snapshotted"
	TaskStatusCopied        TaskStatus = "copied"
	TaskStatusVolumeCreated TaskStatus = "volume-created"
	TaskStatusAttached      TaskStatus = "attached"
	TaskStatusDone          TaskStatus = "done"
	TaskStatusFailed        TaskStatus = "failed"
)

// Terminal reports whether the status is an end state of the pipeline.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusDone || s == TaskStatusFailed
}

// MigrationTask binds one unencrypted volume to the snapshots and replacement
// volume derived from it while the pipeline runs. Each task is owned by exactly
// one worker; identifiers recorded here are never shared across tasks.
type MigrationTask struct {
	Volume              Volume
	SourceSnapshotID    string
	EncryptedSnapshotID string
	NewVolumeID         string
	FastRestoreEnabled  bool
	Status              TaskStatus
	FailedStep          string
	Err                 error
}

// NewMigrationTask returns a task in the pending state for the given volume.
func NewMigrationTask(volume Volume) *MigrationTask {
	return &MigrationTask{
		Volume: volume,
		Status: TaskStatusPending,
	}
}

// Fail marks the task failed at the given step, preserving the cause.
func (t *MigrationTask) Fail(step string, err error) {
	t.Status = TaskStatusFailed
	t.FailedStep = step
	t.Err = err
}
