package orchestrator

import "time"

// Config contains all the parameters needed for a migration run.
type Config struct {
	InstanceIDs         []string      // Explicit EC2 instance IDs; empty means all eligible instances
	KMSKeyID            string        // KMS key used for the encrypted snapshot copies and volumes
	ConcurrencyLimit    int           // Maximum number of instances processed concurrently (0 = unlimited)
	EnableFastRestore   bool          // Enable fast snapshot restore on encrypted copies
	OutputFormat        string        // Output format (json or table)
	SnapshotWaitTimeout time.Duration // Ceiling for snapshot completion waits (0 = client default)
}

// InstanceState is the per-instance position in the migration state machine.
type InstanceState string

const (
	StateDiscovered InstanceState = "DISCOVERED"
	StateStopping   InstanceState = "STOPPING"
	StateStopped    InstanceState = "STOPPED"
	StateMigrating  InstanceState = "MIGRATING"
	StateRestarting InstanceState = "RESTARTING"
	StateRunning    InstanceState = "RUNNING"
)

// Pipeline step names recorded on failed tasks and reported to operators.
const (
	StepStopInstance      = "stop-instance"
	StepSnapshot          = "snapshot"
	StepWaitSnapshot      = "wait-snapshot"
	StepCopyEncrypted     = "copy-encrypted"
	StepWaitEncryptedCopy = "wait-encrypted-copy"
	StepCreateVolume      = "create-volume"
	StepCopyTags          = "copy-tags"
	StepDetachVolume      = "detach-volume"
	StepAttachVolume      = "attach-volume"
)
