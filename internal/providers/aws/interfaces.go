package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"ebsencryptor/internal/models"
)

// EC2ClientAPI defines the interface for EC2 operations we need to mock.
// The method signatures match the AWS SDK client so the interface also
// satisfies the SDK waiter client interfaces.
//
//go:generate mockery --name=EC2ClientAPI --output=./mocks
type EC2ClientAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	CreateSnapshot(ctx context.Context, params *ec2.CreateSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error)
	CopySnapshot(ctx context.Context, params *ec2.CopySnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CopySnapshotOutput, error)
	DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
	CreateVolume(ctx context.Context, params *ec2.CreateVolumeInput, optFns ...func(*ec2.Options)) (*ec2.CreateVolumeOutput, error)
	AttachVolume(ctx context.Context, params *ec2.AttachVolumeInput, optFns ...func(*ec2.Options)) (*ec2.AttachVolumeOutput, error)
	DetachVolume(ctx context.Context, params *ec2.DetachVolumeInput, optFns ...func(*ec2.Options)) (*ec2.DetachVolumeOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	EnableFastSnapshotRestores(ctx context.Context, params *ec2.EnableFastSnapshotRestoresInput, optFns ...func(*ec2.Options)) (*ec2.EnableFastSnapshotRestoresOutput, error)
	DisableFastSnapshotRestores(ctx context.Context, params *ec2.DisableFastSnapshotRestoresInput, optFns ...func(*ec2.Options)) (*ec2.DisableFastSnapshotRestoresOutput, error)
}

// AutoScalingClientAPI defines the interface for Auto Scaling operations we need to mock
//
//go:generate mockery --name=AutoScalingClientAPI --output=./mocks
type AutoScalingClientAPI interface {
	DescribeAutoScalingInstances(ctx context.Context, params *autoscaling.DescribeAutoScalingInstancesInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingInstancesOutput, error)
}

// CopySnapshotOptions carries optional context for an encrypted snapshot copy.
type CopySnapshotOptions struct {
	// SourceVolume provides identity for snapshot descriptions and Name tags.
	SourceVolume models.Volume
}

// CloudClientAPI is the capability interface the migration workflow consumes.
// Implementations own retry/backoff for transient remote errors; callers see
// classified *Error values (see errors.go) on failure.
//
//go:generate mockery --name=CloudClientAPI --output=./cloudmocks --outpkg=cloudmocks
type CloudClientAPI interface {
	// DescribeInstances returns the given instances with their attached
	// volumes populated. An empty slice of IDs means all instances in the
	// region.
	DescribeInstances(ctx context.Context, instanceIDs []string) ([]models.Instance, error)

	// StopInstance stops the instance if it is not already stopped and blocks
	// until it reaches the stopped state. It reports whether a stop was
	// actually issued.
	StopInstance(ctx context.Context, instanceID string) (bool, error)

	// StartInstance starts the instance and blocks until it is running.
	StartInstance(ctx context.Context, instanceID string) error

	// CreateSnapshot snapshots the volume, tagging the snapshot with the
	// source volume identity, and returns the new snapshot ID.
	CreateSnapshot(ctx context.Context, volume models.Volume) (string, error)

	// WaitSnapshotCompleted blocks until the snapshot reaches the completed
	// state or the timeout ceiling elapses.
	WaitSnapshotCompleted(ctx context.Context, snapshotID string, timeout time.Duration) error

	// CopySnapshotEncrypted copies the snapshot into a new snapshot encrypted
	// under the given KMS key and returns the copy's ID.
	CopySnapshotEncrypted(ctx context.Context, snapshotID, kmsKeyID string, opts CopySnapshotOptions) (string, error)

	DeleteSnapshot(ctx context.Context, snapshotID string) error

	// CreateVolume creates an encrypted volume from the snapshot in the given
	// availability zone and blocks until it is available.
	CreateVolume(ctx context.Context, snapshotID, availabilityZone, kmsKeyID string) (string, error)

	// DetachVolume detaches the volume and blocks until it is available.
	DetachVolume(ctx context.Context, volumeID string) error

	// AttachVolume attaches the volume to the instance at the given device
	// path and blocks until it is in use.
	AttachVolume(ctx context.Context, volumeID, instanceID, device string) error

	// CopyTags copies operator tags from the source volume to the target,
	// excluding AWS-reserved tag keys.
	CopyTags(ctx context.Context, sourceVolumeID, targetVolumeID string) error

	EnableFastRestore(ctx context.Context, snapshotID string, availabilityZones []string) error
	DisableFastRestore(ctx context.Context, snapshotID string, availabilityZones []string) error

	IsInAutoScalingGroup(ctx context.Context, instanceID string) (bool, error)
	IsSpotInstance(ctx context.Context, instanceID string) (bool, error)
}
