// Package aws wraps the EC2 and Auto Scaling APIs behind the capability
// interface the migration workflow consumes. It owns retry/backoff for
// transient remote errors and bounded waits on remote state.
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"ebsencryptor/internal/models"
)

// Wait ceilings for blocking operations on remote state.
const (
	DefaultInstanceWaitTimeout = 15 * time.Minute
	DefaultVolumeWaitTimeout   = 10 * time.Minute
	DefaultSnapshotWaitTimeout = 60 * time.Minute

	waiterMinDelay = 5 * time.Second
	waiterMaxDelay = 30 * time.Second
)

// Client implements CloudClientAPI on top of the AWS SDK clients.
type Client struct {
	ec2         EC2ClientAPI
	autoscaling AutoScalingClientAPI
	region      string
}

var _ CloudClientAPI = (*Client)(nil)

// NewClientWithDefaultConfig creates a Client using the shared AWS config for
// the given profile and region. The SDK retryer runs in adaptive mode so
// throttled requests back off before our own retry layer sees them.
func NewClientWithDefaultConfig(ctx context.Context, profile, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profile),
		config.WithRegion(region),
		config.WithRetryMode(aws.RetryModeAdaptive),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewClientWithAPIs(ec2.NewFromConfig(cfg), autoscaling.NewFromConfig(cfg), region), nil
}

// NewClientWithAPIs creates a Client with provided service clients.
func NewClientWithAPIs(ec2Client EC2ClientAPI, asgClient AutoScalingClientAPI, region string) *Client {
	return &Client{
		ec2:         ec2Client,
		autoscaling: asgClient,
		region:      region,
	}
}

// DescribeInstances returns the requested instances with their attached
// volumes populated. Terminated and terminating instances are excluded.
func (c *Client) DescribeInstances(ctx context.Context, instanceIDs []string) ([]models.Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"pending", "running", "stopping", "stopped"},
			},
		},
	}
	if len(instanceIDs) > 0 {
		input.InstanceIds = instanceIDs
	}

	var instances []models.Instance
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ClassifyAWSError(err, EC2ResourceType, "")
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				converted := convertInstance(instance)
				volumes, err := c.describeAttachedVolumes(ctx, converted.InstanceID)
				if err != nil {
					return nil, err
				}
				converted.Volumes = volumes
				instances = append(instances, converted)
			}
		}
	}
	return instances, nil
}

// StopInstance stops the instance unless it is already stopped and blocks
// until the stopped state is reached. No stop API call is issued for an
// instance that is already stopped.
func (c *Client) StopInstance(ctx context.Context, instanceID string) (bool, error) {
	described, err := c.describeSingleInstance(ctx, instanceID)
	if err != nil {
		return false, err
	}
	if convertInstance(described).IsStopped() {
		return false, nil
	}

	err = retryTransient(ctx, func() error {
		_, err := c.ec2.StopInstances(ctx, &ec2.StopInstancesInput{
			InstanceIds: []string{instanceID},
		})
		return ClassifyAWSError(err, EC2ResourceType, instanceID)
	})
	if err != nil {
		return false, err
	}

	waiter := ec2.NewInstanceStoppedWaiter(c.ec2, instanceWaiterOptions)
	if err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, DefaultInstanceWaitTimeout); err != nil {
		return true, ClassifyAWSError(err, EC2ResourceType, instanceID)
	}
	return true, nil
}

// StartInstance starts the instance and blocks until it is running.
func (c *Client) StartInstance(ctx context.Context, instanceID string) error {
	err := retryTransient(ctx, func() error {
		_, err := c.ec2.StartInstances(ctx, &ec2.StartInstancesInput{
			InstanceIds: []string{instanceID},
		})
		return ClassifyAWSError(err, EC2ResourceType, instanceID)
	})
	if err != nil {
		return err
	}

	waiter := ec2.NewInstanceRunningWaiter(c.ec2, instanceRunningWaiterOptions)
	if err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, DefaultInstanceWaitTimeout); err != nil {
		return ClassifyAWSError(err, EC2ResourceType, instanceID)
	}
	return nil
}

// CreateSnapshot snapshots the volume, tagging the snapshot with the source
// volume identity so operators can trace it back.
func (c *Client) CreateSnapshot(ctx context.Context, volume models.Volume) (string, error) {
	output, err := c.ec2.CreateSnapshot(ctx, &ec2.CreateSnapshotInput{
		VolumeId:    aws.String(volume.VolumeID),
		Description: aws.String(fmt.Sprintf("Snapshot of volume %s created by ebs-encryptor", volume.VolumeID)),
		TagSpecifications: []types.TagSpecification{
			{
				ResourceType: types.ResourceTypeSnapshot,
				Tags: []types.Tag{
					{
						Key:   aws.String("Name"),
						Value: aws.String(fmt.Sprintf("Snapshot for volume %s", volumeLabel(volume))),
					},
					{
						Key:   aws.String("SourceVolumeId"),
						Value: aws.String(volume.VolumeID),
					},
				},
			},
		},
	})
	if err != nil {
		return "", ClassifyAWSError(err, VolumeResourceType, volume.VolumeID)
	}
	return aws.ToString(output.SnapshotId), nil
}

// WaitSnapshotCompleted blocks until the snapshot reaches the completed state
// or the timeout ceiling elapses. Timeout is a permanent error.
func (c *Client) WaitSnapshotCompleted(ctx context.Context, snapshotID string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultSnapshotWaitTimeout
	}
	waiter := ec2.NewSnapshotCompletedWaiter(c.ec2, snapshotWaiterOptions)
	if err := waiter.Wait(ctx, &ec2.DescribeSnapshotsInput{
		SnapshotIds: []string{snapshotID},
	}, timeout); err != nil {
		return ClassifyAWSError(err, SnapshotResourceType, snapshotID)
	}
	return nil
}

// CopySnapshotEncrypted copies the snapshot into a new snapshot encrypted
// under the given KMS key, within the client's region.
func (c *Client) CopySnapshotEncrypted(ctx context.Context, snapshotID, kmsKeyID string, opts CopySnapshotOptions) (string, error) {
	sourceVolume := opts.SourceVolume
	output, err := c.ec2.CopySnapshot(ctx, &ec2.CopySnapshotInput{
		SourceRegion:     aws.String(c.region),
		SourceSnapshotId: aws.String(snapshotID),
		Encrypted:        aws.Bool(true),
		KmsKeyId:         aws.String(kmsKeyID),
		Description: aws.String(fmt.Sprintf("Encrypted copy of %s for volume %s",
			snapshotID, sourceVolume.VolumeID)),
		TagSpecifications: []types.TagSpecification{
			{
				ResourceType: types.ResourceTypeSnapshot,
				Tags: []types.Tag{
					{
						Key:   aws.String("Name"),
						Value: aws.String(fmt.Sprintf("Encrypted snapshot for volume %s", volumeLabel(sourceVolume))),
					},
					{
						Key:   aws.String("SourceVolumeId"),
						Value: aws.String(sourceVolume.VolumeID),
					},
				},
			},
		},
	})
	if err != nil {
		return "", ClassifyAWSError(err, SnapshotResourceType, snapshotID)
	}
	return aws.ToString(output.SnapshotId), nil
}

// DeleteSnapshot deletes the snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	err := retryTransient(ctx, func() error {
		_, err := c.ec2.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
			SnapshotId: aws.String(snapshotID),
		})
		return ClassifyAWSError(err, SnapshotResourceType, snapshotID)
	})
	return err
}

// CreateVolume creates an encrypted volume from the snapshot in the given
// availability zone and blocks until it is available.
func (c *Client) CreateVolume(ctx context.Context, snapshotID, availabilityZone, kmsKeyID string) (string, error) {
	output, err := c.ec2.CreateVolume(ctx, &ec2.CreateVolumeInput{
		SnapshotId:       aws.String(snapshotID),
		AvailabilityZone: aws.String(availabilityZone),
		Encrypted:        aws.Bool(true),
		KmsKeyId:         aws.String(kmsKeyID),
	})
	if err != nil {
		return "", ClassifyAWSError(err, SnapshotResourceType, snapshotID)
	}
	volumeID := aws.ToString(output.VolumeId)

	waiter := ec2.NewVolumeAvailableWaiter(c.ec2, volumeAvailableWaiterOptions)
	if err := waiter.Wait(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	}, DefaultVolumeWaitTimeout); err != nil {
		return volumeID, ClassifyAWSError(err, VolumeResourceType, volumeID)
	}
	return volumeID, nil
}

// DetachVolume detaches the volume and blocks until it is available.
func (c *Client) DetachVolume(ctx context.Context, volumeID string) error {
	err := retryTransient(ctx, func() error {
		_, err := c.ec2.DetachVolume(ctx, &ec2.DetachVolumeInput{
			VolumeId: aws.String(volumeID),
		})
		return ClassifyAWSError(err, VolumeResourceType, volumeID)
	})
	if err != nil {
		return err
	}

	waiter := ec2.NewVolumeAvailableWaiter(c.ec2, volumeAvailableWaiterOptions)
	if err := waiter.Wait(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	}, DefaultVolumeWaitTimeout); err != nil {
		return ClassifyAWSError(err, VolumeResourceType, volumeID)
	}
	return nil
}

// AttachVolume attaches the volume to the instance at the given device path
// and blocks until it is in use. The attach call itself is retried on
// transient errors since the window between detach and attach is the
// narrowest failure window of the whole pipeline.
func (c *Client) AttachVolume(ctx context.Context, volumeID, instanceID, device string) error {
	err := retryTransient(ctx, func() error {
		_, err := c.ec2.AttachVolume(ctx, &ec2.AttachVolumeInput{
			VolumeId:   aws.String(volumeID),
			InstanceId: aws.String(instanceID),
			Device:     aws.String(device),
		})
		return ClassifyAWSError(err, VolumeResourceType, volumeID)
	})
	if err != nil {
		return err
	}

	waiter := ec2.NewVolumeInUseWaiter(c.ec2, volumeInUseWaiterOptions)
	if err := waiter.Wait(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	}, DefaultVolumeWaitTimeout); err != nil {
		return ClassifyAWSError(err, VolumeResourceType, volumeID)
	}
	return nil
}

// CopyTags copies tags from the source volume to the target volume, skipping
// AWS-reserved keys. Target volumes with no source tags are left untouched.
func (c *Client) CopyTags(ctx context.Context, sourceVolumeID, targetVolumeID string) error {
	output, err := c.ec2.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{sourceVolumeID},
	})
	if err != nil {
		return ClassifyAWSError(err, VolumeResourceType, sourceVolumeID)
	}
	if len(output.Volumes) == 0 {
		return NewAWSError(ErrResourceNotFound, VolumeResourceType, sourceVolumeID,
			"Source volume not found", nil)
	}

	tags := filterReservedTags(output.Volumes[0].Tags)
	if len(tags) == 0 {
		return nil
	}

	_, err = c.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{targetVolumeID},
		Tags:      tags,
	})
	if err != nil {
		return ClassifyAWSError(err, VolumeResourceType, targetVolumeID)
	}
	return nil
}

// EnableFastRestore enables fast snapshot restore for the snapshot in the
// given availability zones.
func (c *Client) EnableFastRestore(ctx context.Context, snapshotID string, availabilityZones []string) error {
	output, err := c.ec2.EnableFastSnapshotRestores(ctx, &ec2.EnableFastSnapshotRestoresInput{
		AvailabilityZones: availabilityZones,
		SourceSnapshotIds: []string{snapshotID},
	})
	if err != nil {
		return ClassifyAWSError(err, SnapshotResourceType, snapshotID)
	}
	if len(output.Unsuccessful) > 0 {
		return NewAWSError(ErrInternalError, SnapshotResourceType, snapshotID,
			"Fast snapshot restore could not be enabled", nil)
	}
	return nil
}

// DisableFastRestore disables fast snapshot restore for the snapshot in the
// given availability zones.
func (c *Client) DisableFastRestore(ctx context.Context, snapshotID string, availabilityZones []string) error {
	_, err := c.ec2.DisableFastSnapshotRestores(ctx, &ec2.DisableFastSnapshotRestoresInput{
		AvailabilityZones: availabilityZones,
		SourceSnapshotIds: []string{snapshotID},
	})
	if err != nil {
		return ClassifyAWSError(err, SnapshotResourceType, snapshotID)
	}
	return nil
}

// IsInAutoScalingGroup reports whether the instance is registered with an
// Auto Scaling group.
func (c *Client) IsInAutoScalingGroup(ctx context.Context, instanceID string) (bool, error) {
	output, err := c.autoscaling.DescribeAutoScalingInstances(ctx, &autoscaling.DescribeAutoScalingInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return false, ClassifyAWSError(err, EC2ResourceType, instanceID)
	}
	return len(output.AutoScalingInstances) > 0, nil
}

// IsSpotInstance reports whether the instance is spot-backed.
func (c *Client) IsSpotInstance(ctx context.Context, instanceID string) (bool, error) {
	instance, err := c.describeSingleInstance(ctx, instanceID)
	if err != nil {
		return false, err
	}
	return instance.InstanceLifecycle == types.InstanceLifecycleTypeSpot, nil
}

// describeAttachedVolumes returns all volumes attached to the instance, with
// the device path taken from the attachment for this instance.
func (c *Client) describeAttachedVolumes(ctx context.Context, instanceID string) ([]models.Volume, error) {
	input := &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("attachment.instance-id"),
				Values: []string{instanceID},
			},
		},
	}

	var volumes []models.Volume
	paginator := ec2.NewDescribeVolumesPaginator(c.ec2, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ClassifyAWSError(err, VolumeResourceType, instanceID)
		}
		for _, volume := range page.Volumes {
			volumes = append(volumes, convertVolume(volume, instanceID))
		}
	}
	return volumes, nil
}

func (c *Client) describeSingleInstance(ctx context.Context, instanceID string) (types.Instance, error) {
	output, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return types.Instance{}, ClassifyAWSError(err, EC2ResourceType, instanceID)
	}
	if len(output.Reservations) == 0 || len(output.Reservations[0].Instances) == 0 {
		return types.Instance{}, NewAWSError(ErrResourceNotFound, EC2ResourceType, instanceID,
			"Instance not found", nil)
	}
	return output.Reservations[0].Instances[0], nil
}

func instanceWaiterOptions(o *ec2.InstanceStoppedWaiterOptions) {
	o.MinDelay = waiterMinDelay
	o.MaxDelay = waiterMaxDelay
}

func instanceRunningWaiterOptions(o *ec2.InstanceRunningWaiterOptions) {
	o.MinDelay = waiterMinDelay
	o.MaxDelay = waiterMaxDelay
}

func snapshotWaiterOptions(o *ec2.SnapshotCompletedWaiterOptions) {
	o.MinDelay = waiterMinDelay
	o.MaxDelay = waiterMaxDelay
}

func volumeAvailableWaiterOptions(o *ec2.VolumeAvailableWaiterOptions) {
	o.MinDelay = waiterMinDelay
	o.MaxDelay = waiterMaxDelay
}

func volumeInUseWaiterOptions(o *ec2.VolumeInUseWaiterOptions) {
	o.MinDelay = waiterMinDelay
	o.MaxDelay = waiterMaxDelay
}
