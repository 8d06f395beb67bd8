package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	astypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ebsencryptor/internal/models"
	"ebsencryptor/internal/providers/aws/mocks"
)

const testRegion = "us-east-1"

func newTestClient(t *testing.T) (*Client, *mocks.EC2ClientAPI, *mocks.AutoScalingClientAPI) {
	ec2Mock := mocks.NewEC2ClientAPI(t)
	asgMock := mocks.NewAutoScalingClientAPI(t)
	return NewClientWithAPIs(ec2Mock, asgMock, testRegion), ec2Mock, asgMock
}

func instanceOutput(instance types.Instance) *ec2.DescribeInstancesOutput {
	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{instance}},
		},
	}
}

func instanceInState(instanceID, state string) types.Instance {
	return types.Instance{
		InstanceId: aws.String(instanceID),
		State:      &types.InstanceState{Name: types.InstanceStateName(state)},
	}
}

func volumesInState(volumeID, state string) *ec2.DescribeVolumesOutput {
	return &ec2.DescribeVolumesOutput{
		Volumes: []types.Volume{
			{
				VolumeId: aws.String(volumeID),
				State:    types.VolumeState(state),
			},
		},
	}
}

func TestStopInstanceAlreadyStopped(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("DescribeInstances", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeInstancesInput) bool {
		return len(input.InstanceIds) == 1 && input.InstanceIds[0] == "i-1"
	})).Return(instanceOutput(instanceInState("i-1", "stopped")), nil)

	stopped, err := client.StopInstance(context.Background(), "i-1")

	assert.NoError(t, err)
	assert.False(t, stopped, "pre-stopped instances must not be stopped by us")
	ec2Mock.AssertNotCalled(t, "StopInstances", mock.Anything, mock.Anything)
}

func TestStopInstanceStopsAndWaits(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	// Initial state probe sees the instance running.
	ec2Mock.On("DescribeInstances", mock.Anything, mock.Anything).
		Return(instanceOutput(instanceInState("i-1", "running")), nil).Once()

	ec2Mock.On("StopInstances", mock.Anything, mock.MatchedBy(func(input *ec2.StopInstancesInput) bool {
		return len(input.InstanceIds) == 1 && input.InstanceIds[0] == "i-1"
	})).Return(&ec2.StopInstancesOutput{}, nil)

	// Waiter polls carry an option function and so match a wider expectation.
	ec2Mock.On("DescribeInstances", mock.Anything, mock.Anything, mock.Anything).
		Return(instanceOutput(instanceInState("i-1", "stopped")), nil)

	stopped, err := client.StopInstance(context.Background(), "i-1")

	assert.NoError(t, err)
	assert.True(t, stopped)
}

func TestStartInstance(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("StartInstances", mock.Anything, mock.MatchedBy(func(input *ec2.StartInstancesInput) bool {
		return len(input.InstanceIds) == 1 && input.InstanceIds[0] == "i-1"
	})).Return(&ec2.StartInstancesOutput{}, nil)

	ec2Mock.On("DescribeInstances", mock.Anything, mock.Anything, mock.Anything).
		Return(instanceOutput(instanceInState("i-1", "running")), nil)

	err := client.StartInstance(context.Background(), "i-1")

	assert.NoError(t, err)
}

func TestCreateSnapshotTagsSourceVolume(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("CreateSnapshot", mock.Anything, mock.MatchedBy(func(input *ec2.CreateSnapshotInput) bool {
		if aws.ToString(input.VolumeId) != "vol-1" {
			return false
		}
		if len(input.TagSpecifications) != 1 {
			return false
		}
		tags := input.TagSpecifications[0].Tags
		return tagValue(tags, "SourceVolumeId") == "vol-1" && tagValue(tags, "Name") != ""
	})).Return(&ec2.CreateSnapshotOutput{SnapshotId: aws.String("snap-1")}, nil)

	snapshotID, err := client.CreateSnapshot(context.Background(), models.Volume{
		VolumeID: "vol-1",
		Name:     "data",
	})

	assert.NoError(t, err)
	assert.Equal(t, "snap-1", snapshotID)
}

func TestCopySnapshotEncrypted(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("CopySnapshot", mock.Anything, mock.MatchedBy(func(input *ec2.CopySnapshotInput) bool {
		return aws.ToString(input.SourceSnapshotId) == "snap-1" &&
			aws.ToBool(input.Encrypted) &&
			aws.ToString(input.KmsKeyId) == "alias/ebs-key" &&
			aws.ToString(input.SourceRegion) == testRegion
	})).Return(&ec2.CopySnapshotOutput{SnapshotId: aws.String("snap-enc-1")}, nil)

	copyID, err := client.CopySnapshotEncrypted(context.Background(), "snap-1", "alias/ebs-key", CopySnapshotOptions{
		SourceVolume: models.Volume{VolumeID: "vol-1"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "snap-enc-1", copyID)
}

func TestWaitSnapshotCompleted(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("DescribeSnapshots", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeSnapshotsInput) bool {
		return len(input.SnapshotIds) == 1 && input.SnapshotIds[0] == "snap-1"
	}), mock.Anything).Return(&ec2.DescribeSnapshotsOutput{
		Snapshots: []types.Snapshot{
			{
				SnapshotId: aws.String("snap-1"),
				State:      types.SnapshotStateCompleted,
			},
		},
	}, nil)

	err := client.WaitSnapshotCompleted(context.Background(), "snap-1", 0)

	assert.NoError(t, err)
}

func TestCreateVolumeWaitsForAvailable(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("CreateVolume", mock.Anything, mock.MatchedBy(func(input *ec2.CreateVolumeInput) bool {
		return aws.ToString(input.SnapshotId) == "snap-enc-1" &&
			aws.ToString(input.AvailabilityZone) == "us-east-1a" &&
			aws.ToBool(input.Encrypted) &&
			aws.ToString(input.KmsKeyId) == "alias/ebs-key"
	})).Return(&ec2.CreateVolumeOutput{VolumeId: aws.String("vol-new")}, nil)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.Anything, mock.Anything).
		Return(volumesInState("vol-new", "available"), nil)

	volumeID, err := client.CreateVolume(context.Background(), "snap-enc-1", "us-east-1a", "alias/ebs-key")

	assert.NoError(t, err)
	assert.Equal(t, "vol-new", volumeID)
}

func TestDetachVolume(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("DetachVolume", mock.Anything, mock.MatchedBy(func(input *ec2.DetachVolumeInput) bool {
		return aws.ToString(input.VolumeId) == "vol-1"
	})).Return(&ec2.DetachVolumeOutput{}, nil)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.Anything, mock.Anything).
		Return(volumesInState("vol-1", "available"), nil)

	err := client.DetachVolume(context.Background(), "vol-1")

	assert.NoError(t, err)
}

func TestAttachVolumeAtDevice(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("AttachVolume", mock.Anything, mock.MatchedBy(func(input *ec2.AttachVolumeInput) bool {
		return aws.ToString(input.VolumeId) == "vol-new" &&
			aws.ToString(input.InstanceId) == "i-1" &&
			aws.ToString(input.Device) == "/dev/xvdf"
	})).Return(&ec2.AttachVolumeOutput{}, nil)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.Anything, mock.Anything).
		Return(volumesInState("vol-new", "in-use"), nil)

	err := client.AttachVolume(context.Background(), "vol-new", "i-1", "/dev/xvdf")

	assert.NoError(t, err)
}

func TestCopyTagsFiltersReservedKeys(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.Anything).Return(&ec2.DescribeVolumesOutput{
		Volumes: []types.Volume{
			{
				VolumeId: aws.String("vol-1"),
				Tags: []types.Tag{
					{Key: aws.String("aws:autoscaling:groupName"), Value: aws.String("asg")},
					{Key: aws.String("Name"), Value: aws.String("data")},
					{Key: aws.String("Team"), Value: aws.String("platform")},
				},
			},
		},
	}, nil)

	ec2Mock.On("CreateTags", mock.Anything, mock.MatchedBy(func(input *ec2.CreateTagsInput) bool {
		if len(input.Resources) != 1 || input.Resources[0] != "vol-new" {
			return false
		}
		if len(input.Tags) != 2 {
			return false
		}
		return tagValue(input.Tags, "Name") == "data" && tagValue(input.Tags, "Team") == "platform"
	})).Return(&ec2.CreateTagsOutput{}, nil)

	err := client.CopyTags(context.Background(), "vol-1", "vol-new")

	assert.NoError(t, err)
}

func TestCopyTagsNothingToCopy(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.Anything).Return(&ec2.DescribeVolumesOutput{
		Volumes: []types.Volume{
			{
				VolumeId: aws.String("vol-1"),
				Tags: []types.Tag{
					{Key: aws.String("aws:createdBy"), Value: aws.String("something")},
				},
			},
		},
	}, nil)

	err := client.CopyTags(context.Background(), "vol-1", "vol-new")

	assert.NoError(t, err)
	ec2Mock.AssertNotCalled(t, "CreateTags", mock.Anything, mock.Anything)
}

func TestCopyTagsSourceVolumeMissing(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.Anything).
		Return(&ec2.DescribeVolumesOutput{}, nil)

	err := client.CopyTags(context.Background(), "vol-1", "vol-new")

	assert.Error(t, err)
	assert.True(t, IsErrorCategory(err, ErrResourceNotFound))
}

func TestIsInAutoScalingGroup(t *testing.T) {
	tests := []struct {
		name      string
		instances []astypes.AutoScalingInstanceDetails
		expected  bool
	}{
		{
			name: "Instance registered with group",
			instances: []astypes.AutoScalingInstanceDetails{
				{InstanceId: aws.String("i-1"), AutoScalingGroupName: aws.String("web-asg")},
			},
			expected: true,
		},
		{
			name:      "Standalone instance",
			instances: nil,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, asgMock := newTestClient(t)

			asgMock.On("DescribeAutoScalingInstances", mock.Anything, mock.MatchedBy(func(input *autoscaling.DescribeAutoScalingInstancesInput) bool {
				return len(input.InstanceIds) == 1 && input.InstanceIds[0] == "i-1"
			})).Return(&autoscaling.DescribeAutoScalingInstancesOutput{
				AutoScalingInstances: tt.instances,
			}, nil)

			managed, err := client.IsInAutoScalingGroup(context.Background(), "i-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, managed)
		})
	}
}

func TestIsSpotInstance(t *testing.T) {
	tests := []struct {
		name      string
		lifecycle types.InstanceLifecycleType
		expected  bool
	}{
		{name: "Spot-backed instance", lifecycle: types.InstanceLifecycleTypeSpot, expected: true},
		{name: "On-demand instance", lifecycle: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ec2Mock, _ := newTestClient(t)

			instance := instanceInState("i-1", "running")
			instance.InstanceLifecycle = tt.lifecycle
			ec2Mock.On("DescribeInstances", mock.Anything, mock.Anything).
				Return(instanceOutput(instance), nil)

			spot, err := client.IsSpotInstance(context.Background(), "i-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, spot)
		})
	}
}

func TestDescribeInstancesPopulatesVolumes(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	instance := types.Instance{
		InstanceId: aws.String("i-1"),
		State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
		Placement:  &types.Placement{AvailabilityZone: aws.String("us-east-1a")},
		Tags: []types.Tag{
			{Key: aws.String("Name"), Value: aws.String("web-1")},
		},
	}

	ec2Mock.On("DescribeInstances", mock.Anything, mock.Anything, mock.Anything).
		Return(instanceOutput(instance), nil)

	ec2Mock.On("DescribeVolumes", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeVolumesInput) bool {
		return len(input.Filters) == 1 &&
			aws.ToString(input.Filters[0].Name) == "attachment.instance-id" &&
			input.Filters[0].Values[0] == "i-1"
	}), mock.Anything).Return(&ec2.DescribeVolumesOutput{
		Volumes: []types.Volume{
			{
				VolumeId:         aws.String("vol-1"),
				Encrypted:        aws.Bool(false),
				Size:             aws.Int32(100),
				AvailabilityZone: aws.String("us-east-1a"),
				Attachments: []types.VolumeAttachment{
					{
						InstanceId: aws.String("i-1"),
						Device:     aws.String("/dev/xvdf"),
					},
				},
			},
		},
	}, nil)

	instances, err := client.DescribeInstances(context.Background(), []string{"i-1"})

	assert.NoError(t, err)
	assert.Len(t, instances, 1)
	assert.Equal(t, "i-1", instances[0].InstanceID)
	assert.Equal(t, "web-1", instances[0].Name)
	assert.Equal(t, "us-east-1a", instances[0].AvailabilityZone)
	assert.Len(t, instances[0].Volumes, 1)

	volume := instances[0].Volumes[0]
	assert.Equal(t, "vol-1", volume.VolumeID)
	assert.False(t, volume.Encrypted)
	assert.Equal(t, int32(100), volume.SizeGiB)
	assert.Equal(t, "/dev/xvdf", volume.Device, "device path comes from this instance's attachment")
	assert.Equal(t, "i-1", volume.InstanceID)
}

func TestEnableFastRestoreReportsUnsuccessful(t *testing.T) {
	client, ec2Mock, _ := newTestClient(t)

	ec2Mock.On("EnableFastSnapshotRestores", mock.Anything, mock.Anything).
		Return(&ec2.EnableFastSnapshotRestoresOutput{
			Unsuccessful: []types.EnableFastSnapshotRestoreErrorItem{
				{SnapshotId: aws.String("snap-1")},
			},
		}, nil)

	err := client.EnableFastRestore(context.Background(), "snap-1", []string{"us-east-1a"})

	assert.Error(t, err)
}
