package aws

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"ebsencryptor/internal/models"
)

// reservedTagPrefix marks provider-managed tag keys that cannot be copied.
const reservedTagPrefix = "aws:"

// convertInstance converts an SDK instance to the domain model. Attached
// volumes are resolved separately.
func convertInstance(instance types.Instance) models.Instance {
	converted := models.Instance{
		InstanceID: aws.ToString(instance.InstanceId),
		Name:       tagValue(instance.Tags, "Name"),
		IsSpot:     instance.InstanceLifecycle == types.InstanceLifecycleTypeSpot,
	}
	if instance.State != nil {
		converted.State = string(instance.State.Name)
	}
	if instance.Placement != nil {
		converted.AvailabilityZone = aws.ToString(instance.Placement.AvailabilityZone)
	}
	return converted
}

// convertVolume converts an SDK volume to the domain model, taking the device
// path from the attachment belonging to the given instance.
func convertVolume(volume types.Volume, instanceID string) models.Volume {
	converted := models.Volume{
		VolumeID:         aws.ToString(volume.VolumeId),
		Name:             tagValue(volume.Tags, "Name"),
		Encrypted:        aws.ToBool(volume.Encrypted),
		SizeGiB:          aws.ToInt32(volume.Size),
		AvailabilityZone: aws.ToString(volume.AvailabilityZone),
		InstanceID:       instanceID,
		Tags:             tagsToMap(volume.Tags),
	}
	for _, attachment := range volume.Attachments {
		if aws.ToString(attachment.InstanceId) == instanceID {
			converted.Device = aws.ToString(attachment.Device)
			break
		}
	}
	return converted
}

// tagValue returns the value of the tag with the given key, or "".
func tagValue(tags []types.Tag, key string) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == key {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

// tagsToMap converts a slice of tags to a map
func tagsToMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			result[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return result
}

// filterReservedTags drops tags with provider-reserved keys, which CreateTags
// rejects.
func filterReservedTags(tags []types.Tag) []types.Tag {
	var result []types.Tag
	for _, tag := range tags {
		if strings.HasPrefix(aws.ToString(tag.Key), reservedTagPrefix) {
			continue
		}
		result = append(result, tag)
	}
	return result
}

// volumeLabel formats a volume identity for logs and tags, including the Name
// tag when one exists.
func volumeLabel(volume models.Volume) string {
	if volume.Name != "" {
		return fmt.Sprintf("%s (%s)", volume.VolumeID, volume.Name)
	}
	return volume.VolumeID
}
