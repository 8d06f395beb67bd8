// Package discovery enumerates instances with unencrypted volumes and decides
// which of them are safe migration targets.
package discovery

import (
	"context"
	"fmt"

	"ebsencryptor/internal/models"
	aws "ebsencryptor/internal/providers/aws"
	"ebsencryptor/pkg/logging"
)

// Skip reasons surfaced for excluded instances.
const (
	SkipReasonAutoscaled = "managed by an Auto Scaling group"
	SkipReasonSpot       = "spot-backed instance"
)

// Target is an eligible instance together with its unencrypted volumes.
type Target struct {
	Instance models.Instance
	Volumes  []models.Volume
}

// SkippedInstance is an instance excluded from migration, with the reason.
// Skipped is not failed: these instances are unsafe to stop out-of-band.
type SkippedInstance struct {
	Instance models.Instance
	Reason   string
}

// Service finds unencrypted volumes and filters out instances whose lifecycle
// is externally managed.
type Service struct {
	cloud  aws.CloudClientAPI
	logger logging.Logger
}

// NewService creates a discovery service.
func NewService(cloud aws.CloudClientAPI, logger logging.Logger) *Service {
	return &Service{
		cloud:  cloud,
		logger: logger,
	}
}

// FindUnencryptedTargets lists instances carrying at least one unencrypted
// volume, split into eligible targets and skipped instances. An empty ID list
// means all instances in the region. Only read-only API calls are made; any
// terminal error aborts discovery so no partial list is acted upon.
func (s *Service) FindUnencryptedTargets(ctx context.Context, instanceIDs []string) ([]Target, []SkippedInstance, error) {
	instances, err := s.cloud.DescribeInstances(ctx, instanceIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("error describing instances: %w", err)
	}

	var targets []Target
	var skipped []SkippedInstance
	for _, instance := range instances {
		unencrypted := unencryptedVolumes(instance)
		if len(unencrypted) == 0 {
			s.logger.Debug("Instance %s has no unencrypted volumes", instance.InstanceID)
			continue
		}

		verdict, err := s.eligibility(ctx, &instance)
		if err != nil {
			return nil, nil, err
		}
		if verdict != "" {
			s.logger.Warn("Instance %s is %s. Skipping.", instance.InstanceID, verdict)
			skipped = append(skipped, SkippedInstance{Instance: instance, Reason: verdict})
			continue
		}

		if instance.IsRunning() {
			s.logger.Info("Instance %s (%s) has %d unencrypted volume(s) and will be stopped for migration",
				instance.InstanceID, instance.Name, len(unencrypted))
		} else {
			s.logger.Info("Instance %s (%s) has %d unencrypted volume(s)",
				instance.InstanceID, instance.Name, len(unencrypted))
		}
		targets = append(targets, Target{Instance: instance, Volumes: unencrypted})
	}
	return targets, skipped, nil
}

// eligibility returns a skip reason for instances under external lifecycle
// management, or "" when the instance is safe to migrate. The lifecycle flags
// on the instance are updated with what the checks found.
func (s *Service) eligibility(ctx context.Context, instance *models.Instance) (string, error) {
	inASG, err := s.cloud.IsInAutoScalingGroup(ctx, instance.InstanceID)
	if err != nil {
		return "", fmt.Errorf("error checking Auto Scaling membership for %s: %w", instance.InstanceID, err)
	}
	if inASG {
		instance.ManagedByAutoscaler = true
		return SkipReasonAutoscaled, nil
	}

	isSpot, err := s.cloud.IsSpotInstance(ctx, instance.InstanceID)
	if err != nil {
		return "", fmt.Errorf("error checking spot status for %s: %w", instance.InstanceID, err)
	}
	if isSpot {
		instance.IsSpot = true
		return SkipReasonSpot, nil
	}
	return "", nil
}

func unencryptedVolumes(instance models.Instance) []models.Volume {
	var volumes []models.Volume
	for _, volume := range instance.Volumes {
		if !volume.Encrypted {
			volumes = append(volumes, volume)
		}
	}
	return volumes
}
