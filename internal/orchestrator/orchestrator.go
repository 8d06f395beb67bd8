// Package orchestrator drives the migration of unencrypted volumes to
// encrypted replacements, instance by instance.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"ebsencryptor/internal/discovery"
	"ebsencryptor/internal/models"
	aws "ebsencryptor/internal/providers/aws"
	"ebsencryptor/internal/report"
	"ebsencryptor/pkg/logging"
)

// Service orchestrates the volume encryption workflow.
type Service struct {
	config    Config
	cloud     aws.CloudClientAPI
	discovery discovery.IProvider
	printer   report.IPrinter
	logger    logging.Logger
}

// NewService creates a new orchestrator service with the given configuration.
func NewService(
	config Config,
	cloud aws.CloudClientAPI,
	discoverySrv discovery.IProvider,
	printer report.IPrinter,
	logger logging.Logger,
) *Service {
	return &Service{
		config:    config,
		cloud:     cloud,
		discovery: discoverySrv,
		printer:   printer,
		logger:    logger,
	}
}

// NewDefaultService creates a new service wired to the real AWS clients.
func NewDefaultService(ctx context.Context, config Config, profile, region string, logger logging.Logger) (*Service, error) {
	cloud, err := aws.NewClientWithDefaultConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS client: %w", err)
	}

	return NewService(config, cloud, discovery.NewService(cloud, logger), report.DefaultPrinter{}, logger), nil
}

// Run executes the migration workflow: discovery, then one worker per
// eligible instance bounded by the concurrency limit. A discovery failure
// aborts the run before any mutation; per-instance and per-volume failures
// are recorded in the summary and never abort sibling work.
func (s *Service) Run(ctx context.Context) (*report.RunSummary, error) {
	if err := s.validateConfig(); err != nil {
		return nil, err
	}

	targets, skippedInstances, err := s.discovery.FindUnencryptedTargets(ctx, s.config.InstanceIDs)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	summary := report.NewRunSummary()
	for _, skipped := range skippedInstances {
		summary.Add(report.InstanceResult{
			InstanceID: skipped.Instance.InstanceID,
			Name:       skipped.Instance.Name,
			Skipped:    true,
			SkipReason: skipped.Reason,
		})
	}

	if len(targets) == 0 {
		s.logger.Info("No eligible instances with unencrypted volumes found")
		return summary, s.printSummary(summary)
	}

	s.logger.Info("Migrating volumes on %d instance(s)", len(targets))

	g, gctx := errgroup.WithContext(ctx)
	if s.config.ConcurrencyLimit > 0 {
		g.SetLimit(s.config.ConcurrencyLimit)
	}

	for _, target := range targets {
		target := target
		g.Go(func() error {
			// A cancelled run stops picking up new instances; in-flight
			// ones run to completion.
			if gctx.Err() != nil {
				summary.Add(cancelledResult(target, "run cancelled before instance was processed"))
				return nil
			}
			summary.Add(s.processInstance(gctx, target))
			return nil
		})
	}
	_ = g.Wait()

	return summary, s.printSummary(summary)
}

// validateConfig checks if the required configuration is provided.
func (s *Service) validateConfig() error {
	if s.config.KMSKeyID == "" {
		return fmt.Errorf("a KMS key identifier is required")
	}
	if s.config.ConcurrencyLimit < 0 {
		return fmt.Errorf("concurrency limit must not be negative")
	}
	return nil
}

func (s *Service) printSummary(summary *report.RunSummary) error {
	return s.printer.PrintSummary(summary, s.getOutputFormat())
}

// getOutputFormat converts the string format to report.OutputFormatType.
func (s *Service) getOutputFormat() report.OutputFormatType {
	switch strings.ToUpper(s.config.OutputFormat) {
	case "JSON":
		return report.OutputFormatTypeJSON
	default:
		return report.OutputFormatTypeTABLE
	}
}

// cancelledResult reports an instance the run never got to, with every volume
// in a terminal failed state so the summary stays complete.
func cancelledResult(target discovery.Target, reason string) report.InstanceResult {
	result := report.InstanceResult{
		InstanceID: target.Instance.InstanceID,
		Name:       target.Instance.Name,
		Error:      reason,
	}
	for _, volume := range target.Volumes {
		result.Volumes = append(result.Volumes, report.VolumeResult{
			VolumeID:   volume.VolumeID,
			Name:       volume.Name,
			SizeGiB:    volume.SizeGiB,
			Device:     volume.Device,
			Status:     models.TaskStatusFailed,
			FailedStep: StepStopInstance,
			Error:      reason,
		})
	}
	return result
}
