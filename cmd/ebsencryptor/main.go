package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ebsencryptor/internal/config"
	"ebsencryptor/internal/discovery"
	"ebsencryptor/internal/orchestrator"
	aws "ebsencryptor/internal/providers/aws"
	"ebsencryptor/pkg/logging"
)

func main() {
	var profileName string
	var configPath string
	var instanceIDs string
	var outputFormat string
	var logFilePath string
	var concurrencyLimit int
	var assumeYes bool
	var fastRestore bool
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "ebsencryptor",
		Short: "Migrate unencrypted EBS volumes to encrypted replacements",
		Long: `ebsencryptor stops eligible EC2 instances, snapshots their unencrypted
EBS volumes, copies the snapshots with KMS encryption, swaps in encrypted
volumes at the original device paths and restarts the instances.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, profileName)
			if err != nil {
				return err
			}

			if logFilePath == "" {
				logFilePath = cfg.LogFileName()
			}
			logger, err := logging.NewFileLogger(logFilePath)
			if err != nil {
				return err
			}
			defer logger.Close()
			if debug {
				logger.SetLevel(logging.DEBUG)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orchestratorConfig := orchestrator.Config{
				InstanceIDs:       parseInstanceIDs(instanceIDs),
				KMSKeyID:          cfg.KMSKeyID,
				ConcurrencyLimit:  concurrencyLimit,
				EnableFastRestore: fastRestore,
				OutputFormat:      outputFormat,
			}

			service, err := orchestrator.NewDefaultService(ctx, orchestratorConfig, cfg.Profile, cfg.Region, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize the service: %w", err)
			}

			// No mutating operation happens before this gate.
			if !assumeYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), cfg) {
				return fmt.Errorf("aborted: migration not confirmed")
			}

			logger.Info("Starting volume encryption run for profile %s in %s", cfg.Profile, cfg.Region)
			if _, err := service.Run(ctx); err != nil {
				return err
			}
			// Per-volume failures are reported in the summary; a run that
			// completed still exits 0.
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "AWS shared-config profile to use (required)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&instanceIDs, "instance-ids", "all", "Comma-separated EC2 instance IDs, or 'all' for every eligible instance")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&outputFormat, "output", "table", "Summary output format: table or json")
	rootCmd.Flags().StringVar(&logFilePath, "log-file", "", "Path of the run log file (default: ebs_encryption_<client>.log)")
	rootCmd.Flags().IntVar(&concurrencyLimit, "concurrency", 2, "Maximum number of instances migrated concurrently")
	rootCmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the interactive confirmation prompt")
	rootCmd.Flags().BoolVar(&fastRestore, "fast-restore", false, "Enable fast snapshot restore on encrypted snapshot copies")
	_ = rootCmd.MarkPersistentFlagRequired("profile")

	rootCmd.AddCommand(newPlanCommand(&profileName, &configPath, &instanceIDs, &debug))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newPlanCommand builds the read-only subcommand that lists would-be targets
// without mutating anything.
func newPlanCommand(profileName, configPath, instanceIDs *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "List instances with unencrypted volumes without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath, *profileName)
			if err != nil {
				return err
			}

			logger := logging.NewDefaultLogger()
			if *debug {
				logger.SetLevel(logging.DEBUG)
			} else {
				logger.SetLevel(logging.WARN)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := aws.NewClientWithDefaultConfig(ctx, cfg.Profile, cfg.Region)
			if err != nil {
				return fmt.Errorf("failed to initialize AWS client: %w", err)
			}

			indicator := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
			indicator.Suffix = fmt.Sprintf(" Scanning %s for unencrypted volumes ...", cfg.Region)
			indicator.Start()
			targets, skipped, err := discovery.NewService(client, logger).
				FindUnencryptedTargets(ctx, parseInstanceIDs(*instanceIDs))
			indicator.Stop()
			if err != nil {
				return err
			}

			printPlan(cmd.OutOrStdout(), targets, skipped)
			return nil
		},
	}
}

func printPlan(out io.Writer, targets []discovery.Target, skipped []discovery.SkippedInstance) {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "INSTANCE\tNAME\tVOLUME\tSIZE\tDEVICE\tAZ")
	fmt.Fprintln(writer, "--------\t----\t------\t----\t------\t--")
	volumeCount := 0
	for _, target := range targets {
		for _, volume := range target.Volumes {
			volumeCount++
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
				target.Instance.InstanceID,
				target.Instance.Name,
				volume.VolumeID,
				humanize.IBytes(uint64(volume.SizeGiB)*humanize.GiByte),
				volume.Device,
				volume.AvailabilityZone,
			)
		}
	}
	for _, skip := range skipped {
		fmt.Fprintf(writer, "%s\t%s\t-\t-\t-\tskipped: %s\n",
			skip.Instance.InstanceID, skip.Instance.Name, skip.Reason)
	}
	fmt.Fprintf(writer, "\n%d instance(s) eligible, %d volume(s) to migrate, %d instance(s) skipped\n",
		len(targets), volumeCount, len(skipped))
	_ = writer.Flush()
}

// confirm asks the operator for an explicit yes before any mutation begins.
func confirm(in io.Reader, out io.Writer, cfg *config.Config) bool {
	fmt.Fprintf(out, "This run will stop instances in %s (profile %s) and replace their unencrypted volumes.\nProceed? [y/N]: ",
		cfg.Region, cfg.Profile)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// parseInstanceIDs splits the flag value, treating "all" and "" as the
// sentinel for every eligible instance.
func parseInstanceIDs(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return nil
	}
	ids := strings.Split(trimmed, ",")
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
	}
	return ids
}
