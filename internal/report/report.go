package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"ebsencryptor/internal/models"
)

// OutputFormatType defines the format types for the run summary.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents JSON output format
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeTABLE represents table output format
	OutputFormatTypeTABLE OutputFormatType = "TABLE"
)

// summaryReport is the JSON shape of a finished run.
type summaryReport struct {
	Counts    Counts           `json:"counts"`
	Elapsed   string           `json:"elapsed"`
	Instances []InstanceResult `json:"instances"`
}

// PrintSummary renders the run summary to w in the given format.
func PrintSummary(w io.Writer, summary *RunSummary, format OutputFormatType) error {
	switch format {
	case OutputFormatTypeJSON:
		return printJSONSummary(w, summary)
	case OutputFormatTypeTABLE:
		return printTableSummary(w, summary)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func printJSONSummary(w io.Writer, summary *RunSummary) error {
	report := summaryReport{
		Counts:    summary.Counts(),
		Elapsed:   summary.Elapsed().Round(time.Second).String(),
		Instances: summary.Results(),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling summary to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printTableSummary(w io.Writer, summary *RunSummary) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(writer, "\nINSTANCE\tNAME\tVOLUME\tSIZE\tDEVICE\tSTATUS\tDETAIL")
	fmt.Fprintln(writer, "--------\t----\t------\t----\t------\t------\t------")

	for _, instance := range summary.Results() {
		if instance.Skipped {
			fmt.Fprintf(writer, "%s\t%s\t-\t-\t-\tSKIPPED\t%s\n",
				instance.InstanceID, orDash(instance.Name), instance.SkipReason)
			continue
		}
		for _, volume := range instance.Volumes {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				instance.InstanceID,
				orDash(instance.Name),
				volume.VolumeID,
				humanize.IBytes(uint64(volume.SizeGiB)*humanize.GiByte),
				orDash(volume.Device),
				statusLabel(volume),
				volumeDetail(volume),
			)
		}
		// An instance-level error (failed stop, failed restart) gets its own
		// row even when every volume migrated: the instance may be stopped.
		if instance.Error != "" {
			fmt.Fprintf(writer, "%s\t%s\t-\t-\t-\tFAILED\t%s\n",
				instance.InstanceID, orDash(instance.Name), instance.Error)
		}
	}

	counts := summary.Counts()
	fmt.Fprintln(writer, "")
	fmt.Fprintf(writer, "Summary: %d instance(s) processed, %d skipped, %d volume(s) migrated (%s), %d failed in %s\n",
		counts.InstancesProcessed,
		counts.InstancesSkipped,
		counts.VolumesMigrated,
		humanize.IBytes(uint64(counts.MigratedSizeGiB)*humanize.GiByte),
		counts.VolumesFailed,
		summary.Elapsed().Round(time.Second),
	)

	return writer.Flush()
}

func statusLabel(volume VolumeResult) string {
	if volume.Status == models.TaskStatusDone {
		return "MIGRATED"
	}
	if volume.Status == models.TaskStatusFailed {
		return "FAILED"
	}
	return string(volume.Status)
}

// volumeDetail reports the replacement volume for migrated volumes and the
// failing step for failed ones, so operators can retry exactly what broke.
func volumeDetail(volume VolumeResult) string {
	if volume.Status == models.TaskStatusFailed {
		if volume.Error != "" {
			return fmt.Sprintf("failed at %s: %s", volume.FailedStep, volume.Error)
		}
		return fmt.Sprintf("failed at %s", volume.FailedStep)
	}
	if volume.NewVolumeID != "" {
		return fmt.Sprintf("replaced by %s", volume.NewVolumeID)
	}
	return "-"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DefaultPrinter is the default implementation of the summary printer
type DefaultPrinter struct{}

// PrintSummary implements the printer interface
func (p DefaultPrinter) PrintSummary(summary *RunSummary, format OutputFormatType) error {
	return PrintSummary(os.Stdout, summary, format)
}
