package report

// IPrinter is the interface for rendering the run summary
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintSummary(summary *RunSummary, format OutputFormatType) error
}
