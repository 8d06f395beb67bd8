package discovery

import "context"

// IProvider is the interface for enumerating migration targets
//
//go:generate mockery --name=IProvider --output=./mocks
type IProvider interface {
	FindUnencryptedTargets(ctx context.Context, instanceIDs []string) ([]Target, []SkippedInstance, error)
}
