package impls

import "context"

// AgentLocator discovers identifiers of installed remote-support agents.
type AgentLocator interface {
	NinjaDeviceID(ctx context.Context) *int64
	TeamViewerID(ctx context.Context) *string
	TeamViewerVersion(ctx context.Context) *string
}
