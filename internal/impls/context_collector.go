package impls

import (
	"context"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

// ContextCollector produces a fresh device snapshot on every call.
type ContextCollector interface {
	Collect(ctx context.Context) domain.DeviceContext
}
