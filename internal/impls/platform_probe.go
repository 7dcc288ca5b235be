package impls

import (
	"context"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

// PlatformProbe reads machine facts for one platform family. Methods never
// fail: a fact that cannot be read is returned as nil.
type PlatformProbe interface {
	Tag() string
	ComputerName(ctx context.Context) *string
	LoggedInUser(ctx context.Context) *string
	Domain(ctx context.Context) *string
	CPU(ctx context.Context) *string
	Memory(ctx context.Context) domain.MemoryUsage
	Disk(ctx context.Context) domain.DiskUsage
	Hardware(ctx context.Context) domain.HardwareIdentity
	OSVersion(ctx context.Context) *string
	UptimeSeconds(ctx context.Context) *uint64
	Network(ctx context.Context) domain.NetworkIdentity
}
