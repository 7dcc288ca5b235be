package agents

import (
	"context"
	"regexp"
	"strconv"

	"github.com/atlas-it/atlas-agent/internal/infra/system"
)

const ninjaDeviceIDValue = "DeviceID"

var ninjaRegistryKeys = []string{
	`HKLM\SOFTWARE\WOW6432Node\NinjaRMM LLC\NinjaRMMAgent\Agent`,
	`HKLM\SOFTWARE\NinjaRMM LLC\NinjaRMMAgent\Agent`,
}

var defaultNinjaFiles = map[string][]string{
	system.Darwin: {
		"/Applications/NinjaRMMAgent/programdata/ninjarmm-agent.json",
		"/Applications/NinjaRMMAgent/programdata/storage/agent.json",
	},
	system.Linux: {
		"/opt/NinjaRMMAgent/programdata/ninjarmm-agent.json",
		"/opt/NinjaRMMAgent/programdata/storage/agent.json",
	},
}

// The agent config is not guaranteed to be well-formed JSON.
var ninjaDeviceIDRe = regexp.MustCompile(`"device_id"\s*:\s*(\d+)`)

// NinjaDeviceID returns the NinjaOne device id of this machine, or nil when
// the agent is not installed or its id cannot be read.
func (l *Locator) NinjaDeviceID(ctx context.Context) *int64 {
	id, ok := firstOf(ctx, l.logger, "ninja device id", l.ninjaLookups())
	if !ok {
		return nil
	}
	return &id
}

func (l *Locator) ninjaLookups() []lookup[int64] {
	var lookups []lookup[int64]
	switch l.tag {
	case system.Windows:
		for _, key := range ninjaRegistryKeys {
			lookups = append(lookups, lookup[int64]{
				source: key,
				read: func(ctx context.Context) (int64, bool) {
					v, ok := l.registryValue(ctx, key, ninjaDeviceIDValue)
					if !ok {
						return 0, false
					}
					return positive(parseRegistryNumber(v))
				},
			})
		}
	case system.Darwin, system.Linux:
		for _, path := range l.ninjaFiles {
			lookups = append(lookups, lookup[int64]{
				source: path,
				read: func(context.Context) (int64, bool) {
					raw, ok := l.fileMatch(path, ninjaDeviceIDRe)
					if !ok {
						return 0, false
					}
					n, err := strconv.ParseInt(raw, 10, 64)
					return positive(n, err == nil)
				},
			})
		}
	}
	return lookups
}

func positive(n int64, ok bool) (int64, bool) {
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}
