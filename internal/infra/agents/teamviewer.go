package agents

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/atlas-it/atlas-agent/internal/infra/system"
)

const (
	teamViewerIDValue      = "ClientID"
	teamViewerVersionValue = "Version"
	teamViewerPreferences  = "/Library/Preferences/com.teamviewer.teamviewer.preferences"
)

var teamViewerRegistryKeys = []string{
	`HKLM\SOFTWARE\TeamViewer`,
	`HKLM\SOFTWARE\WOW6432Node\TeamViewer`,
}

var defaultTeamViewerFiles = map[string][]string{
	system.Darwin: {"/Library/Application Support/TeamViewer/global.conf"},
	system.Linux:  {"/opt/teamviewer/config/global.conf"},
}

var (
	teamViewerConfIDRe      = regexp.MustCompile(`(?m)^\s*\[int32\]\s*ClientID\s*=\s*(\d+)`)
	teamViewerConfVersionRe = regexp.MustCompile(`(?m)^\s*\[strng\]\s*Version\s*=\s*"([^"]*)"`)
)

// TeamViewerID returns the TeamViewer id formatted for display, e.g.
// "1 234 567 890".
func (l *Locator) TeamViewerID(ctx context.Context) *string {
	id, ok := firstOf(ctx, l.logger, "teamviewer id", l.teamViewerLookups(teamViewerIDValue, teamViewerConfIDRe, parseTeamViewerID))
	if !ok {
		return nil
	}
	formatted := FormatTeamViewerID(id)
	return &formatted
}

// TeamViewerVersion returns the installed TeamViewer version verbatim.
func (l *Locator) TeamViewerVersion(ctx context.Context) *string {
	v, ok := firstOf(ctx, l.logger, "teamviewer version", l.teamViewerLookups(teamViewerVersionValue, teamViewerConfVersionRe, parseVersion))
	if !ok {
		return nil
	}
	return &v
}

func (l *Locator) teamViewerLookups(value string, confRe *regexp.Regexp, parse func(string) (string, bool)) []lookup[string] {
	var lookups []lookup[string]
	switch l.tag {
	case system.Windows:
		for _, key := range teamViewerRegistryKeys {
			lookups = append(lookups, lookup[string]{
				source: key,
				read: func(ctx context.Context) (string, bool) {
					v, ok := l.registryValue(ctx, key, value)
					if !ok {
						return "", false
					}
					return parse(v.Data)
				},
			})
		}
	case system.Darwin:
		lookups = append(lookups, lookup[string]{
			source: teamViewerPreferences,
			read: func(ctx context.Context) (string, bool) {
				out, err := l.runner.Run(ctx, "defaults", "read", teamViewerPreferences, value)
				if err != nil {
					return "", false
				}
				return parse(out)
			},
		})
		lookups = append(lookups, l.teamViewerFileLookups(confRe, parse)...)
	case system.Linux:
		lookups = append(lookups, l.teamViewerFileLookups(confRe, parse)...)
	}
	return lookups
}

func (l *Locator) teamViewerFileLookups(re *regexp.Regexp, parse func(string) (string, bool)) []lookup[string] {
	lookups := make([]lookup[string], 0, len(l.teamViewerFiles))
	for _, path := range l.teamViewerFiles {
		lookups = append(lookups, lookup[string]{
			source: path,
			read: func(context.Context) (string, bool) {
				raw, ok := l.fileMatch(path, re)
				if !ok {
					return "", false
				}
				return parse(raw)
			},
		})
	}
	return lookups
}

func parseTeamViewerID(raw string) (string, bool) {
	n, ok := positive(parseRegistryNumber(RegistryValue{Data: raw}))
	if !ok {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}

func parseVersion(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	return v, v != ""
}

// FormatTeamViewerID groups digits in threes from the right, separated by
// spaces.
func FormatTeamViewerID(digits string) string {
	digits = strings.TrimSpace(digits)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
