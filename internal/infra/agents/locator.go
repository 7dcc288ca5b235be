package agents

import (
	"context"
	"log/slog"
	"os"
	"regexp"

	"github.com/atlas-it/atlas-agent/internal/impls"
	"github.com/atlas-it/atlas-agent/internal/infra/shell"
	"github.com/atlas-it/atlas-agent/internal/infra/system"
)

var _ impls.AgentLocator = (*Locator)(nil)

// Locator discovers the identifiers of installed remote-support agents.
// Every lookup is read-only and best-effort.
type Locator struct {
	tag      string
	runner   shell.Runner
	registry RegistryReader
	logger   *slog.Logger

	ninjaFiles      []string
	teamViewerFiles []string
	readFile        func(string) ([]byte, error)
}

type Option func(*Locator)

// WithRegistry replaces the registry reader.
func WithRegistry(r RegistryReader) Option {
	return func(l *Locator) {
		l.registry = r
	}
}

// WithNinjaConfigPaths replaces the candidate NinjaOne agent config files.
func WithNinjaConfigPaths(paths ...string) Option {
	return func(l *Locator) {
		l.ninjaFiles = paths
	}
}

// WithTeamViewerConfigPaths replaces the candidate TeamViewer config files.
func WithTeamViewerConfigPaths(paths ...string) Option {
	return func(l *Locator) {
		l.teamViewerFiles = paths
	}
}

// NewLocator builds a Locator for the given platform tag.
func NewLocator(tag string, runner shell.Runner, logger *slog.Logger, opts ...Option) *Locator {
	l := &Locator{
		tag:             tag,
		runner:          runner,
		registry:        NewRegistryReader(runner),
		logger:          logger,
		ninjaFiles:      defaultNinjaFiles[tag],
		teamViewerFiles: defaultTeamViewerFiles[tag],
		readFile:        os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// fileMatch returns the first submatch of re in path.
func (l *Locator) fileMatch(path string, re *regexp.Regexp) (string, bool) {
	data, err := l.readFile(path)
	if err != nil {
		return "", false
	}
	m := re.FindSubmatch(data)
	if len(m) < 2 {
		return "", false
	}
	return string(m[1]), true
}

func (l *Locator) registryValue(ctx context.Context, key, name string) (RegistryValue, bool) {
	if l.registry == nil {
		return RegistryValue{}, false
	}
	return l.registry.ReadValue(ctx, key, name)
}
