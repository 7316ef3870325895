// Package assembler runs one changelog pass: it probes the output target,
// requests raw release descriptions from the commit-grouping collaborator,
// normalizes them, prepends them to the persisted history and writes the
// result (or logs it in dry-run mode).
package assembler

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/ariel-frischer/jsonchangelog/internal/config"
	"github.com/ariel-frischer/jsonchangelog/internal/conventional"
	"github.com/ariel-frischer/jsonchangelog/internal/logging"
	"github.com/ariel-frischer/jsonchangelog/internal/storage"
)

// debugIndent is the indentation of structures logged in debug mode.
const debugIndent = 2

// Options are the resolved run options.
type Options struct {
	ChangelogName  string
	Indent         int
	Debug          bool
	DryRun         bool
	LinkReferences bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ChangelogName:  "CHANGELOG.json",
		Indent:         2,
		LinkReferences: true,
	}
}

// OptionsFromConfig maps a resolved configuration onto run options.
func OptionsFromConfig(cfg *config.Configuration) Options {
	return Options{
		ChangelogName:  cfg.ChangelogName,
		Indent:         cfg.Indent,
		Debug:          cfg.Debug,
		DryRun:         cfg.DryRun,
		LinkReferences: cfg.LinkReferences,
	}
}

// Mode is the generation mode chosen by the existence probe.
type Mode int

const (
	// Bootstrap requests the full commit history: no changelog exists yet.
	Bootstrap Mode = iota
	// Incremental requests only commits since the last tag.
	Incremental
)

func (m Mode) String() string {
	if m == Incremental {
		return "incremental"
	}
	return "bootstrap"
}

// Result describes a completed run.
type Result struct {
	Mode Mode
	// NewReleases are the normalized releases in the order received.
	NewReleases []changelog.Release
	// Document is the typed view of the assembled changelog; nil when the
	// run was a no-op. Content keeps persisted entries as they were read.
	Document *changelog.Changelog
	// Content is the serialized document; nil when the run was a no-op.
	Content []byte
	// Written is true when Content was handed to storage.
	Written bool
}

// NoOp reports whether the run produced no new releases.
func (r *Result) NoOp() bool {
	return len(r.NewReleases) == 0
}

// Operation returns "Create" or "Update" for the document.
func (r *Result) Operation() string {
	if r.Mode == Incremental {
		return "Update"
	}
	return "Create"
}

// Assembler is the changelog assembler. Collaborators are injected; it keeps
// no state between runs.
type Assembler struct {
	opts       Options
	source     conventional.Source
	store      storage.Storage
	logger     logging.Logger
	normalizer ReleaseNormalizer
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithNormalizer replaces the default Normalizer.
func WithNormalizer(n ReleaseNormalizer) Option {
	return func(a *Assembler) {
		a.normalizer = n
	}
}

// New creates an Assembler. A nil logger discards messages.
func New(opts Options, source conventional.Source, store storage.Storage, logger logging.Logger, options ...Option) *Assembler {
	if logger == nil {
		logger = logging.Discard
	}
	a := &Assembler{
		opts:       opts,
		source:     source,
		store:      store,
		logger:     logger,
		normalizer: Normalizer{LinkReferences: opts.LinkReferences},
	}
	for _, o := range options {
		o(a)
	}
	return a
}

// Run performs one pass for the given target version. An empty batch of new
// releases is a no-op: the existing document is neither read nor written.
// Errors are never retried.
func (a *Assembler) Run(ctx context.Context, version string) (*Result, error) {
	name := a.opts.ChangelogName

	exists, err := a.store.Exists(name)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", name, err)
	}
	result := &Result{Mode: Bootstrap}
	if exists {
		result.Mode = Incremental
	}

	newReleases, err := a.releasesToUpdate(ctx, conventional.Request{
		Version:      version,
		SinceLastTag: exists,
	})
	if err != nil {
		return nil, err
	}
	result.NewReleases = newReleases

	if result.NoOp() {
		return result, nil
	}

	existing, history, err := a.currentReleases(name, exists)
	if err != nil {
		return nil, err
	}

	doc := changelog.Assemble(newReleases, existing)
	a.logger.Log(fmt.Sprintf("%s %s.", result.Operation(), name))

	content, err := changelog.MarshalPrepended(name, newReleases, history, a.opts.Indent)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", name, err)
	}
	result.Document = doc
	result.Content = content

	if a.opts.DryRun {
		a.logger.Log("Changelog content: " + string(content))
		return result, nil
	}

	if err := a.store.Write(name, content); err != nil {
		return nil, err
	}
	result.Written = true
	return result, nil
}

// releasesToUpdate drains the collaborator's sequence, normalizing each
// description in order.
func (a *Assembler) releasesToUpdate(ctx context.Context, req conventional.Request) ([]changelog.Release, error) {
	releases := []changelog.Release{}
	for raw, err := range a.source.Releases(ctx, req) {
		if err != nil {
			return nil, fmt.Errorf("reading release descriptions: %w", err)
		}
		a.debug("Release: ", raw)

		release, err := a.normalizer.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("normalizing: %w", err)
		}
		releases = append(releases, release)
	}

	a.debug("Releases to update: ", releases)
	return releases, nil
}

// currentReleases loads the persisted history; a missing document has none.
// The typed releases must parse as the document schema; the History holds
// the same entries as decoded and is what gets written back.
func (a *Assembler) currentReleases(name string, exists bool) ([]changelog.Release, *changelog.History, error) {
	if !exists {
		return nil, nil, nil
	}
	data, err := a.store.Read(name)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", name, err)
	}
	doc, err := changelog.Parse(name, data)
	if err != nil {
		return nil, nil, err
	}
	history, err := changelog.ParseHistory(name, data)
	if err != nil {
		return nil, nil, err
	}
	return doc.Releases, history, nil
}

func (a *Assembler) debug(prefix string, v any) {
	if !a.opts.Debug {
		return
	}
	data, err := changelog.MarshalIndentJSON(v, debugIndent)
	if err != nil {
		a.logger.Log(prefix + err.Error())
		return
	}
	a.logger.Log(prefix + string(data))
}
