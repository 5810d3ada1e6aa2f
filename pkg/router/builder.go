// Package router implements the request routing core of an add-on: a
// builder that validates structural consistency between a manifest and the
// registered resource handlers, and an immutable router that dispatches
// parsed resource requests to those handlers.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/addonkit-project/addonkit-go/pkg/addon"
)

// HandlerFunc produces the response for one parsed resource request. A
// nil response with a nil error means the add-on has nothing for this
// request and the client receives a 404. The call may block arbitrarily
// long; it is the only suspension point in request processing.
type HandlerFunc func(ctx context.Context, path addon.ResourcePath) (*addon.ResourceResponse, error)

// Handler pairs a resource kind with the function serving it.
type Handler struct {
	Name string
	Func HandlerFunc
}

// Builder collects named handlers and, at build time, checks them against
// the manifest before yielding a Router.
type Builder struct {
	manifest addon.Manifest
	handlers []Handler
}

// NewBuilder returns a builder for the given manifest.
func NewBuilder(manifest addon.Manifest) *Builder {
	return &Builder{manifest: manifest}
}

// Handle registers fn for the given resource kind. Registering the same
// kind twice is a programmer error and fails immediately.
func (b *Builder) Handle(kind string, fn HandlerFunc) error {
	for _, h := range b.handlers {
		if h.Name == kind {
			return fmt.Errorf("handler for resource %q is already defined", kind)
		}
	}
	b.handlers = append(b.handlers, Handler{Name: kind, Func: fn})
	return nil
}

// HandleCatalog registers the catalog handler.
func (b *Builder) HandleCatalog(fn HandlerFunc) error {
	return b.Handle(addon.ResourceCatalog, fn)
}

// HandleMeta registers the metadata handler.
func (b *Builder) HandleMeta(fn HandlerFunc) error {
	return b.Handle(addon.ResourceMeta, fn)
}

// HandleStream registers the stream handler.
func (b *Builder) HandleStream(fn HandlerFunc) error {
	return b.Handle(addon.ResourceStream, fn)
}

// HandleSubtitles registers the subtitles handler.
func (b *Builder) HandleSubtitles(fn HandlerFunc) error {
	return b.Handle(addon.ResourceSubtitles, fn)
}

// Build validates the manifest against the registered handlers and, if
// every invariant holds, yields an immutable Router. On violation it
// returns a *BuildError aggregating every problem found; no router is
// produced and nothing is served.
func (b *Builder) Build(opts ServerOptions) (*Router, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if opts.LandingHTML == "" {
		landing, err := DefaultLanding(b.manifest)
		if err != nil {
			return nil, fmt.Errorf("render landing page: %w", err)
		}
		opts.LandingHTML = landing
	}
	return newRouter(b.manifest, b.handlers, opts), nil
}

func (b *Builder) validate() error {
	buildErr := &BuildError{}

	if len(b.handlers) == 0 {
		buildErr.NoHandlers = true
	}
	if _, err := semver.StrictNewVersion(b.manifest.Version); err != nil {
		buildErr.InvalidVersion = fmt.Sprintf("manifest.version %q is not valid semver", b.manifest.Version)
	}

	// Resource kinds the manifest obliges us to serve. Declaring catalogs
	// implies a catalog handler.
	var declared []string
	seen := make(map[string]bool)
	if len(b.manifest.Catalogs) > 0 {
		declared = append(declared, addon.ResourceCatalog)
		seen[addon.ResourceCatalog] = true
	}
	for _, name := range b.manifest.ResourceNames() {
		if !seen[name] {
			declared = append(declared, name)
			seen[name] = true
		}
	}

	for _, h := range b.handlers {
		if seen[h.Name] {
			continue
		}
		if h.Name == addon.ResourceCatalog {
			// A catalog handler without declared catalogs can never be
			// reached.
			buildErr.UnreachableCatalog = true
		} else {
			buildErr.Undeclared = append(buildErr.Undeclared, h.Name)
		}
	}

	for _, name := range declared {
		found := false
		for _, h := range b.handlers {
			if h.Name == name {
				found = true
				break
			}
		}
		if !found {
			buildErr.Missing = append(buildErr.Missing, name)
		}
	}

	if buildErr.empty() {
		return nil
	}
	return buildErr
}

// BuildError aggregates every structural violation found while validating
// a manifest against the registered handlers.
type BuildError struct {
	// Missing lists resource kinds the manifest declares without a
	// handler being registered for them.
	Missing []string
	// Undeclared lists registered handlers whose kind the manifest does
	// not declare.
	Undeclared []string
	// UnreachableCatalog is set when a catalog handler is registered but
	// manifest.catalogs is empty.
	UnreachableCatalog bool
	// NoHandlers is set when no handlers were registered at all.
	NoHandlers bool
	// InvalidVersion describes a manifest version that does not parse as
	// semver.
	InvalidVersion string
}

func (e *BuildError) empty() bool {
	return len(e.Missing) == 0 && len(e.Undeclared) == 0 &&
		!e.UnreachableCatalog && !e.NoHandlers && e.InvalidVersion == ""
}

func (e *BuildError) Error() string {
	var lines []string
	if e.NoHandlers {
		lines = append(lines, "at least one handler must be defined")
	}
	if e.UnreachableCatalog {
		lines = append(lines, "manifest.catalogs is empty, \"catalog\" handler will never be called")
	}
	for _, name := range e.Undeclared {
		lines = append(lines, fmt.Sprintf("manifest.resources does not contain: %s", name))
	}
	for _, name := range e.Missing {
		lines = append(lines, fmt.Sprintf("manifest definition requires handler for %q, but it is not provided", name))
	}
	if e.InvalidVersion != "" {
		lines = append(lines, e.InvalidVersion)
	}
	return "failed to build addon interface:\n" + strings.Join(lines, "\n")
}
