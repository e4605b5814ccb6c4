package chartboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wigest/chartboard/chart"
)

// MissingPolicy decides what [Initializer.Run] does when a bound container
// is absent from the document or cannot be drawn into.
type MissingPolicy int

const (
	// FailFast aborts the run with a [*MissingContainerError] before any
	// chart is rendered. This is the default.
	FailFast MissingPolicy = iota

	// SkipMissing logs a warning for each unusable container and renders
	// the remaining charts.
	SkipMissing
)

// String returns the configuration spelling of the policy ("fail" or "skip").
func (p MissingPolicy) String() string {
	switch p {
	case FailFast:
		return "fail"
	case SkipMissing:
		return "skip"
	default:
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
}

// ParseMissingPolicy converts "fail" or "skip" into a [MissingPolicy].
// The empty string selects [FailFast].
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "fail":
		return FailFast, nil
	case "skip":
		return SkipMissing, nil
	default:
		return FailFast, fmt.Errorf("unknown missing container policy %q (expected fail or skip)", s)
	}
}

// Binding pairs a container id with the chart to mount into it.
type Binding struct {
	ContainerID string
	Chart       chart.Chart
}

// Handle identifies a chart instance created by a [Renderer].
// The initializer does not inspect it beyond returning it to the caller.
type Handle struct {
	ID string
}

// Renderer constructs a live chart in a container.
//
// Renderer is the charting library boundary: Render is called once per
// resolved container and returns a handle to the created instance.
type Renderer interface {
	Render(c Container, spec chart.Chart) (Handle, error)
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(c Container, spec chart.Chart) (Handle, error)

// Render calls f(c, spec).
func (f RendererFunc) Render(c Container, spec chart.Chart) (Handle, error) {
	return f(c, spec)
}

// Mount records one chart rendered by [Initializer.Run].
type Mount struct {
	ContainerID string
	Kind        chart.Kind
	Handle      Handle
}

// Initializer mounts a fixed set of charts into a document.
//
// An Initializer is created once with [NewInitializer] and is safe to run
// repeatedly; each run renders the same literal specifications.
type Initializer struct {
	bindings []Binding
	policy   MissingPolicy
	logger   *slog.Logger
}

// InitOption configures an [Initializer].
type InitOption func(*Initializer)

// WithPolicy sets the missing container policy. Defaults to [FailFast].
func WithPolicy(p MissingPolicy) InitOption {
	return func(in *Initializer) {
		in.policy = p
	}
}

// WithInitLogger sets the logger used for skip warnings and mount events.
// A nil logger is ignored.
func WithInitLogger(logger *slog.Logger) InitOption {
	return func(in *Initializer) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// NewInitializer validates the bindings and returns an [Initializer].
//
// Returns an error if there are no bindings, a container id is blank, or
// two bindings share a container id.
func NewInitializer(bindings []Binding, opts ...InitOption) (*Initializer, error) {
	if len(bindings) == 0 {
		return nil, errors.New("at least one chart binding is required")
	}

	seen := make(map[string]bool, len(bindings))
	for i, b := range bindings {
		if strings.TrimSpace(b.ContainerID) == "" {
			return nil, fmt.Errorf("bindings[%d]: container id cannot be empty", i)
		}
		if seen[b.ContainerID] {
			return nil, fmt.Errorf("duplicate container id: %q", b.ContainerID)
		}
		seen[b.ContainerID] = true
	}

	in := &Initializer{
		bindings: append([]Binding(nil), bindings...),
		policy:   FailFast,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in, nil
}

// Bindings returns a copy of the configured bindings.
func (in *Initializer) Bindings() []Binding {
	return append([]Binding(nil), in.bindings...)
}

// Policy returns the missing container policy.
func (in *Initializer) Policy() MissingPolicy {
	return in.policy
}

// Run resolves every bound container in doc and renders each chart once.
//
// Containers are resolved before anything is rendered. Under [FailFast], any
// unusable container aborts the run with a [*MissingContainerError] listing
// all of them and r is never called. Under [SkipMissing] those bindings are
// logged and skipped.
//
// Charts are rendered in binding order. A renderer error stops the run; the
// returned mounts cover the charts rendered before the failure.
func (in *Initializer) Run(doc Document, r Renderer) ([]Mount, error) {
	type target struct {
		container Container
		binding   Binding
	}

	targets := make([]target, 0, len(in.bindings))
	var missing MissingContainerError

	for _, b := range in.bindings {
		c, err := resolve(doc, b.ContainerID)
		if err != nil {
			missing.IDs = append(missing.IDs, b.ContainerID)
			missing.Causes = append(missing.Causes, err)
			continue
		}
		targets = append(targets, target{container: c, binding: b})
	}

	if len(missing.IDs) > 0 {
		if in.policy == FailFast {
			return nil, &missing
		}
		for i, id := range missing.IDs {
			in.logger.Warn("skipping chart", "container", id, "error", missing.Causes[i].Error())
		}
	}

	mounts := make([]Mount, 0, len(targets))
	for _, t := range targets {
		h, err := r.Render(t.container, t.binding.Chart)
		if err != nil {
			return mounts, fmt.Errorf("render chart into %q: %w", t.container.ID, err)
		}
		in.logger.Debug("chart mounted",
			"container", t.container.ID,
			"kind", t.binding.Chart.Kind().String(),
			"handle", h.ID,
		)
		mounts = append(mounts, Mount{
			ContainerID: t.container.ID,
			Kind:        t.binding.Chart.Kind(),
			Handle:      h,
		})
	}
	return mounts, nil
}

// resolve looks up a container and checks it can be drawn into.
func resolve(doc Document, id string) (Container, error) {
	c, ok := doc.Lookup(id)
	if !ok {
		return Container{}, &ContainerError{ID: id}
	}
	if !c.Drawable() {
		return Container{}, &ContainerError{ID: id, Tag: c.Tag}
	}
	return c, nil
}
