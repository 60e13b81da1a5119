package eventsvc

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/epochline/epochline/internal/audit"
	"github.com/epochline/epochline/internal/runtime"
	"github.com/epochline/epochline/internal/store"
	"github.com/epochline/epochline/internal/timeline"
	logpkg "github.com/epochline/epochline/pkg/log"
)

// Service provides the timeline operations consumed by the HTTP transport
// and the CLI.
type Service struct {
	rt         *runtime.Runtime
	logger     logpkg.Logger
	maxRetries int
}

// New returns a Service using the runtime's logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, rt.Logger())
}

// NewWithLogger constructs the service with an injected logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Service{
		rt:         rt,
		logger:     logger.With(logpkg.Component("events")),
		maxRetries: rt.Config().MaxRetries,
	}
}

// Categories returns the closed category set.
func (s *Service) Categories() []timeline.Category { return timeline.Categories() }

// List returns events newest-year-first, optionally narrowed by category and
// a CEL filter expression. Reads go through the TTL-boxed cache; no auth is
// required.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]timeline.Event, error) {
	filter, err := newCELFilter(opts.Filter)
	if err != nil {
		return nil, &timeline.ValidationError{Fields: []timeline.FieldError{{Field: "filter", Msg: err.Error()}}}
	}

	col, _, err := s.rt.Store().CachedRead(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]timeline.Event, 0, len(col.Events))
	for _, ev := range col.Events {
		if opts.Category != "" && string(ev.Category) != opts.Category {
			continue
		}
		if !filter.Eval(ev) {
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Create validates the input, assigns a fresh id, and appends the event
// under the conflict retry loop. Requires the owner capability.
func (s *Service) Create(ctx context.Context, caller Caller, in timeline.NewEvent) (timeline.Event, error) {
	if !caller.Owner {
		return timeline.Event{}, ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return timeline.Event{}, err
	}

	ev := in.Materialize(s.rt.IDs().NextString())
	message := fmt.Sprintf("create event %q", ev.Name)

	start := time.Now()
	_, ver, err := s.rt.Store().Mutate(ctx, message, s.maxRetries, func(col *timeline.Collection) error {
		col.Events = append(col.Events, ev.Clone())
		return nil
	})
	if err != nil {
		return timeline.Event{}, err
	}

	s.recordAudit(audit.ActionCreate, ev.ID, message, ver)
	s.logger.Info("event created",
		logpkg.Str("event_id", ev.ID),
		logpkg.Str("version", string(ver)),
		logpkg.Dur("dur_ms", time.Since(start)))
	return ev, nil
}

// Update validates the patch, then merges it onto the event with the given
// id under the conflict retry loop. The id is immutable. Requires the owner
// capability.
func (s *Service) Update(ctx context.Context, caller Caller, eventID string, patch timeline.Patch) (timeline.Event, error) {
	if !caller.Owner {
		return timeline.Event{}, ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return timeline.Event{}, err
	}

	message := fmt.Sprintf("update event %s", eventID)
	var updated timeline.Event

	start := time.Now()
	_, ver, err := s.rt.Store().Mutate(ctx, message, s.maxRetries, func(col *timeline.Collection) error {
		i := col.Find(eventID)
		if i == -1 {
			return timeline.ErrNotFound
		}
		col.Events[i] = patch.Apply(col.Events[i])
		updated = col.Events[i].Clone()
		return nil
	})
	if err != nil {
		return timeline.Event{}, err
	}

	s.recordAudit(audit.ActionUpdate, eventID, message, ver)
	s.logger.Info("event updated",
		logpkg.Str("event_id", eventID),
		logpkg.Str("version", string(ver)),
		logpkg.Dur("dur_ms", time.Since(start)))
	return updated, nil
}

// Delete removes the event with the given id under the conflict retry loop.
// Requires the owner capability.
func (s *Service) Delete(ctx context.Context, caller Caller, eventID string) error {
	if !caller.Owner {
		return ErrUnauthorized
	}

	message := fmt.Sprintf("delete event %s", eventID)

	start := time.Now()
	_, ver, err := s.rt.Store().Mutate(ctx, message, s.maxRetries, func(col *timeline.Collection) error {
		i := col.Find(eventID)
		if i == -1 {
			return timeline.ErrNotFound
		}
		col.Events = append(col.Events[:i], col.Events[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(audit.ActionDelete, eventID, message, ver)
	s.logger.Info("event deleted",
		logpkg.Str("event_id", eventID),
		logpkg.Str("version", string(ver)),
		logpkg.Dur("dur_ms", time.Since(start)))
	return nil
}

// History returns recent audit entries, newest first. Requires the owner
// capability.
func (s *Service) History(ctx context.Context, caller Caller, limit int) ([]audit.Entry, error) {
	if !caller.Owner {
		return nil, ErrUnauthorized
	}
	return s.rt.Audit().Recent(limit)
}

// Seed writes the starter document. It only succeeds when the remote
// document does not exist yet.
func (s *Service) Seed(ctx context.Context, caller Caller) error {
	if !caller.Owner {
		return ErrUnauthorized
	}
	ver, err := s.rt.Store().Write(ctx, timeline.Seed(), "", "seed timeline")
	if err != nil {
		return err
	}
	s.recordAudit(audit.ActionSeed, "", "seed timeline", ver)
	s.logger.Info("timeline seeded", logpkg.Str("version", string(ver)))
	return nil
}

// recordAudit appends to the local trail. The trail is advisory, so a
// failure is logged and swallowed rather than failing the mutation that
// already committed remotely.
func (s *Service) recordAudit(action, eventID, message string, ver store.Version) {
	_, err := s.rt.Audit().Append(audit.Entry{
		Action:  action,
		EventID: eventID,
		Message: message,
		Version: string(ver),
	})
	if err != nil {
		s.logger.Warn("audit append failed", logpkg.Err(err), logpkg.Str("action", action))
	}
}
