package usecase

import (
	"io"
	"log/slog"

	"github.com/aalvaropc/skein/internal/domain"
)

// Session is one editing session of the yarn form. Every mutation
// re-evaluates the rows, so Evaluation always matches Entries.
type Session struct {
	list *domain.EntryList
	eval domain.Evaluation
	log  *slog.Logger
}

type SessionOption func(*sessionOptions)

type sessionOptions struct {
	rows     []domain.YarnEntry
	defaults domain.EntryDefaults
	log      *slog.Logger
}

// WithEntries starts the session from existing rows instead of the seed rows.
func WithEntries(rows []domain.YarnEntry) SessionOption {
	return func(o *sessionOptions) { o.rows = rows }
}

// WithDefaults sets the field values of rows created by Add.
func WithDefaults(d domain.EntryDefaults) SessionOption {
	return func(o *sessionOptions) { o.defaults = d }
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		if l != nil {
			o.log = l
		}
	}
}

func NewSession(opts ...SessionOption) *Session {
	o := sessionOptions{
		defaults: domain.DefaultEntryDefaults(),
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		list: domain.NewEntryList(o.rows, o.defaults),
		log:  o.log,
	}
	s.Recalculate()
	return s
}

func (s *Session) Add() int {
	id := s.list.Add()
	s.log.Debug("session.add", "id", id)
	s.Recalculate()
	return id
}

// Remove is a no-op when id is unknown or the last row would go.
func (s *Session) Remove(id int) bool {
	ok := s.list.Remove(id)
	s.log.Debug("session.remove", "id", id, "removed", ok)
	if ok {
		s.Recalculate()
	}
	return ok
}

func (s *Session) Update(id int, f domain.Field, value string) bool {
	ok := s.list.Update(id, f, value)
	if ok {
		s.Recalculate()
	}
	return ok
}

// Recalculate re-runs validation and computation over the current rows.
func (s *Session) Recalculate() domain.Evaluation {
	s.eval = domain.Evaluate(s.list.Entries())

	if s.eval.Result != nil {
		s.log.Debug("session.evaluated", "entries", len(s.eval.Entries), "combined", s.eval.Result.Combined)
	} else {
		s.log.Debug("session.evaluated", "entries", len(s.eval.Entries), "invalid_entries", len(s.eval.Errors))
	}
	return s.eval
}

func (s *Session) Evaluation() domain.Evaluation { return s.eval }

func (s *Session) Entries() []domain.YarnEntry { return s.list.Entries() }

func (s *Session) Entry(id int) (domain.YarnEntry, bool) { return s.list.Get(id) }

func (s *Session) Len() int { return s.list.Len() }

func (s *Session) TotalStrandCount() int { return s.list.TotalStrandCount() }
