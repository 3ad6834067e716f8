package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/core/repair"
)

// LoadError aggregates the individual write failures of one LoadCase.
type LoadError struct {
	Failed int
	Total  int
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%d of %d writes failed: %v", e.Failed, e.Total, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadCase replaces the working graph with c. The case must already be
// valid; writes continue past individual failures, which are reported
// together as a *LoadError.
func (s *Store) LoadCase(ctx context.Context, c *model.Case) error {
	if !s.IsActive() {
		return ErrInactive
	}
	if err := repair.Validate(c); err != nil {
		return err
	}
	if err := s.Reset(ctx); err != nil {
		return err
	}

	var errs []error
	total := 0
	record := func(err error) {
		total++
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, p := range c.People() {
		record(s.UpsertPerson(ctx, p.Name, p.Role, p.Trait))
	}
	for _, loc := range c.Locations {
		record(s.UpsertLocation(ctx, loc))
	}
	for _, it := range c.Clues {
		record(s.UpsertClue(ctx, it.Name, it.Location, it.Description))
	}
	for _, a := range c.Alibis {
		record(s.UpsertSighting(ctx, a.Person, a.Location, a.Time))
	}
	for _, r := range c.Relationships {
		record(s.UpsertRelationship(ctx, r.From, r.To, r.Type, r.Detail))
	}

	if len(errs) > 0 {
		s.logger.Error("case load incomplete", "failed", len(errs), "total", total)
		return &LoadError{Failed: len(errs), Total: total, Err: errors.Join(errs...)}
	}
	s.logger.Info("case loaded", "title", c.Title, "writes", total)
	return nil
}
