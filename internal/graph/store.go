package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/casefile/internal/config"
	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/driver"
)

var (
	ErrInactive            = errors.New("graph store is inactive")
	ErrInvalidRelationType = errors.New("invalid relationship type")
)

// Store is the case-scoped adapter over the graph backend. Every node it
// writes carries the bound case id, and every read is filtered by it.
//
// A Store without a driver is inactive: reads return empty results, writes
// are no-ops, and LoadCase reports ErrInactive.
type Store struct {
	driver driver.GraphDriver
	caseID string
	base   *slog.Logger
	logger *slog.Logger
}

func New(d driver.GraphDriver, caseID string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		driver: d,
		caseID: caseID,
		base:   logger,
		logger: logger.With("component", "graph", "case_id", caseID),
	}
}

// Open dials the backend. When it cannot be reached the failure is logged
// and an inactive Store is returned.
func Open(ctx context.Context, cfg config.MemgraphConfig, caseID string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	d, err := driver.NewMemgraphDriver(ctx, cfg.URI, cfg.User, cfg.Password, logger)
	if err != nil {
		logger.Warn("graph backend unavailable, continuing without it", "uri", cfg.URI, "error", err)
		return New(nil, caseID, logger)
	}
	return New(d, caseID, logger)
}

func (s *Store) IsActive() bool {
	return s != nil && s.driver != nil
}

func (s *Store) CaseID() string {
	return s.caseID
}

// WithCase returns a Store sharing the same driver bound to another case.
func (s *Store) WithCase(caseID string) *Store {
	return New(s.driver, caseID, s.base)
}

func (s *Store) Close(ctx context.Context) error {
	if !s.IsActive() {
		return nil
	}
	return s.driver.Close(ctx)
}

func (s *Store) BuildIndices(ctx context.Context) error {
	if !s.IsActive() {
		return nil
	}
	return s.driver.BuildIndices(ctx)
}

func (s *Store) exec(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	if params == nil {
		params = map[string]any{}
	}
	params["case_id"] = s.caseID
	return s.driver.ExecuteQuery(ctx, query, params)
}

// Reset deletes every node of the bound case.
func (s *Store) Reset(ctx context.Context) error {
	if !s.IsActive() {
		return nil
	}
	if _, err := s.exec(ctx, driver.ResetCaseQuery, nil); err != nil {
		return fmt.Errorf("reset case %s: %w", s.caseID, err)
	}
	return nil
}

func (s *Store) UpsertPerson(ctx context.Context, name string, role model.Role, trait string) error {
	if !s.IsActive() {
		return nil
	}
	_, err := s.exec(ctx, driver.UpsertPersonQuery, map[string]any{
		"name":  name,
		"role":  string(role),
		"trait": trait,
	})
	if err != nil {
		return fmt.Errorf("upsert person %q: %w", name, err)
	}
	return nil
}

func (s *Store) UpsertLocation(ctx context.Context, name string) error {
	if !s.IsActive() {
		return nil
	}
	if _, err := s.exec(ctx, driver.UpsertLocationQuery, map[string]any{"name": name}); err != nil {
		return fmt.Errorf("upsert location %q: %w", name, err)
	}
	return nil
}

// UpsertSighting records that person was seen at location at time. The
// person must already exist; the location is created on demand.
func (s *Store) UpsertSighting(ctx context.Context, person, location, time string) error {
	if !s.IsActive() {
		return nil
	}
	_, err := s.exec(ctx, driver.UpsertSightingQuery, map[string]any{
		"person":   person,
		"location": location,
		"time":     time,
	})
	if err != nil {
		return fmt.Errorf("upsert sighting of %q at %q: %w", person, location, err)
	}
	return nil
}

// UpsertRelationship merges a typed edge between two existing people.
// relType is normalized first; anything that is still not a plain
// identifier is rejected with ErrInvalidRelationType.
func (s *Store) UpsertRelationship(ctx context.Context, from, to, relType, detail string) error {
	label := model.NormalizeRelationType(relType)
	if !model.ValidRelationType(label) {
		return fmt.Errorf("%w: %q", ErrInvalidRelationType, relType)
	}
	if !s.IsActive() {
		return nil
	}
	_, err := s.exec(ctx, driver.UpsertRelationshipQuery(label), map[string]any{
		"from":   from,
		"to":     to,
		"detail": detail,
	})
	if err != nil {
		return fmt.Errorf("upsert relationship %q -%s-> %q: %w", from, label, to, err)
	}
	return nil
}

func (s *Store) UpsertClue(ctx context.Context, item, location, description string) error {
	if !s.IsActive() {
		return nil
	}
	_, err := s.exec(ctx, driver.UpsertClueQuery, map[string]any{
		"name":        item,
		"location":    location,
		"description": description,
	})
	if err != nil {
		return fmt.Errorf("upsert clue %q: %w", item, err)
	}
	return nil
}
