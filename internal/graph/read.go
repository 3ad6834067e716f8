package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/driver"
)

func getString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// CluesAt lists the items found in location, in creation order.
func (s *Store) CluesAt(ctx context.Context, location string) ([]model.ClueView, error) {
	if !s.IsActive() {
		return nil, nil
	}
	res, err := s.exec(ctx, driver.CluesAtQuery, map[string]any{"location": location})
	if err != nil {
		return nil, fmt.Errorf("clues at %q: %w", location, err)
	}
	clues := make([]model.ClueView, 0, len(res.Records))
	for _, rec := range res.Records {
		clues = append(clues, model.ClueView{
			Name:        getString(rec, "name"),
			Description: getString(rec, "description"),
			Location:    getString(rec, "location"),
		})
	}
	return clues, nil
}

// WitnessesAt lists the people seen at location at exactly time.
func (s *Store) WitnessesAt(ctx context.Context, location, time string) ([]model.PersonView, error) {
	if !s.IsActive() {
		return nil, nil
	}
	res, err := s.exec(ctx, driver.WitnessesAtQuery, map[string]any{"location": location, "time": time})
	if err != nil {
		return nil, fmt.Errorf("witnesses at %q: %w", location, err)
	}
	people := make([]model.PersonView, 0, len(res.Records))
	for _, rec := range res.Records {
		people = append(people, model.PersonView{
			Name: getString(rec, "name"),
			Role: model.Role(getString(rec, "role")),
			Time: getString(rec, "time"),
		})
	}
	return people, nil
}

func (s *Store) RelationshipsOf(ctx context.Context, person string) ([]model.RelationshipView, error) {
	if !s.IsActive() {
		return nil, nil
	}
	res, err := s.exec(ctx, driver.RelationshipsOfQuery, map[string]any{"name": person})
	if err != nil {
		return nil, fmt.Errorf("relationships of %q: %w", person, err)
	}
	rels := make([]model.RelationshipView, 0, len(res.Records))
	for _, rec := range res.Records {
		rels = append(rels, model.RelationshipView{
			Type:   getString(rec, "type"),
			Target: getString(rec, "target"),
			Detail: getString(rec, "detail"),
		})
	}
	return rels, nil
}

// Killer returns the stored killer's name; found is false when the graph
// holds no killer.
func (s *Store) Killer(ctx context.Context) (name string, found bool, err error) {
	if !s.IsActive() {
		return "", false, nil
	}
	res, err := s.exec(ctx, driver.KillerQuery, map[string]any{"role": string(model.RoleKiller)})
	if err != nil {
		return "", false, fmt.Errorf("killer: %w", err)
	}
	if len(res.Records) == 0 {
		return "", false, nil
	}
	return getString(res.Records[0], "name"), true, nil
}

func (s *Store) Locations(ctx context.Context) ([]string, error) {
	if !s.IsActive() {
		return nil, nil
	}
	res, err := s.exec(ctx, driver.LocationsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}
	locs := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		locs = append(locs, getString(rec, "name"))
	}
	return locs, nil
}

func (s *Store) People(ctx context.Context) ([]model.Person, error) {
	if !s.IsActive() {
		return nil, nil
	}
	res, err := s.exec(ctx, driver.PeopleQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("people: %w", err)
	}
	people := make([]model.Person, 0, len(res.Records))
	for _, rec := range res.Records {
		people = append(people, model.Person{
			Name:  getString(rec, "name"),
			Role:  model.Role(getString(rec, "role")),
			Trait: getString(rec, "trait"),
		})
	}
	return people, nil
}

// Edges returns every relationship of the case as labelled triples.
func (s *Store) Edges(ctx context.Context) ([]model.Edge, error) {
	if !s.IsActive() {
		return nil, nil
	}
	res, err := s.exec(ctx, driver.EdgesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	edges := make([]model.Edge, 0, len(res.Records))
	for _, rec := range res.Records {
		edges = append(edges, model.Edge{
			Source:      getString(rec, "source"),
			SourceLabel: getString(rec, "source_label"),
			Type:        getString(rec, "type"),
			Target:      getString(rec, "target"),
			TargetLabel: getString(rec, "target_label"),
		})
	}
	return edges, nil
}
