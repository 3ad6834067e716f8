package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agenthands/casefile/internal/core/community"
	"github.com/agenthands/casefile/internal/core/model"
)

const DefaultTimeLimit = 30 * time.Minute

// CaseReader is the read side of the graph store the engine plays against.
type CaseReader interface {
	IsActive() bool
	CluesAt(ctx context.Context, location string) ([]model.ClueView, error)
	WitnessesAt(ctx context.Context, location, time string) ([]model.PersonView, error)
	RelationshipsOf(ctx context.Context, person string) ([]model.RelationshipView, error)
	Killer(ctx context.Context) (name string, found bool, err error)
	Locations(ctx context.Context) ([]string, error)
	People(ctx context.Context) ([]model.Person, error)
}

type clueKey struct {
	name     string
	location string
}

// Game holds one player's progress through a stored case: discovered
// evidence, visited locations, interviewed people and the clock.
type Game struct {
	reader   CaseReader
	limit    time.Duration
	now      func() time.Time
	detector community.Detector
	logger   *slog.Logger

	mu          sync.Mutex
	started     time.Time
	evidence    []model.ClueView
	seen        map[clueKey]bool
	visited     []string
	interviewed []string
}

type Option func(*Game)

// WithClock replaces time.Now. Readings should carry a monotonic clock.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func WithTimeLimit(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.limit = d
		}
	}
}

func WithDetector(d community.Detector) Option {
	return func(g *Game) { g.detector = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

func NewGame(reader CaseReader, opts ...Option) *Game {
	g := &Game{
		reader:   reader,
		limit:    DefaultTimeLimit,
		now:      time.Now,
		detector: community.NewLabelPropagationDetector(),
		logger:   slog.Default(),
		seen:     make(map[clueKey]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "engine")
	return g
}

func (g *Game) active() bool {
	return g.reader != nil && g.reader.IsActive()
}

// SearchLocation returns the clues in location and records the new ones as
// discovered evidence. The location counts as visited even when empty.
func (g *Game) SearchLocation(ctx context.Context, location string) []model.ClueView {
	if !g.active() {
		return nil
	}
	clues, err := g.reader.CluesAt(ctx, location)
	if err != nil {
		g.logger.Error("search failed", "location", location, "error", err)
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range clues {
		key := clueKey{name: c.Name, location: c.Location}
		if g.seen[key] {
			continue
		}
		g.seen[key] = true
		g.evidence = append(g.evidence, c)
		g.logger.Info("new evidence", "item", c.Name, "location", c.Location)
	}
	if !slices.Contains(g.visited, location) {
		g.visited = append(g.visited, location)
	}
	return clues
}

// QueryWitnesses lists who was seen at location at exactly time and marks
// each of them as interviewed.
func (g *Game) QueryWitnesses(ctx context.Context, location, time string) []model.PersonView {
	if !g.active() {
		return nil
	}
	people, err := g.reader.WitnessesAt(ctx, location, time)
	if err != nil {
		g.logger.Error("witness query failed", "location", location, "time", time, "error", err)
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range people {
		g.markInterviewed(p.Name)
	}
	return people
}

func (g *Game) GetRelationships(ctx context.Context, person string) []model.RelationshipView {
	if !g.active() {
		return nil
	}
	rels, err := g.reader.RelationshipsOf(ctx, person)
	if err != nil {
		g.logger.Error("relationship query failed", "person", person, "error", err)
		return nil
	}
	return rels
}

func (g *Game) MarkInterviewed(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markInterviewed(name)
}

func (g *Game) markInterviewed(name string) {
	if !slices.Contains(g.interviewed, name) {
		g.interviewed = append(g.interviewed, name)
	}
}

// MakeAccusation compares accused with the stored killer, ignoring case.
// When the truth cannot be read the result is indeterminate, never correct.
func (g *Game) MakeAccusation(ctx context.Context, accused string) model.AccusationResult {
	g.mu.Lock()
	res := model.AccusationResult{
		Accused:           accused,
		EvidenceCollected: len(g.evidence),
		LocationsVisited:  len(g.visited),
	}
	g.mu.Unlock()
	res.TimeRemaining = int(g.Remaining() / time.Second)

	if !g.active() {
		res.Indeterminate = true
		res.Message = "the case graph is unavailable"
		return res
	}
	killer, found, err := g.reader.Killer(ctx)
	switch {
	case err != nil:
		g.logger.Error("could not read killer", "error", err)
		res.Indeterminate = true
		res.Message = "the case graph could not be read"
		return res
	case !found:
		res.Indeterminate = true
		res.Message = "no killer is recorded for this case"
		return res
	}

	res.ActualKiller = killer
	res.Correct = strings.ToLower(accused) == strings.ToLower(killer)
	if res.Correct {
		res.Message = fmt.Sprintf("Case closed. %s was the killer.", killer)
	} else {
		res.Message = fmt.Sprintf("%s is innocent. The killer was %s.", accused, killer)
	}
	g.logger.Info("accusation made", "accused", accused, "correct", res.Correct)
	return res
}

// Evidence returns the discovered evidence in discovery order.
func (g *Game) Evidence() []model.ClueView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.ClueView{}, g.evidence...)
}

func (g *Game) Summary() model.GameSummary {
	g.mu.Lock()
	s := model.GameSummary{
		EvidenceCount:    len(g.evidence),
		VisitedLocations: append([]string{}, g.visited...),
		Interviewed:      append([]string{}, g.interviewed...),
	}
	g.mu.Unlock()
	s.TimeRemaining = int(g.Remaining() / time.Second)
	return s
}

// UnvisitedLocations lists stored locations the player has not searched.
func (g *Game) UnvisitedLocations(ctx context.Context) []string {
	if !g.active() {
		return nil
	}
	locs, err := g.reader.Locations(ctx)
	if err != nil {
		g.logger.Error("location query failed", "error", err)
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	var out []string
	for _, l := range locs {
		if !slices.Contains(g.visited, l) {
			out = append(out, l)
		}
	}
	return out
}

// SuspectCircles groups the non-victim people by their relationships.
func (g *Game) SuspectCircles(ctx context.Context) [][]string {
	if !g.active() {
		return nil
	}
	people, err := g.reader.People(ctx)
	if err != nil {
		g.logger.Error("people query failed", "error", err)
		return nil
	}

	var names []string
	var rels []model.SocialRelationship
	for _, p := range people {
		if p.Role == model.RoleVictim {
			continue
		}
		names = append(names, p.Name)
		out, err := g.reader.RelationshipsOf(ctx, p.Name)
		if err != nil {
			g.logger.Error("relationship query failed", "person", p.Name, "error", err)
			return nil
		}
		for _, r := range out {
			rels = append(rels, model.SocialRelationship{From: p.Name, To: r.Target, Type: r.Type})
		}
	}
	return g.detector.Detect(names, rels)
}
