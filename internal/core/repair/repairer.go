package repair

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/agenthands/casefile/internal/core/model"
)

const minLocations = 3

// Repairer forces a generated case to satisfy the structural invariants the
// generation service cannot be trusted with. It is deterministic for a given
// random source and idempotent: repairing a valid case changes nothing.
type Repairer struct {
	names     []string
	locations []string
	rng       *rand.Rand
	logger    *slog.Logger
}

type Option func(*Repairer)

// WithRand pins the source used to pick a killer when none is flagged.
func WithRand(r *rand.Rand) Option {
	return func(rp *Repairer) { rp.rng = r }
}

func WithNamePool(names []string) Option {
	return func(rp *Repairer) { rp.names = names }
}

func WithLocationPool(locations []string) Option {
	return func(rp *Repairer) { rp.locations = locations }
}

func WithLogger(logger *slog.Logger) Option {
	return func(rp *Repairer) { rp.logger = logger }
}

func NewRepairer(opts ...Option) *Repairer {
	rp := &Repairer{
		names:     DefaultNamePool,
		locations: DefaultLocationPool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rp)
	}
	if rp.rng == nil {
		seed := uint64(time.Now().UnixNano())
		rp.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	rp.logger = rp.logger.With("component", "repairer")
	return rp
}

// Repair mutates c in place until every case invariant holds.
func (rp *Repairer) Repair(c *model.Case) *Report {
	report := &Report{}

	rp.collapseLocations(c, report)
	rp.fillLocations(c, report)
	rp.dedupeNames(c, report)
	rp.ensureKiller(c, report)
	rp.coerceReferences(c, report)

	if !report.Empty() {
		rp.logger.Warn("case repaired", "report", report)
	}
	return report
}

func (rp *Repairer) collapseLocations(c *model.Case, report *Report) {
	seen := make(map[string]bool, len(c.Locations))
	out := c.Locations[:0]
	for _, loc := range c.Locations {
		if loc == "" || seen[loc] {
			report.LocationsCollapsed++
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	c.Locations = out
}

func (rp *Repairer) fillLocations(c *model.Case, report *Report) {
	for _, loc := range rp.locations {
		if len(c.Locations) >= minLocations {
			return
		}
		if c.HasLocation(loc) {
			continue
		}
		c.Locations = append(c.Locations, loc)
		report.LocationsAdded = append(report.LocationsAdded, loc)
	}
	for n := 1; len(c.Locations) < minLocations; n++ {
		loc := fmt.Sprintf("Location %d", n)
		if c.HasLocation(loc) {
			continue
		}
		c.Locations = append(c.Locations, loc)
		report.LocationsAdded = append(report.LocationsAdded, loc)
	}
}

// dedupeNames walks suspects in order with a seen set seeded by the victim.
// Pool names already held by any suspect are never handed out, so a rename
// cannot create a new collision further down the list.
func (rp *Repairer) dedupeNames(c *model.Case, report *Report) {
	taken := make(map[string]bool, len(c.Suspects)+1)
	taken[c.Victim.Name] = true
	for _, s := range c.Suspects {
		taken[s.Name] = true
	}

	if c.Victim.Name == "" {
		name := rp.nextName(taken, 0)
		report.Renames = append(report.Renames, Rename{Index: -1, From: "", To: name})
		c.Victim.Name = name
	}

	seen := map[string]bool{c.Victim.Name: true}
	for i := range c.Suspects {
		name := c.Suspects[i].Name
		if name == "" || seen[name] {
			newName := rp.nextName(taken, i+1)
			report.Renames = append(report.Renames, Rename{Index: i, From: name, To: newName})
			c.Suspects[i].Name = newName
			name = newName
		}
		seen[name] = true
	}

	rp.retargetRenamed(c, report.Renames)
}

func (rp *Repairer) nextName(taken map[string]bool, ordinal int) string {
	for _, n := range rp.names {
		if !taken[n] {
			taken[n] = true
			return n
		}
	}
	for k := ordinal; ; k++ {
		n := fmt.Sprintf("Suspect %d", k)
		if !taken[n] {
			taken[n] = true
			return n
		}
	}
}

// retargetRenamed rewrites references whose name no longer belongs to anyone
// after renaming. A collided name still names its first holder, so only
// vacated names (the empty name) are ever rewritten.
func (rp *Repairer) retargetRenamed(c *model.Case, renames []Rename) {
	for _, rn := range renames {
		if c.HasPerson(rn.From) {
			continue
		}
		for i := range c.Alibis {
			if c.Alibis[i].Person == rn.From {
				c.Alibis[i].Person = rn.To
			}
		}
		for i := range c.Relationships {
			if c.Relationships[i].From == rn.From {
				c.Relationships[i].From = rn.To
			}
			if c.Relationships[i].To == rn.From {
				c.Relationships[i].To = rn.To
			}
		}
	}
}

func (rp *Repairer) ensureKiller(c *model.Case, report *Report) {
	killerIdx := -1
	for i := range c.Suspects {
		if !c.Suspects[i].IsKiller {
			continue
		}
		if killerIdx == -1 {
			killerIdx = i
			continue
		}
		c.Suspects[i].IsKiller = false
		report.KillerFlagsCleared = append(report.KillerFlagsCleared, c.Suspects[i].Name)
	}

	if killerIdx == -1 {
		if len(c.Suspects) == 0 {
			taken := map[string]bool{c.Victim.Name: true}
			name := rp.nextName(taken, 1)
			c.Suspects = append(c.Suspects, model.Suspect{Name: name, Trait: "Unknown", Motive: "Unknown"})
			report.SuspectsAdded = append(report.SuspectsAdded, name)
		}
		killerIdx = rp.rng.IntN(len(c.Suspects))
		c.Suspects[killerIdx].IsKiller = true
		report.KillerAssigned = c.Suspects[killerIdx].Name
	}

	if c.Killer.Name != c.Suspects[killerIdx].Name {
		c.Killer.Name = c.Suspects[killerIdx].Name
		report.KillerPointerRewrites++
	}
}

func (rp *Repairer) coerceReferences(c *model.Case, report *Report) {
	first := c.Locations[0]

	if !c.HasLocation(c.Victim.KilledWhere) {
		report.Coerced = append(report.Coerced, Coercion{Kind: "crime_scene", Ref: c.Victim.Name, From: c.Victim.KilledWhere, To: first})
		c.Victim.KilledWhere = first
	}

	for i := range c.Clues {
		if !c.HasLocation(c.Clues[i].Location) {
			report.Coerced = append(report.Coerced, Coercion{Kind: "clue", Ref: c.Clues[i].Name, From: c.Clues[i].Location, To: first})
			c.Clues[i].Location = first
		}
	}

	alibis := c.Alibis[:0]
	for _, a := range c.Alibis {
		if !c.HasPerson(a.Person) {
			report.DroppedAlibis = append(report.DroppedAlibis, a)
			continue
		}
		if !c.HasLocation(a.Location) {
			report.Coerced = append(report.Coerced, Coercion{Kind: "alibi", Ref: a.Person, From: a.Location, To: first})
			a.Location = first
		}
		alibis = append(alibis, a)
	}
	c.Alibis = alibis

	rels := c.Relationships[:0]
	for _, r := range c.Relationships {
		if !c.HasPerson(r.From) || !c.HasPerson(r.To) {
			report.DroppedRelationships = append(report.DroppedRelationships, r)
			continue
		}
		if !model.ValidRelationType(r.Type) {
			normalized := model.NormalizeRelationType(r.Type)
			if !model.ValidRelationType(normalized) {
				normalized = FallbackRelationType
			}
			report.Coerced = append(report.Coerced, Coercion{Kind: "relationship_type", Ref: r.From + "->" + r.To, From: r.Type, To: normalized})
			r.Type = normalized
		}
		rels = append(rels, r)
	}
	c.Relationships = rels
}
