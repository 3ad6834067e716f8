package repair

import (
	"errors"
	"fmt"

	"github.com/agenthands/casefile/internal/core/model"
)

var ErrInvalidCase = errors.New("invalid case")

// Validate reports every invariant violation in c, or nil when the case may
// be persisted.
func Validate(c *model.Case) error {
	var errs []error

	seen := map[string]bool{}
	for _, p := range c.People() {
		switch {
		case p.Name == "":
			errs = append(errs, fmt.Errorf("person with empty name (%s)", p.Role))
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("duplicate person name %q", p.Name))
		}
		seen[p.Name] = true
	}

	killers := 0
	for _, s := range c.Suspects {
		if s.IsKiller {
			killers++
			if s.Name != c.Killer.Name {
				errs = append(errs, fmt.Errorf("killer pointer %q does not match flagged suspect %q", c.Killer.Name, s.Name))
			}
		}
	}
	if killers != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one killer, found %d", killers))
	}

	distinct := map[string]bool{}
	for _, l := range c.Locations {
		distinct[l] = true
	}
	if len(distinct) < minLocations {
		errs = append(errs, fmt.Errorf("expected at least %d locations, found %d", minLocations, len(distinct)))
	}

	for _, it := range c.Clues {
		if !c.HasLocation(it.Location) {
			errs = append(errs, fmt.Errorf("clue %q placed in unknown location %q", it.Name, it.Location))
		}
	}
	for _, a := range c.Alibis {
		if !c.HasPerson(a.Person) {
			errs = append(errs, fmt.Errorf("alibi for unknown person %q", a.Person))
		}
		if !c.HasLocation(a.Location) {
			errs = append(errs, fmt.Errorf("alibi for %q at unknown location %q", a.Person, a.Location))
		}
	}
	for _, r := range c.Relationships {
		if !c.HasPerson(r.From) || !c.HasPerson(r.To) {
			errs = append(errs, fmt.Errorf("relationship %s between unknown people %q -> %q", r.Type, r.From, r.To))
		}
		if !model.ValidRelationType(r.Type) {
			errs = append(errs, fmt.Errorf("relationship type %q is not a valid label", r.Type))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCase, errors.Join(errs...))
}
