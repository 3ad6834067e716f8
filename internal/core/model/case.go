package model

import "slices"

// Case is the aggregate root of one mystery.
type Case struct {
	Title         string               `json:"title"`
	CrimeSummary  string               `json:"crime_summary"`
	Victim        Victim               `json:"victim"`
	Suspects      []Suspect            `json:"suspects"`
	Killer        KillerRef            `json:"killer"`
	Locations     []string             `json:"locations"`
	Clues         []Item               `json:"clues"`
	Alibis        []AlibiRecord        `json:"alibis"`
	Relationships []SocialRelationship `json:"relationships"`

	// Degraded is set when any part of the case came from a fallback
	// instead of the generation service.
	Degraded bool `json:"degraded,omitempty"`
}

// People lists the victim followed by the suspects, in case order.
func (c *Case) People() []Person {
	people := make([]Person, 0, len(c.Suspects)+1)
	people = append(people, Person{Name: c.Victim.Name, Role: RoleVictim, Trait: c.Victim.Background})
	for _, s := range c.Suspects {
		people = append(people, Person{Name: s.Name, Role: s.Role(), Trait: s.Trait})
	}
	return people
}

// KillerSuspect returns the first suspect flagged as the killer.
func (c *Case) KillerSuspect() (Suspect, bool) {
	for _, s := range c.Suspects {
		if s.IsKiller {
			return s, true
		}
	}
	return Suspect{}, false
}

func (c *Case) HasPerson(name string) bool {
	if c.Victim.Name == name {
		return true
	}
	for _, s := range c.Suspects {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (c *Case) HasLocation(name string) bool {
	return slices.Contains(c.Locations, name)
}

// Clone returns a deep copy so callers can compare before/after repair.
func (c *Case) Clone() *Case {
	out := *c
	out.Suspects = slices.Clone(c.Suspects)
	out.Locations = slices.Clone(c.Locations)
	out.Clues = slices.Clone(c.Clues)
	out.Alibis = slices.Clone(c.Alibis)
	out.Relationships = slices.Clone(c.Relationships)
	return &out
}
