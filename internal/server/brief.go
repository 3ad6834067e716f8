package server

import (
	"time"

	"github.com/agenthands/casefile/internal/core/model"
)

type SuspectBrief struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Trait    string `json:"trait"`
}

// Brief is what the detective is told when a case opens. It never carries
// the killer.
type Brief struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	CrimeSummary string         `json:"crime_summary"`
	Victim       model.Victim   `json:"victim"`
	Suspects     []SuspectBrief `json:"suspects"`
	Locations    []string       `json:"locations"`
	TimeLimit    int            `json:"time_limit"` // seconds
	Degraded     bool           `json:"degraded"`
	GraphActive  bool           `json:"graph_active"`
}

func newBrief(id string, c *model.Case, limit time.Duration, active bool) Brief {
	suspects := make([]SuspectBrief, 0, len(c.Suspects))
	for _, s := range c.Suspects {
		suspects = append(suspects, SuspectBrief{Name: s.Name, Relation: s.Relation, Trait: s.Trait})
	}
	return Brief{
		ID:           id,
		Title:        c.Title,
		CrimeSummary: c.CrimeSummary,
		Victim:       c.Victim,
		Suspects:     suspects,
		Locations:    append([]string{}, c.Locations...),
		TimeLimit:    int(limit / time.Second),
		Degraded:     c.Degraded,
		GraphActive:  active,
	}
}
