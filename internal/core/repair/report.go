package repair

import (
	"fmt"
	"log/slog"

	"github.com/agenthands/casefile/internal/core/model"
)

type Rename struct {
	Index int    `json:"index"` // suspect index, -1 for the victim
	From  string `json:"from"`
	To    string `json:"to"`
}

// Coercion records a reference that was pointed at a different entity.
type Coercion struct {
	Kind string `json:"kind"` // "clue", "alibi", "crime_scene", "relationship_type"
	Ref  string `json:"ref"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Report describes every change a repair pass made. A pass over a valid case
// produces an empty report.
type Report struct {
	Renames               []Rename                   `json:"renames,omitempty"`
	KillerAssigned        string                     `json:"killer_assigned,omitempty"`
	KillerFlagsCleared    []string                   `json:"killer_flags_cleared,omitempty"`
	SuspectsAdded         []string                   `json:"suspects_added,omitempty"`
	LocationsAdded        []string                   `json:"locations_added,omitempty"`
	LocationsCollapsed    int                        `json:"locations_collapsed,omitempty"`
	Coerced               []Coercion                 `json:"coerced,omitempty"`
	DroppedAlibis         []model.AlibiRecord        `json:"dropped_alibis,omitempty"`
	DroppedRelationships  []model.SocialRelationship `json:"dropped_relationships,omitempty"`
	KillerPointerRewrites int                        `json:"killer_pointer_rewrites,omitempty"`
}

func (r *Report) Empty() bool {
	return len(r.Renames) == 0 &&
		r.KillerAssigned == "" &&
		len(r.KillerFlagsCleared) == 0 &&
		len(r.SuspectsAdded) == 0 &&
		len(r.LocationsAdded) == 0 &&
		r.LocationsCollapsed == 0 &&
		len(r.Coerced) == 0 &&
		len(r.DroppedAlibis) == 0 &&
		len(r.DroppedRelationships) == 0 &&
		r.KillerPointerRewrites == 0
}

// Merge appends the changes recorded in other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Renames = append(r.Renames, other.Renames...)
	if other.KillerAssigned != "" {
		r.KillerAssigned = other.KillerAssigned
	}
	r.KillerFlagsCleared = append(r.KillerFlagsCleared, other.KillerFlagsCleared...)
	r.SuspectsAdded = append(r.SuspectsAdded, other.SuspectsAdded...)
	r.LocationsAdded = append(r.LocationsAdded, other.LocationsAdded...)
	r.LocationsCollapsed += other.LocationsCollapsed
	r.Coerced = append(r.Coerced, other.Coerced...)
	r.DroppedAlibis = append(r.DroppedAlibis, other.DroppedAlibis...)
	r.DroppedRelationships = append(r.DroppedRelationships, other.DroppedRelationships...)
	r.KillerPointerRewrites += other.KillerPointerRewrites
}

// LogValue keeps repair diagnostics compact in structured logs.
func (r *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("renames", len(r.Renames)),
		slog.String("killer_assigned", r.KillerAssigned),
		slog.Int("locations_added", len(r.LocationsAdded)),
		slog.Int("coerced", len(r.Coerced)),
		slog.Int("dropped", len(r.DroppedAlibis)+len(r.DroppedRelationships)),
	)
}

func (r Rename) String() string {
	return fmt.Sprintf("%q -> %q", r.From, r.To)
}
