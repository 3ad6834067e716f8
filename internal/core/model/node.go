package model

// Role is the part a Person plays in a case. It is assigned once by the
// repair pass and never changes afterwards.
type Role string

const (
	RoleVictim  Role = "Victim"
	RoleSuspect Role = "Suspect"
	RoleKiller  Role = "Killer"
)

// Person is the graph-facing view of anyone in the case.
type Person struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Trait string `json:"trait"`
}

type Victim struct {
	Name        string `json:"name"`
	Background  string `json:"background"`
	KilledWhen  string `json:"killed_when"`
	KilledWhere string `json:"killed_where"`
}

// Suspect is a generated suspect. Relation is how the suspect relates to the
// victim ("wife", "gardener") and is distinct from the graph Role.
type Suspect struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Trait    string `json:"trait"`
	Motive   string `json:"motive"`
	IsKiller bool   `json:"is_killer"`
}

func (s Suspect) Role() Role {
	if s.IsKiller {
		return RoleKiller
	}
	return RoleSuspect
}

// KillerRef is the denormalized killer pointer kept alongside the suspects.
type KillerRef struct {
	Name       string `json:"name"`
	TrueMotive string `json:"true_motive"`
}

// Item is a physical clue placed in exactly one location.
type Item struct {
	Name           string `json:"item_name"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	PointsToKiller bool   `json:"points_to_killer"`
}
