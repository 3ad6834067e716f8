package model

// ClueView is what a location search returns to the player.
type ClueView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type PersonView struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	Time string `json:"time"`
}

type RelationshipView struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Detail string `json:"detail"`
}

// AccusationResult adjudicates the final accusation. Indeterminate is set
// when the ground truth could not be read at all.
type AccusationResult struct {
	Correct           bool   `json:"correct"`
	Indeterminate     bool   `json:"indeterminate,omitempty"`
	Accused           string `json:"accused"`
	ActualKiller      string `json:"actual_killer,omitempty"`
	EvidenceCollected int    `json:"evidence_collected"`
	LocationsVisited  int    `json:"locations_visited"`
	TimeRemaining     int    `json:"time_remaining"` // seconds
	Message           string `json:"message,omitempty"`
}

type GameSummary struct {
	TimeRemaining    int      `json:"time_remaining"` // seconds
	EvidenceCount    int      `json:"evidence_count"`
	VisitedLocations []string `json:"visited_locations"`
	Interviewed      []string `json:"interviewed"`
}
