package model

// AlibiRecord is stored as (Person)-[:SEEN_AT {time}]->(Location).
// Time is a free-text token compared by equality only.
type AlibiRecord struct {
	Person   string `json:"person"`
	Location string `json:"location"`
	Time     string `json:"time"`
}

// SocialRelationship is a directed, typed edge between two people.
type SocialRelationship struct {
	From   string `json:"person1"`
	To     string `json:"person2"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// Edge is one (source)-[type]->(target) triple read back from the graph.
type Edge struct {
	Source      string `json:"source"`
	SourceLabel string `json:"source_label"`
	Type        string `json:"type"`
	Target      string `json:"target"`
	TargetLabel string `json:"target_label"`
}
