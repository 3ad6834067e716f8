package driver

import "fmt"

// Every node carries case_id; every read and write is scoped by it.

var IndexQueries = []string{
	"CREATE INDEX ON :Person(case_id);",
	"CREATE INDEX ON :Location(case_id);",
	"CREATE INDEX ON :Item(case_id);",

	"CREATE INDEX ON :Person(name);",
	"CREATE INDEX ON :Location(name);",
	"CREATE INDEX ON :Item(name);",
}

const (
	ResetCaseQuery = `
		MATCH (n {case_id: $case_id})
		DETACH DELETE n
	`

	UpsertPersonQuery = `
		MERGE (p:Person {case_id: $case_id, name: $name})
		SET p.role = $role,
			p.trait = $trait
	`

	UpsertLocationQuery = `
		MERGE (l:Location {case_id: $case_id, name: $name})
	`

	UpsertSightingQuery = `
		MATCH (p:Person {case_id: $case_id, name: $person})
		MERGE (l:Location {case_id: $case_id, name: $location})
		MERGE (p)-[:SEEN_AT {time: $time}]->(l)
	`

	UpsertClueQuery = `
		MERGE (i:Item {case_id: $case_id, name: $name, description: $description})
		MERGE (l:Location {case_id: $case_id, name: $location})
		MERGE (i)-[:FOUND_IN]->(l)
	`

	upsertRelationshipTemplate = `
		MATCH (a:Person {case_id: $case_id, name: $from})
		MATCH (b:Person {case_id: $case_id, name: $to})
		MERGE (a)-[r:%s]->(b)
		SET r.detail = $detail
	`

	CluesAtQuery = `
		MATCH (i:Item {case_id: $case_id})-[:FOUND_IN]->(l:Location {case_id: $case_id, name: $location})
		RETURN i.name AS name, i.description AS description, l.name AS location
		ORDER BY id(i)
	`

	WitnessesAtQuery = `
		MATCH (p:Person {case_id: $case_id})-[s:SEEN_AT {time: $time}]->(l:Location {case_id: $case_id, name: $location})
		RETURN p.name AS name, p.role AS role, s.time AS time
		ORDER BY id(p)
	`

	RelationshipsOfQuery = `
		MATCH (a:Person {case_id: $case_id, name: $name})-[r]->(b:Person {case_id: $case_id})
		RETURN type(r) AS type, b.name AS target, r.detail AS detail
		ORDER BY id(r)
	`

	KillerQuery = `
		MATCH (p:Person {case_id: $case_id, role: $role})
		RETURN p.name AS name
		LIMIT 1
	`

	LocationsQuery = `
		MATCH (l:Location {case_id: $case_id})
		RETURN l.name AS name
		ORDER BY id(l)
	`

	PeopleQuery = `
		MATCH (p:Person {case_id: $case_id})
		RETURN p.name AS name, p.role AS role, p.trait AS trait
		ORDER BY id(p)
	`

	EdgesQuery = `
		MATCH (a {case_id: $case_id})-[r]->(b {case_id: $case_id})
		RETURN a.name AS source, labels(a)[0] AS source_label, type(r) AS type,
			b.name AS target, labels(b)[0] AS target_label
		ORDER BY id(r)
	`
)

// UpsertRelationshipQuery splices relType into the relationship pattern.
// Cypher cannot parameterize relationship types, so callers must pass a
// label that already passed model.ValidRelationType.
func UpsertRelationshipQuery(relType string) string {
	return fmt.Sprintf(upsertRelationshipTemplate, relType)
}
