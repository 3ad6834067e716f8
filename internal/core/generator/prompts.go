package generator

// DefaultThemes seed the concept prompt.
var DefaultThemes = []string{
	"murder in an old country manor",
	"poisoning at a dinner party",
	"locked room mystery",
	"inheritance feud turned deadly",
	"blackmail letters and a death",
	"a carefully planned revenge",
	"murder on the night train",
	"death backstage at the theatre",
	"a fatal love triangle",
	"stolen jewels and a murder",
	"murder on a remote island",
	"suspicious death aboard a steamer",
	"murder at the bathhouse",
	"a mysterious death in the market arcade",
}

// DefaultConceptPrompt takes the theme and an inspiration block (possibly
// empty), in that order.
const DefaultConceptPrompt = `You are a writer of Victorian detective fiction.
Your task is to invent a consistent murder mystery for the theme below.

THEME: %s
%s
RULES:
1. Every person must have a distinct, period-appropriate name.
2. Locations must be rooms or places a detective could search.
3. Exactly one suspect is the killer, and the "killer" object must name that suspect.
4. Avoid cliches; use different names every time.

OUTPUT FORMAT (JSON):
{
  "title": "Title of the case",
  "victim": {
    "name": "Victim name",
    "background": "Occupation and circumstances",
    "killed_when": "Time of death",
    "killed_where": "Place of death (one of the locations)"
  },
  "suspects": [
    {"name": "Suspect name", "relation": "Relation to the victim", "trait": "Character trait", "motive": "Motive", "is_killer": false},
    {"name": "Suspect name", "relation": "Relation to the victim", "trait": "Character trait", "motive": "Motive", "is_killer": true},
    {"name": "Suspect name", "relation": "Relation to the victim", "trait": "Character trait", "motive": "Motive", "is_killer": false},
    {"name": "Suspect name", "relation": "Relation to the victim", "trait": "Character trait", "motive": "Motive", "is_killer": false}
  ],
  "killer": {"name": "Name of the suspect flagged as killer", "true_motive": "The real reason"},
  "locations": ["Location 1", "Location 2", "Location 3", "Location 4"],
  "crime_summary": "Short summary of the crime"
}

RETURN ONLY JSON.
JSON:`

// DefaultCluesPrompt takes the victim name, killer name and a
// comma-separated location list, in that order.
const DefaultCluesPrompt = `You are a writer of Victorian detective fiction.

Create 5 physical clues for a murder case.

Victim: %s
Killer: %s
Locations: %s

RULES:
1. Clues must be plausible objects a detective could find.
2. At least 2 clues should point directly at the killer.
3. The others may be misleading.
4. Every clue must be placed in one of the locations above.

OUTPUT FORMAT (JSON array):
[
  {"item_name": "Clue name", "location": "Location name", "description": "Detailed description", "points_to_killer": true},
  {"item_name": "Another clue", "location": "Location name", "description": "Detailed description", "points_to_killer": false}
]

RETURN ONLY THE JSON ARRAY.
`

const inspirationHeader = "\nINSPIRATION (passages from classic detective fiction):\n"
