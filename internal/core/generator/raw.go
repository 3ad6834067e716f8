package generator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/agenthands/casefile/internal/core/model"
)

// Raw shapes mirror what the generation service tends to send back: alias
// keys, missing fields and stringly-typed booleans. They are converted into
// the fixed model types before anything else sees them.

// flexBool accepts true/false, "true"/"yes"/"1" and numbers.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = false
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "1":
			*b = true
		default:
			*b = false
		}
	case bytes.Equal(data, []byte("true")):
		*b = true
	case bytes.Equal(data, []byte("false")):
		*b = false
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*b = f != 0
	}
	return nil
}

// flexName accepts either "Library" or {"name": "Library"}.
type flexName string

func (n *flexName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = flexName(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*n = flexName(obj.Name)
	return nil
}

type rawVictim struct {
	Name        string `json:"name"`
	Background  string `json:"background"`
	KilledWhen  string `json:"killed_when"`
	KilledWhere string `json:"killed_where"`
}

type rawSuspect struct {
	Name     string   `json:"name"`
	Relation string   `json:"relation"`
	Role     string   `json:"role"`
	Trait    string   `json:"trait"`
	Motive   string   `json:"motive"`
	IsKiller flexBool `json:"is_killer"`
}

type rawKiller struct {
	Name       string `json:"name"`
	TrueMotive string `json:"true_motive"`
	Motive     string `json:"motive"`
}

type rawCase struct {
	Title        string       `json:"title"`
	CrimeSummary string       `json:"crime_summary"`
	Summary      string       `json:"summary"`
	Victim       rawVictim    `json:"victim"`
	Suspects     []rawSuspect `json:"suspects"`
	Killer       rawKiller    `json:"killer"`
	Locations    []flexName   `json:"locations"`
}

type rawClue struct {
	ItemName       string   `json:"item_name"`
	Name           string   `json:"name"`
	Item           string   `json:"item"`
	Location       string   `json:"location"`
	LocationName   string   `json:"location_name"`
	Description    string   `json:"description"`
	Desc           string   `json:"desc"`
	PointsToKiller flexBool `json:"points_to_killer"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func (r rawCase) toModel() *model.Case {
	c := &model.Case{
		Title:        firstNonEmpty(r.Title, "Untitled Mystery"),
		CrimeSummary: firstNonEmpty(r.CrimeSummary, r.Summary),
		Victim: model.Victim{
			Name:        strings.TrimSpace(r.Victim.Name),
			Background:  strings.TrimSpace(r.Victim.Background),
			KilledWhen:  firstNonEmpty(r.Victim.KilledWhen, "Unknown time"),
			KilledWhere: strings.TrimSpace(r.Victim.KilledWhere),
		},
		Killer: model.KillerRef{
			Name:       strings.TrimSpace(r.Killer.Name),
			TrueMotive: firstNonEmpty(r.Killer.TrueMotive, r.Killer.Motive),
		},
	}
	for _, s := range r.Suspects {
		c.Suspects = append(c.Suspects, model.Suspect{
			Name:     strings.TrimSpace(s.Name),
			Relation: firstNonEmpty(s.Relation, s.Role),
			Trait:    strings.TrimSpace(s.Trait),
			Motive:   strings.TrimSpace(s.Motive),
			IsKiller: bool(s.IsKiller),
		})
	}
	for _, l := range r.Locations {
		c.Locations = append(c.Locations, strings.TrimSpace(string(l)))
	}
	return c
}

func (r rawClue) toModel(defaultLocation string) model.Item {
	return model.Item{
		Name:           firstNonEmpty(r.ItemName, r.Name, r.Item, "Unknown Evidence"),
		Location:       firstNonEmpty(r.Location, r.LocationName, defaultLocation),
		Description:    firstNonEmpty(r.Description, r.Desc, "No details"),
		PointsToKiller: bool(r.PointsToKiller),
	}
}
