package generator

import (
	"fmt"

	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/core/repair"
)

// FallbackCase is served whenever the concept cannot be generated.
func FallbackCase() *model.Case {
	return mustValid(&model.Case{
		Title:        "Mystery at the Manor",
		CrimeSummary: "Henry Ashworth was found dead in the garden.",
		Victim: model.Victim{
			Name:        "Henry Ashworth",
			Background:  "Wealthy merchant",
			KilledWhen:  "10:00 PM",
			KilledWhere: "Garden",
		},
		Suspects: []model.Suspect{
			{Name: "Eleanor Ashworth", Relation: "Wife", Trait: "Cold-blooded", Motive: "Inheritance"},
			{Name: "Thomas Reed", Relation: "Gardener", Trait: "Jealous", Motive: "Secret love", IsKiller: true},
			{Name: "Charles Whitby", Relation: "Business partner", Trait: "Short-tempered", Motive: "Debt"},
			{Name: "Mary Collins", Relation: "Maid", Trait: "Quiet", Motive: "Unpaid wages"},
		},
		Killer:    model.KillerRef{Name: "Thomas Reed", TrueMotive: "Love and jealousy"},
		Locations: []string{"Garden", "Library", "Kitchen", "Bedroom"},
		Degraded:  true,
	})
}

// FallbackClues places the stock clues in the first three locations.
func FallbackClues(locations []string) []model.Item {
	loc := func(i int, def string) string {
		if i < len(locations) {
			return locations[i]
		}
		return def
	}
	loc1, loc2, loc3 := loc(0, "Garden"), loc(1, "Library"), loc(2, "Kitchen")

	return []model.Item{
		{Name: "Bloody Dagger", Location: loc1, Description: "A kitchen dagger with fingerprints on the hilt", PointsToKiller: true},
		{Name: "Torn Fabric", Location: loc1, Description: "A scrap of blue cloth, perhaps from the gardener's shirt", PointsToKiller: true},
		{Name: "Love Letter", Location: loc2, Description: "An unsigned letter in familiar handwriting"},
		{Name: "Muddy Boots", Location: loc3, Description: "The gardener's boots, caked with fresh soil", PointsToKiller: true},
		{Name: "Poison Bottle", Location: loc2, Description: "An empty arsenic bottle (a red herring)"},
	}
}

func mustValid(c *model.Case) *model.Case {
	if err := repair.Validate(c); err != nil {
		panic(fmt.Sprintf("generator: fallback case is invalid: %v", err))
	}
	return c
}
