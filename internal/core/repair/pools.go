package repair

// DefaultNamePool supplies replacement names for colliding suspects.
var DefaultNamePool = []string{
	"Arthur Pemberton", "Beatrice Hale", "Cecil Montague", "Dorothy Finch",
	"Edgar Whitlock", "Florence Ashdown", "Gerald Thorne", "Harriet Vane",
	"Ignatius Crowe", "Josephine Marlow", "Lionel Grey", "Margaret Sutton",
	"Nigel Foxley", "Ophelia Drake", "Percival Lane", "Rosalind Kerr",
	"Sebastian Holt", "Theodora Quill", "Victor Langley", "Winifred Ames",
}

// DefaultLocationPool supplies locations when a case has fewer than three.
var DefaultLocationPool = []string{
	"Library", "Garden", "Dining Room", "Study", "Kitchen", "Bedroom",
	"Conservatory", "Cellar", "Drawing Room", "Balcony", "Guest Room",
	"Courtyard", "Terrace", "Hallway",
}

// FallbackRelationType replaces relationship labels that cannot be stored.
const FallbackRelationType = "KNOWS"
