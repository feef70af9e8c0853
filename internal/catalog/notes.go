package catalog

import "github.com/existflow/notejar/internal/model"

// Adding a note:
//   - append it to builtin below; ids must stay unique
//   - put its image under the public directory and reference the file name
//   - HEIC images are not supported, use PNG or JPG
//   - pick a color from model.Colors
var builtin = []model.CatalogEntry{
	{
		ID:        "note-1",
		Title:     "Top Chef",
		Text:      "You are absolutely goated at cooking! Thank you for feeding us so scrumptiously all of the time. Throwback to last Christmas!",
		Author:    "ian",
		ImagePath: "secret-santa-2024.jpg",
		Color:     model.ColorYellow,
	},
}

var defaultCatalog = MustNew(builtin)

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}
