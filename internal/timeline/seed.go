package timeline

func ip(v int) *int { return &v }

// Seed returns the starter collection written when the document is first
// created. Ids here are fixed so reseeding a fresh store is reproducible.
func Seed() Collection {
	return Collection{Events: []Event{
		{ID: "seed-01", Year: -3200, Name: "Cuneiform script", Category: CategoryInvention, Region: "Mesopotamia", Description: "Earliest known writing system, pressed into clay tablets."},
		{ID: "seed-02", Year: -2560, Name: "Great Pyramid of Giza", Category: CategoryEvent, Region: "Egypt"},
		{ID: "seed-03", Year: -753, Name: "Founding of Rome", Category: CategoryEvent, Region: "Italia"},
		{ID: "seed-04", Year: -551, Name: "Confucius", Category: CategoryPerson, EndYear: ip(-479), Region: "China"},
		{ID: "seed-05", Year: -27, Name: "Roman Empire", Category: CategoryCivilization, EndYear: ip(476), Region: "Mediterranean"},
		{ID: "seed-06", Year: 1440, Name: "Printing press", Category: CategoryInvention, Region: "Mainz", Description: "Gutenberg's movable-type press."},
		{ID: "seed-07", Year: 1687, Name: "Laws of motion", Category: CategoryDiscovery, Region: "England", Description: "Newton publishes the Principia."},
		{ID: "seed-08", Year: 1969, Name: "Moon landing", Category: CategoryEvent, Region: "Luna"},
	}}
}
