package wizard

import "github.com/Kariqs/agromarket-api/models"

var listingPricing = Step{
	Title:  "pricing",
	Fields: []string{"ListingForm.Price", "ListingForm.Currency", "ListingForm.Location"},
}

var Equipment = Definition{
	Name: "equipment",
	Steps: []Step{
		{Title: "basics", Fields: []string{"ListingForm.Title", "Category", "Condition"}},
		{Title: "details", Fields: []string{"ListingForm.Description", "Brand", "Model", "Year"}},
		listingPricing,
	},
	newForm: func() any { return &models.EquipmentForm{} },
}

var Animal = Definition{
	Name: "animal",
	Steps: []Step{
		{Title: "basics", Fields: []string{"ListingForm.Title", "AnimalType", "Breed"}},
		{Title: "details", Fields: []string{"ListingForm.Description", "AgeMonths", "Quantity", "HealthStatus"}},
		listingPricing,
	},
	newForm: func() any { return &models.AnimalForm{} },
}

var Land = Definition{
	Name: "land",
	Steps: []Step{
		{Title: "basics", Fields: []string{"ListingForm.Title", "LandType"}},
		{Title: "details", Fields: []string{"ListingForm.Description", "AreaSize", "AreaUnit", "WaterSource", "SoilType"}},
		listingPricing,
	},
	newForm: func() any { return &models.LandForm{} },
}

var Nursery = Definition{
	Name: "nursery",
	Steps: []Step{
		{Title: "basics", Fields: []string{"ListingForm.Title", "PlantType", "Variety"}},
		{Title: "details", Fields: []string{"ListingForm.Description", "Stock", "MinOrder"}},
		listingPricing,
	},
	newForm: func() any { return &models.NurseryForm{} },
}

var Expert = Definition{
	Name: "expert",
	Steps: []Step{
		{Title: "personal", Fields: []string{"Name", "Phone", "Location"}},
		{Title: "professional", Fields: []string{"Title", "Specialization", "Bio", "ExperienceYears", "Certifications"}},
		{Title: "availability", Fields: []string{"AvailabilityStatus", "ConsultationFee"}},
	},
	newForm: func() any { return &models.ExpertForm{} },
}

var registry = map[string]Definition{
	Equipment.Name: Equipment,
	Animal.Name:    Animal,
	Land.Name:      Land,
	Nursery.Name:   Nursery,
	Expert.Name:    Expert,
}

func Lookup(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}
