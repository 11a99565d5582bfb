package models

// Form structs are bound from multipart or JSON bodies and checked step by
// step by the wizard package, so they carry validate tags instead of gin
// binding tags.

type ListingForm struct {
	Title       string  `form:"title" json:"title" validate:"required,min=3,max=200"`
	Description string  `form:"description" json:"description" validate:"required,min=10"`
	Price       float64 `form:"price" json:"price" validate:"required,gt=0"`
	Currency    string  `form:"currency" json:"currency" validate:"omitempty,len=3"`
	Location    string  `form:"location" json:"location" validate:"required"`
}

func (f ListingForm) Base(owner string, images []string) ListingBase {
	currency := f.Currency
	if currency == "" {
		currency = "USD"
	}
	return ListingBase{
		UserID:      owner,
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Currency:    currency,
		Location:    f.Location,
		Images:      images,
		IsAvailable: true,
	}
}

type EquipmentForm struct {
	ListingForm
	Category  string `form:"category" json:"category" validate:"required"`
	Condition string `form:"condition" json:"condition" validate:"required,oneof=new used refurbished"`
	Brand     string `form:"brand" json:"brand"`
	Model     string `form:"model" json:"model"`
	Year      int    `form:"year" json:"year" validate:"omitempty,gte=1950,lte=2100"`
}

func (f EquipmentForm) Build(owner string, images []string) *Equipment {
	return &Equipment{
		ListingBase: f.Base(owner, images),
		Category:    f.Category,
		Condition:   f.Condition,
		Brand:       f.Brand,
		Model:       f.Model,
		Year:        f.Year,
	}
}

type AnimalForm struct {
	ListingForm
	AnimalType   string `form:"animal_type" json:"animal_type" validate:"required"`
	Breed        string `form:"breed" json:"breed"`
	AgeMonths    int    `form:"age_months" json:"age_months" validate:"gte=0"`
	Quantity     int    `form:"quantity" json:"quantity" validate:"required,gte=1"`
	HealthStatus string `form:"health_status" json:"health_status"`
}

func (f AnimalForm) Build(owner string, images []string) *AnimalListing {
	return &AnimalListing{
		ListingBase:  f.Base(owner, images),
		AnimalType:   f.AnimalType,
		Breed:        f.Breed,
		AgeMonths:    f.AgeMonths,
		Quantity:     f.Quantity,
		HealthStatus: f.HealthStatus,
	}
}

type LandForm struct {
	ListingForm
	LandType    string  `form:"land_type" json:"land_type" validate:"required"`
	AreaSize    float64 `form:"area_size" json:"area_size" validate:"required,gt=0"`
	AreaUnit    string  `form:"area_unit" json:"area_unit" validate:"omitempty,oneof=hectare acre m2"`
	WaterSource string  `form:"water_source" json:"water_source"`
	SoilType    string  `form:"soil_type" json:"soil_type"`
}

func (f LandForm) Build(owner string, images []string) *LandListing {
	unit := f.AreaUnit
	if unit == "" {
		unit = "hectare"
	}
	return &LandListing{
		ListingBase: f.Base(owner, images),
		LandType:    f.LandType,
		AreaSize:    f.AreaSize,
		AreaUnit:    unit,
		WaterSource: f.WaterSource,
		SoilType:    f.SoilType,
	}
}

type NurseryForm struct {
	ListingForm
	PlantType string `form:"plant_type" json:"plant_type" validate:"required"`
	Variety   string `form:"variety" json:"variety"`
	Stock     int    `form:"stock" json:"stock" validate:"gte=0"`
	MinOrder  int    `form:"min_order" json:"min_order" validate:"omitempty,gte=1"`
}

func (f NurseryForm) Build(owner string, images []string) *NurseryListing {
	minOrder := f.MinOrder
	if minOrder == 0 {
		minOrder = 1
	}
	return &NurseryListing{
		ListingBase: f.Base(owner, images),
		PlantType:   f.PlantType,
		Variety:     f.Variety,
		Stock:       f.Stock,
		MinOrder:    minOrder,
	}
}

type ExpertForm struct {
	Name               string   `form:"name" json:"name" validate:"required,min=2"`
	Phone              string   `form:"phone" json:"phone" validate:"required"`
	Location           string   `form:"location" json:"location" validate:"required"`
	Title              string   `form:"title" json:"title" validate:"required"`
	Specialization     string   `form:"specialization" json:"specialization" validate:"required"`
	Bio                string   `form:"bio" json:"bio" validate:"required,min=20"`
	ExperienceYears    int      `form:"experience_years" json:"experience_years" validate:"gte=0,lte=80"`
	Certifications     []string `form:"certifications" json:"certifications" validate:"dive,required"`
	AvailabilityStatus string   `form:"availability_status" json:"availability_status" validate:"required,oneof=available busy unavailable"`
	ConsultationFee    float64  `form:"consultation_fee" json:"consultation_fee" validate:"gte=0"`
}

func (f ExpertForm) Build(owner string) *ExpertProfile {
	return &ExpertProfile{
		UserID:             owner,
		Name:               f.Name,
		Title:              f.Title,
		Specialization:     f.Specialization,
		Bio:                f.Bio,
		Certifications:     f.Certifications,
		ExperienceYears:    f.ExperienceYears,
		ConsultationFee:    f.ConsultationFee,
		Location:           f.Location,
		Phone:              f.Phone,
		AvailabilityStatus: f.AvailabilityStatus,
	}
}
