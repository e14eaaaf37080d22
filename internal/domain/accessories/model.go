package accessories

import "time"

// AnimalType restringe para qué animal sirve el accesorio.
// "All" aplica a cualquiera y entra en todos los filtros por tipo.
type AnimalType string

const (
	AnimalDog      AnimalType = "Dog"
	AnimalCat      AnimalType = "Cat"
	AnimalBeaver   AnimalType = "Beaver"
	AnimalCapybara AnimalType = "Capybara"
	AnimalLion     AnimalType = "Lion"
	AnimalTiger    AnimalType = "Tiger"
	AnimalOtter    AnimalType = "Otter"
	AnimalAll      AnimalType = "All"
)

func ParseAnimalType(s string) (AnimalType, bool) {
	switch AnimalType(s) {
	case AnimalDog, AnimalCat, AnimalBeaver, AnimalCapybara, AnimalLion, AnimalTiger, AnimalOtter, AnimalAll:
		return AnimalType(s), true
	}
	return "", false
}

// Accessory es un producto del catálogo de accesorios, cargado por admin.
type Accessory struct {
	ID string

	Name        string
	Description string
	Cost        float64
	Image       string

	AnimalType AnimalType
	UseCase    string

	Stock       int
	IsAvailable bool

	AddedByID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
