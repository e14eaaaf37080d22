package pets

import "time"

// Pet es una publicación del catálogo, propiedad de un seller (o admin).
// La disponibilidad se deriva del stock: no hay flag aparte.
type Pet struct {
	ID string

	Name  string
	Type  string // especie: dog, cat, ...
	Breed string
	Age   int

	Price float64
	Stock int

	Description string
	Image       string

	SellerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available: queda stock por vender.
func (p Pet) Available() bool {
	return p.Stock > 0
}
