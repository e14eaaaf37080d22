package orders

import "time"

// Order registra cualquier transacción del marketplace: compra de mascota,
// compra de accesorio o reserva de servicio (vet/walker/daycare).
// Las reservas llevan además fecha/hora de la cita.
type Order struct {
	ID string

	BuyerID  string
	SellerID string // provider en órdenes de servicio

	Type OrderType

	// Referencia polimórfica: ItemKind dice en qué colección vive ItemID.
	ItemID   string
	ItemKind ItemKind

	// Amount queda congelado al momento de la orden
	// (para servicios: hourlyRate del provider en ese instante).
	Amount float64

	Status Status

	// Solo órdenes de servicio.
	Date *time.Time
	Time string // "HH:MM"

	CreatedAt time.Time
	UpdatedAt time.Time
}
