package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection is the stock effect of an inventory movement.
type MovementDirection string

const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// InventoryMovement records the stock effect of a posted document. The
// ledger core only writes and deletes these; quantity-on-hand bookkeeping
// belongs to the inventory subsystem.
type InventoryMovement struct {
	MovementID    string            `json:"movementID"` // Primary key (UUID)
	ProductID     string            `json:"productID"`
	Direction     MovementDirection `json:"direction"`
	Quantity      decimal.Decimal   `json:"quantity"`
	Date          time.Time         `json:"date"`
	ReferenceType ReferenceType     `json:"referenceType"`
	ReferenceID   string            `json:"referenceID"`
	AuditFields
}
