package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxIn  TransactionType = "in"
	TxOut TransactionType = "out"
)

// Transaction is an append-only stock movement record. Rows are never
// updated; they are only removed as a cascade of product deletion.
type Transaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `json:"product,omitempty" validate:"-"`
	Type      TransactionType `gorm:"type:varchar(5);not null" json:"type" validate:"required,oneof=in out"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Notes     string          `gorm:"type:text" json:"notes"`

	// Nullable so ledger history survives user deletion.
	UserID *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	User   *User      `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
}
