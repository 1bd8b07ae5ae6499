package model

import "github.com/google/uuid"

// ProductStatus is the approval state of a product. New products start as
// pending and only an admin moves them to approved or rejected.
type ProductStatus string

const (
	StatusPending  ProductStatus = "pending"
	StatusApproved ProductStatus = "approved"
	StatusRejected ProductStatus = "rejected"
)

type Product struct {
	BaseModel
	Name     string   `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string   `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	SKU      *string  `gorm:"type:varchar(50);uniqueIndex" json:"sku,omitempty"`
	Stock    int      `gorm:"default:0" json:"stock" validate:"gte=0"`
	MinStock int      `gorm:"default:5" json:"min_stock" validate:"gte=0"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`

	Supplier        string `gorm:"type:varchar(255)" json:"supplier"`
	SupplierCountry string `gorm:"type:varchar(100)" json:"supplier_country"`
	Manufacturer    string `gorm:"type:varchar(255)" json:"manufacturer"`
	Distributor     string `gorm:"type:varchar(255)" json:"distributor"`
	Location        string `gorm:"type:varchar(100)" json:"location"`
	Description     string `gorm:"type:text" json:"description"`
	ImageURL        string `gorm:"type:varchar(255)" json:"image_url"`

	Status ProductStatus `gorm:"type:varchar(10);default:'pending'" json:"status"`

	// Ownership references stay nullable so product rows outlive the
	// accounts that created or approved them.
	AddedByID    *uuid.UUID `gorm:"type:uuid;index" json:"added_by_id,omitempty"`
	AddedBy      *User      `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`
	ApprovedByID *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedBy   *User      `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`

	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// OwnedBy reports whether the product was added by the given user.
func (p *Product) OwnedBy(userID uuid.UUID) bool {
	return p.AddedByID != nil && *p.AddedByID == userID
}
