package repository

import (
	"time"

	"go-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Search   string
	Category string
	MaxStock *int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindVisible(viewer *model.User, filter ProductFilter) ([]model.Product, error)
	FindPending() ([]model.Product, error)
	DistinctCategories() ([]string, error)
	Update(product *model.Product) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error
	SetStatus(id uuid.UUID, status model.ProductStatus, reviewerID uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("AddedBy").Preload("ApprovedBy").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVisible applies the role visibility rule before any filters: staff
// see approved products plus their own submissions, admins see everything.
func (r *productRepo) FindVisible(viewer *model.User, filter ProductFilter) ([]model.Product, error) {
	q := r.db.Preload("AddedBy").Preload("ApprovedBy")

	if !viewer.IsAdmin() {
		q = q.Where("status = ? OR added_by_id = ?", model.StatusApproved, viewer.ID)
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR sku LIKE ? OR description LIKE ? OR supplier LIKE ?",
			like, like, like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MaxStock != nil {
		q = q.Where("stock <= ?", *filter.MaxStock)
	}

	var products []model.Product
	err := q.Order("updated_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindPending() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("AddedBy").
		Where("status = ?", model.StatusPending).
		Order("updated_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) DistinctCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdateStock runs on the supplied *gorm.DB so it can participate in the
// caller's transaction alongside the ledger insert.
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_at": time.Now(),
		}).Error
}

func (r *productRepo) SetStatus(id uuid.UUID, status model.ProductStatus, reviewerID uuid.UUID) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"approved_by_id": reviewerID,
			"updated_at":     time.Now(),
		}).Error
}
