package repository

import (
	"time"

	"go-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(transaction *model.Transaction) error
	FindByProduct(productID uuid.UUID, limit int) ([]model.Transaction, error)
	FindRecent(viewer *model.User, limit int) ([]model.Transaction, error)
	CountSince(viewer *model.User, since time.Time) (int64, error)
	CountByProduct(productID uuid.UUID) (int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(transaction *model.Transaction) error {
	return r.db.Create(transaction).Error
}

func (r *transactionRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// FindRecent returns the latest movements visible to the viewer. Staff only
// see movements on products they added.
func (r *transactionRepo) FindRecent(viewer *model.User, limit int) ([]model.Transaction, error) {
	q := r.db.Preload("Product").Preload("User")
	if !viewer.IsAdmin() {
		q = q.Joins("JOIN products ON products.id = transactions.product_id").
			Where("products.added_by_id = ?", viewer.ID)
	}

	var transactions []model.Transaction
	err := q.Order("transactions.created_at DESC").Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) CountSince(viewer *model.User, since time.Time) (int64, error) {
	q := r.db.Model(&model.Transaction{})
	if !viewer.IsAdmin() {
		q = q.Joins("JOIN products ON products.id = transactions.product_id").
			Where("products.added_by_id = ?", viewer.ID)
	}

	var count int64
	err := q.Where("transactions.created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *transactionRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
