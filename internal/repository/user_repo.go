package repository

import (
	"go-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll() ([]model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	SetActive(userID uuid.UUID, active bool) error
	DeleteWithHistory(id uuid.UUID) error
	Count() (int64, error)
	CountByRole(role model.Role) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) SetActive(userID uuid.UUID, active bool) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("is_active", active).Error
}

// DeleteWithHistory nulls every reference to the user in products and
// transactions before removing the row, so historical records survive.
func (r *userRepo) DeleteWithHistory(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("added_by_id = ?", id).
			Update("added_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Product{}).Where("approved_by_id = ?", id).
			Update("approved_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Transaction{}).Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", id).Error
	})
}

func (r *userRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepo) CountByRole(role model.Role) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
