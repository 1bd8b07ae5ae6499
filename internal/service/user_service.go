package service

import (
	"errors"
	"fmt"

	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"
	"go-warehouse/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfModification = errors.New("cannot modify your own account")
)

type UserService interface {
	CreateUser(req *CreateUserRequest) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	ToggleStatus(targetID uuid.UUID, actor *model.User) error
	DeleteUser(targetID uuid.UUID, actor *model.User) error
	GetProfileStats() (*ProfileStats, error)
}

// ProfileStats is the small headcount block shown on the profile page.
type ProfileStats struct {
	TotalUsers      int64 `json:"total_users"`
	AdminCount      int64 `json:"admin_count"`
	StaffCount      int64 `json:"staff_count"`
	PendingProducts int64 `json:"pending_products"`
}

type CreateUserRequest struct {
	Email    string     `json:"email" form:"email" validate:"required,email"`
	Password string     `json:"password" form:"password" validate:"required,min=6"`
	FullName string     `json:"full_name" form:"full_name" validate:"required"`
	Role     model.Role `json:"role" form:"role" validate:"required,oneof=admin staff"`
	Phone    string     `json:"phone" form:"phone"`
	Address  string     `json:"address" form:"address"`
}

type userService struct {
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
}

func NewUserService(userRepo repository.UserRepository, reportRepo repository.ReportRepository) UserService {
	return &userService{userRepo: userRepo, reportRepo: reportRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Check if email already exists
	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	// 3. Create user
	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		// Backstop for a concurrent insert between the pre-check and here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) ToggleStatus(targetID uuid.UUID, actor *model.User) error {
	if targetID == actor.ID {
		return ErrSelfModification
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return ErrUserNotFound
	}

	return s.userRepo.SetActive(targetID, !target.IsActive)
}

func (s *userService) DeleteUser(targetID uuid.UUID, actor *model.User) error {
	if targetID == actor.ID {
		return ErrSelfModification
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return ErrUserNotFound
	}

	return s.userRepo.DeleteWithHistory(targetID)
}

func (s *userService) GetProfileStats() (*ProfileStats, error) {
	stats := &ProfileStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.AdminCount, err = s.userRepo.CountByRole(model.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.StaffCount, err = s.userRepo.CountByRole(model.RoleStaff); err != nil {
		return nil, err
	}
	if stats.PendingProducts, err = s.reportRepo.CountByStatus(model.StatusPending); err != nil {
		return nil, err
	}

	return stats, nil
}
