package service

import (
	"errors"
	"fmt"
	"time"

	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"
	"go-warehouse/pkg/session"
	"go-warehouse/pkg/validator"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials deliberately covers unknown email, wrong
	// password and inactive accounts so the response leaks nothing.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService interface {
	Login(email, password string, remember bool) (*LoginResult, error)
	UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*model.User, error)
}

type LoginResult struct {
	Token string
	TTL   time.Duration
	User  *model.User
}

type UpdateProfileRequest struct {
	FullName        string `json:"full_name" form:"full_name" validate:"required"`
	Phone           string `json:"phone" form:"phone"`
	Address         string `json:"address" form:"address"`
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"omitempty,min=6"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string, remember bool) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	ttl := session.TTL(remember)
	token, err := session.GenerateToken(user.ID, user.Role, ttl)
	if err != nil {
		return nil, errors.New("failed to issue session token")
	}

	return &LoginResult{Token: token, TTL: ttl, User: user}, nil
}

func (s *authService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	user.Address = req.Address

	// Password change is opt-in and gated on the current password.
	if req.NewPassword != "" {
		if !user.CheckPassword(req.CurrentPassword) {
			return nil, ErrInvalidCredentials
		}
		if err := user.SetPassword(req.NewPassword); err != nil {
			return nil, errors.New("failed to hash new password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
