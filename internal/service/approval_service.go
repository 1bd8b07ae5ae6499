package service

import (
	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"

	"github.com/google/uuid"
)

// ApprovalService owns the pending -> approved/rejected transition.
// Route-level role checks keep it admin-only; the reviewer is recorded on
// the product either way.
type ApprovalService interface {
	ListPending() ([]model.Product, error)
	Approve(productID uuid.UUID, reviewer *model.User) error
	Reject(productID uuid.UUID, reviewer *model.User) error
}

type approvalService struct {
	productRepo repository.ProductRepository
}

func NewApprovalService(productRepo repository.ProductRepository) ApprovalService {
	return &approvalService{productRepo: productRepo}
}

func (s *approvalService) ListPending() ([]model.Product, error) {
	return s.productRepo.FindPending()
}

func (s *approvalService) Approve(productID uuid.UUID, reviewer *model.User) error {
	return s.transition(productID, model.StatusApproved, reviewer)
}

func (s *approvalService) Reject(productID uuid.UUID, reviewer *model.User) error {
	return s.transition(productID, model.StatusRejected, reviewer)
}

func (s *approvalService) transition(productID uuid.UUID, status model.ProductStatus, reviewer *model.User) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.SetStatus(productID, status, reviewer.ID)
}
