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
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateSKU      = errors.New("SKU already exists")
	ErrForbidden         = errors.New("not allowed to modify this product")
	ErrNotApproved       = errors.New("stock can only change on approved products")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
)

type InventoryService interface {
	CreateProduct(req *CreateProductRequest, owner *model.User) (*model.Product, error)
	ListProducts(viewer *model.User, filter repository.ProductFilter) ([]model.Product, error)
	Categories() ([]string, error)
	EditProductInfo(id uuid.UUID, req *EditProductRequest, caller *model.User) (*model.Product, error)
	AdjustStock(id uuid.UUID, req *StockAdjustment, caller *model.User) (*model.Product, error)
	DeleteProduct(id uuid.UUID, caller *model.User) error
	GetDetail(id uuid.UUID) (*ProductDetail, error)
}

type CreateProductRequest struct {
	Name            string   `json:"name" form:"name" validate:"required"`
	Category        string   `json:"category" form:"category" validate:"required"`
	SKU             string   `json:"sku" form:"sku"`
	Stock           int      `json:"stock" form:"stock" validate:"gte=0"`
	MinStock        int      `json:"min_stock" form:"min_stock" validate:"gte=0"`
	Price           *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	Supplier        string   `json:"supplier" form:"supplier"`
	SupplierCountry string   `json:"supplier_country" form:"supplier_country"`
	Manufacturer    string   `json:"manufacturer" form:"manufacturer"`
	Distributor     string   `json:"distributor" form:"distributor"`
	Location        string   `json:"location" form:"location"`
	Description     string   `json:"description" form:"description"`
	ImageURL        string   `json:"image_url" form:"image_url"`
}

// EditProductRequest covers descriptive metadata only. Stock, SKU and
// status are never touched through this path.
type EditProductRequest struct {
	Name        string   `json:"name" form:"name" validate:"required"`
	Category    string   `json:"category" form:"category" validate:"required"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	ImageURL    string   `json:"image_url" form:"image_url"`
	Description string   `json:"description" form:"description"`
	Supplier    string   `json:"supplier" form:"supplier"`
	Location    string   `json:"location" form:"location"`
}

type StockAdjustment struct {
	Quantity int                   `json:"stock_change" form:"stock_change" validate:"required,gt=0"`
	Type     model.TransactionType `json:"type" form:"type" validate:"required,oneof=in out"`
	Notes    string                `json:"notes" form:"notes"`
}

// ProductDetail carries a product with its most recent ledger entries.
// TotalTransactions is the full ledger size, since Transactions is capped.
type ProductDetail struct {
	Product           *model.Product      `json:"product"`
	Transactions      []model.Transaction `json:"transactions"`
	TotalTransactions int64               `json:"total_transactions"`
}

// detailHistoryLimit caps the ledger entries returned with a product detail.
const detailHistoryLimit = 20

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
	}
}

func (s *inventoryService) CreateProduct(req *CreateProductRequest, owner *model.User) (*model.Product, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. SKU is optional but unique when present
	var sku *string
	if req.SKU != "" {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing != nil {
			return nil, ErrDuplicateSKU
		}
		sku = &req.SKU
	}

	ownerID := owner.ID
	product := &model.Product{
		Name:            req.Name,
		Category:        req.Category,
		SKU:             sku,
		Stock:           req.Stock,
		MinStock:        req.MinStock,
		Price:           req.Price,
		Supplier:        req.Supplier,
		SupplierCountry: req.SupplierCountry,
		Manufacturer:    req.Manufacturer,
		Distributor:     req.Distributor,
		Location:        req.Location,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Status:          model.StatusPending,
		AddedByID:       &ownerID,
	}

	// 3. Product row and its opening ledger entry land together or not at all
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSKU
			}
			return err
		}

		opening := &model.Transaction{
			ProductID: product.ID,
			Type:      model.TxIn,
			Quantity:  req.Stock,
			UserID:    &ownerID,
			Notes:     fmt.Sprintf("New product added: %s", req.Name),
		}
		return tx.Create(opening).Error
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *inventoryService) ListProducts(viewer *model.User, filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindVisible(viewer, filter)
}

func (s *inventoryService) Categories() ([]string, error) {
	return s.productRepo.DistinctCategories()
}

func (s *inventoryService) EditProductInfo(id uuid.UUID, req *EditProductRequest, caller *model.User) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if !caller.IsAdmin() && !product.OwnedBy(caller.ID) {
		return nil, ErrForbidden
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.Description = req.Description
	product.Supplier = req.Supplier
	product.Location = req.Location

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	return product, nil
}

// AdjustStock applies a stock movement and appends the matching ledger
// entry in a single database transaction.
func (s *inventoryService) AdjustStock(id uuid.UUID, req *StockAdjustment, caller *model.User) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		if !caller.IsAdmin() && !product.OwnedBy(caller.ID) {
			return ErrForbidden
		}

		// Stock moves only on approved products
		if product.Status != model.StatusApproved {
			return ErrNotApproved
		}

		newStock := product.Stock
		switch req.Type {
		case model.TxIn:
			newStock += req.Quantity
		case model.TxOut:
			if req.Quantity > product.Stock {
				return ErrInsufficientStock
			}
			newStock -= req.Quantity
		}

		if err := s.productRepo.UpdateStock(tx, product.ID, newStock); err != nil {
			return err
		}

		callerID := caller.ID
		entry := &model.Transaction{
			ProductID: product.ID,
			Type:      req.Type,
			Quantity:  req.Quantity,
			UserID:    &callerID,
			Notes:     req.Notes,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		product.Stock = newStock
		updated = &product
		return nil
	})

	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID, caller *model.User) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	// Staff may only remove their own products while still pending
	if !caller.IsAdmin() {
		if !product.OwnedBy(caller.ID) || product.Status != model.StatusPending {
			return ErrForbidden
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Transaction{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

func (s *inventoryService) GetDetail(id uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	transactions, err := s.transactionRepo.FindByProduct(id, detailHistoryLimit)
	if err != nil {
		return nil, err
	}

	total, err := s.transactionRepo.CountByProduct(id)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:           product,
		Transactions:      transactions,
		TotalTransactions: total,
	}, nil
}
