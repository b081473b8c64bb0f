package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *request.CreateProductRequest) (*response.ProductResponse, error)
	GetProducts(ctx context.Context) ([]response.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	GetProductsByCategory(ctx context.Context, category string) ([]response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetStock(ctx context.Context, id uuid.UUID, req *request.SetStockRequest) (*response.ProductResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, increase bool, req *request.AdjustStockRequest) (*response.ProductResponse, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Create product
	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Category:    entity.ProductCategory(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetProducts(ctx context.Context) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]response.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, response.ProductToResponse(p))
	}
	return items, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetProductsByCategory(ctx context.Context, category string) ([]response.ProductResponse, error) {
	if !entity.ValidProductCategory(category) {
		return nil, fmt.Errorf("invalid product category %s", category)
	}

	products, err := s.repo.Product.FindByCategory(ctx, entity.ProductCategory(category))
	if err != nil {
		s.log.Error("Failed to list products by category", zap.Error(err), zap.String("category", category))
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]response.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, response.ProductToResponse(p))
	}
	return items, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load the current product
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Apply partial updates
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = entity.ProductCategory(*req.Category)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("update product: %w", err)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

// DeleteProduct deactivates a product. The row stays so historical
// orders keep their reference.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadProduct(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", id.String()))
		return fmt.Errorf("delete product: %w", err)
	}

	s.log.Info("Product deactivated", zap.String("product_id", id.String()))
	return nil
}

func (s *productService) SetStock(ctx context.Context, id uuid.UUID, req *request.SetStockRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set stock validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if _, err := s.loadProduct(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.Product.SetStock(ctx, id, req.Stock); err != nil {
		s.log.Error("Failed to set stock", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("set stock: %w", err)
	}

	return s.GetProduct(ctx, id)
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, increase bool, req *request.AdjustStockRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Adjust stock validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if _, err := s.loadProduct(ctx, id); err != nil {
		return nil, err
	}

	var err error
	if increase {
		err = s.repo.Product.IncrementStock(ctx, id, req.Quantity)
	} else {
		err = s.repo.Product.DecrementStock(ctx, id, req.Quantity)
	}
	if errors.Is(err, repository.ErrInsufficientStock) {
		return nil, fmt.Errorf("insufficient stock for product %s", id.String())
	}
	if err != nil {
		s.log.Error("Failed to adjust stock", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	return s.GetProduct(ctx, id)
}

func (s *productService) loadProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s not found", id.String())
	}
	return product, nil
}
