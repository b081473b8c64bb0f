package usecase

import (
	"context"
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

type AddressService interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, req *request.CreateAddressRequest) (*response.AddressResponse, error)
	GetAddresses(ctx context.Context, userID uuid.UUID) ([]response.AddressResponse, error)
	GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*response.AddressResponse, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *request.UpdateAddressRequest) (*response.AddressResponse, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (*response.AddressResponse, error)
}

type addressService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAddressService(repo *repository.Repository, log *zap.Logger) AddressService {
	return &addressService{
		repo: repo,
		log:  log.With(zap.String("service", "address")),
	}
}

func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, req *request.CreateAddressRequest) (*response.AddressResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create address validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. A new default displaces the old one
	if req.IsDefault {
		if err := s.repo.Address.ClearDefault(ctx, userID); err != nil {
			s.log.Error("Failed to clear default address", zap.Error(err), zap.String("user_id", userID.String()))
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	now := time.Now()
	addr := &entity.Address{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         userID,
		Label:          req.Label,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Line1:          req.Line1,
		Line2:          req.Line2,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		IsDefault:      req.IsDefault,
	}

	if err := s.repo.Address.Create(ctx, addr); err != nil {
		s.log.Error("Failed to create address", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create address: %w", err)
	}

	resp := response.AddressToResponse(addr)
	return &resp, nil
}

func (s *addressService) GetAddresses(ctx context.Context, userID uuid.UUID) ([]response.AddressResponse, error) {
	addrs, err := s.repo.Address.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list addresses", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	items := make([]response.AddressResponse, 0, len(addrs))
	for _, a := range addrs {
		items = append(items, response.AddressToResponse(a))
	}
	return items, nil
}

func (s *addressService) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*response.AddressResponse, error) {
	addr, err := s.loadOwnedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	resp := response.AddressToResponse(addr)
	return &resp, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *request.UpdateAddressRequest) (*response.AddressResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update address validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load and check ownership
	addr, err := s.loadOwnedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	// 3. Apply partial updates
	if req.Label != nil {
		addr.Label = *req.Label
	}
	if req.RecipientName != nil {
		addr.RecipientName = *req.RecipientName
	}
	if req.RecipientPhone != nil {
		addr.RecipientPhone = *req.RecipientPhone
	}
	if req.Line1 != nil {
		addr.Line1 = *req.Line1
	}
	if req.Line2 != nil {
		addr.Line2 = req.Line2
	}
	if req.City != nil {
		addr.City = *req.City
	}
	if req.State != nil {
		addr.State = *req.State
	}
	if req.PostalCode != nil {
		addr.PostalCode = *req.PostalCode
	}
	addr.UpdatedAt = time.Now()

	if err := s.repo.Address.Update(ctx, addr); err != nil {
		s.log.Error("Failed to update address", zap.Error(err), zap.String("address_id", addressID.String()))
		return nil, fmt.Errorf("update address: %w", err)
	}

	resp := response.AddressToResponse(addr)
	return &resp, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.loadOwnedAddress(ctx, userID, addressID); err != nil {
		return err
	}

	if err := s.repo.Address.Delete(ctx, addressID); err != nil {
		s.log.Error("Failed to delete address", zap.Error(err), zap.String("address_id", addressID.String()))
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func (s *addressService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (*response.AddressResponse, error) {
	addr, err := s.loadOwnedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Address.SetDefault(ctx, userID, addressID); err != nil {
		s.log.Error("Failed to set default address", zap.Error(err), zap.String("address_id", addressID.String()))
		return nil, fmt.Errorf("set default address: %w", err)
	}

	addr.IsDefault = true
	resp := response.AddressToResponse(addr)
	return &resp, nil
}

// loadOwnedAddress hides other users' addresses behind a not-found.
func (s *addressService) loadOwnedAddress(ctx context.Context, userID, addressID uuid.UUID) (*entity.Address, error) {
	addr, err := s.repo.Address.FindByID(ctx, addressID)
	if err != nil {
		s.log.Error("Failed to load address", zap.Error(err), zap.String("address_id", addressID.String()))
		return nil, fmt.Errorf("load address: %w", err)
	}
	if addr == nil || addr.UserID != userID {
		return nil, fmt.Errorf("address %s not found", addressID.String())
	}
	return addr, nil
}
