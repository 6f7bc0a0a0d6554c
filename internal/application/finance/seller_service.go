package finance

import (
	"context"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SellerService handles group-scoped seller management
type SellerService struct {
	sellerRepo finance.SellerRepository
	logger     *zap.Logger
}

// NewSellerService creates a new seller service
func NewSellerService(sellerRepo finance.SellerRepository, logger *zap.Logger) *SellerService {
	return &SellerService{
		sellerRepo: sellerRepo,
		logger:     logger,
	}
}

// Create creates a seller in the group
func (s *SellerService) Create(ctx context.Context, groupID uuid.UUID, name, location string) (*SellerDTO, error) {
	seller, err := finance.NewSeller(groupID, name, location)
	if err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, seller); err != nil {
		return nil, err
	}

	s.logger.Info("Seller created",
		zap.String("seller_id", seller.ID.String()),
		zap.String("group_id", groupID.String()))
	return toSellerDTO(seller), nil
}

// Get returns one seller of the group
func (s *SellerService) Get(ctx context.Context, groupID, sellerID uuid.UUID) (*SellerDTO, error) {
	seller, err := s.findInGroup(ctx, groupID, sellerID)
	if err != nil {
		return nil, err
	}
	return toSellerDTO(seller), nil
}

// List returns all sellers of the group
func (s *SellerService) List(ctx context.Context, groupID uuid.UUID) ([]SellerDTO, error) {
	sellers, err := s.sellerRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	dtos := make([]SellerDTO, 0, len(sellers))
	for i := range sellers {
		dtos = append(dtos, *toSellerDTO(&sellers[i]))
	}
	return dtos, nil
}

// Update changes a seller's name and location
func (s *SellerService) Update(ctx context.Context, groupID, sellerID uuid.UUID, name, location string) (*SellerDTO, error) {
	seller, err := s.findInGroup(ctx, groupID, sellerID)
	if err != nil {
		return nil, err
	}
	if err := seller.Update(name, location); err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, seller); err != nil {
		return nil, err
	}
	return toSellerDTO(seller), nil
}

// Delete removes a seller. Receipts referencing it keep their data and
// lose only the reference.
func (s *SellerService) Delete(ctx context.Context, groupID, sellerID uuid.UUID) error {
	seller, err := s.findInGroup(ctx, groupID, sellerID)
	if err != nil {
		return err
	}
	return s.sellerRepo.Delete(ctx, seller.ID)
}

func (s *SellerService) findInGroup(ctx context.Context, groupID, sellerID uuid.UUID) (*finance.Seller, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller.GroupID != groupID {
		return nil, shared.ErrNotFound
	}
	return seller, nil
}
