package service

import (
	"errors"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	hub         *ws.Hub
	log         *zap.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, hub *ws.Hub, log *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		hub:         hub,
		log:         log,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.hub.Publish(ws.Event{
		Type:   ws.TypeCatalogUpdate,
		Action: "product_created",
		Payload: map[string]interface{}{
			"id":    req.ID,
			"name":  req.Name,
			"price": req.Price,
			"stock": req.Stock,
		},
		Message: userName + " created product '" + req.Name + "'",
	})
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Category = req.Category
	existing.Stock = req.Stock
	existing.ImageURL = req.ImageURL

	if err := validateStruct(existing); err != nil {
		return nil, err
	}

	existing.UpdatedBy = userID
	existing.UpdatedByUserID = &userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:   ws.TypeCatalogUpdate,
		Action: "product_updated",
		Payload: map[string]interface{}{
			"id":    existing.ID,
			"name":  existing.Name,
			"price": existing.Price,
			"stock": existing.Stock,
		},
		Message: userName + " updated product '" + existing.Name + "'",
	})
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, userID string) error {
	if err := s.productRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.log.Info("product deleted",
		zap.String("product_id", id.String()),
		zap.String("deleted_by", userID))

	s.hub.Publish(ws.Event{
		Type:    ws.TypeCatalogUpdate,
		Action:  "product_deleted",
		Payload: map[string]interface{}{"id": id},
	})
	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}
