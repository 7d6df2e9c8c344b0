package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/product_service/internal/logging"
	"github.com/Skotchmaster/product_service/internal/models"
	"github.com/Skotchmaster/product_service/internal/repo"
	"github.com/Skotchmaster/product_service/internal/transport"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSearchDisabled = errors.New("search is not configured")
)

const sideEffectTimeout = 5 * time.Second

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type SearchIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

// ProductService runs one repository call per operation. Events and Index
// are optional; their failures are logged and never fail the request.
type ProductService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Topic  string
	Index  SearchIndex
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return prod, nil
}

func (s *ProductService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *ProductService) CreateProduct(ctx context.Context, fields transport.ProductFields) (*models.Product, error) {
	if err := fields.ValidateLimits(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	prod := fields.NewProduct()
	created, err := s.Repo.CreateProduct(ctx, &prod)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "product_created", *created)
	return created, nil
}

func (s *ProductService) PatchProduct(ctx context.Context, id uint, fields transport.ProductFields) (*models.Product, error) {
	if err := fields.ValidateUpdate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	prod, err := s.Repo.PatchProduct(ctx, id, fields)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	s.afterWrite(ctx, "product_updated", *prod)
	return prod, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if s.Index != nil {
		sctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		defer cancel()
		if err := s.Index.DeleteProduct(sctx, id); err != nil {
			logging.FromContext(ctx).Error("search_index_error", "productID", id, "error", err)
		}
	}
	return nil
}

func (s *ProductService) SearchProducts(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	if s.Index == nil {
		return 0, nil, ErrSearchDisabled
	}
	return s.Index.Search(ctx, query, offset, limit)
}

func (s *ProductService) afterWrite(ctx context.Context, eventType string, prod models.Product) {
	event := map[string]any{
		"type":      eventType,
		"productID": prod.ID,
	}
	if prod.Name != nil {
		event["name"] = *prod.Name
	}
	s.publish(ctx, prod.ID, event)

	if s.Index != nil {
		sctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		defer cancel()
		if err := s.Index.IndexProduct(sctx, prod); err != nil {
			logging.FromContext(ctx).Error("search_index_error", "productID", prod.ID, "error", err)
		}
	}
}

func (s *ProductService) publish(ctx context.Context, id uint, event map[string]any) {
	if s.Events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	key := strconv.FormatUint(uint64(id), 10)
	if err := s.Events.PublishEvent(pctx, s.Topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", s.Topic, "productID", id, "error", err)
	}
}

func mapRepoErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
