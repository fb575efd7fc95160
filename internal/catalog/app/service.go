package app

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name, desc string, price decimal.Decimal, stock int, images []string) (domain.Product, error) {
	name = strings.TrimSpace(name)

	if name == "" || price.Sign() <= 0 || stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Name:        name,
		Description: desc,
		Price:       price,
		Stock:       stock,
		Images:      images,
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, query, limit, cursor)
}

// FindProductsByIDs is the batch point-lookup behind cart verification.
// Unknown ids are simply absent from the result, never an error.
func (s *Service) FindProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	if len(cleaned) == 0 {
		return nil, nil
	}

	return s.repo.FindByIDs(ctx, cleaned)
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error) {
	if strings.TrimSpace(id) == "" || delta == 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.AdjustStock(ctx, id, delta)
}
