package church

import (
	"context"
	"strings"

	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, c *Church) error
	GetByID(ctx context.Context, id ulid.ULID) (*Church, error)
	GetBySlug(ctx context.Context, slug string) (*Church, error)
}

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) CreateChurch(ctx context.Context, name, slug string) (*Church, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	slug = normalizeSlug(slug, name)

	if existing, err := s.Repository.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, appErrors.NewConflictError("igreja")
	}

	c := &Church{
		Id:       pkg.GenerateULIDObject(),
		Name:     name,
		Slug:     slug,
		IsActive: true,
	}

	if err := s.Repository.Create(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*Church, error) {
	c, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.ErrNotFound.WithError(err)
	}
	return c, nil
}

func normalizeSlug(slug, name string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		slug = strings.ToLower(name)
	}
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
