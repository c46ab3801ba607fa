package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"Ecclesia/internal/domain/shared"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, categoryID, churchID ulid.ULID) error
	GetByID(ctx context.Context, categoryID, churchID ulid.ULID) (*Category, error)
	GetByName(ctx context.Context, name string, typ Type, churchID ulid.ULID) (*Category, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, typ *Type, pagination *pkg.PaginationParams) ([]*Category, int64, error)
}

type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{Repository: repo, UserChecker: userChecker}
}

type CreateCategoryRequest struct {
	ChurchId ulid.ULID
	ActorId  ulid.ULID
	Name     string
	Type     Type
}

func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.ActorId); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "tipo deve ser INCOME ou EXPENSE")
	}

	if err := s.ensureNameAvailable(ctx, req.Name, req.Type, req.ChurchId); err != nil {
		return nil, err
	}

	c := &Category{
		Id:       pkg.GenerateULIDObject(),
		ChurchId: req.ChurchId,
		Name:     req.Name,
		Type:     req.Type,
	}

	if err := s.Repository.Create(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return c, nil
}

func (s *Service) GetCategoryByID(ctx context.Context, categoryID, churchID ulid.ULID) (*Category, error) {
	c, err := s.Repository.GetByID(ctx, categoryID, churchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return c, nil
}

// EnsureType valida que a categoria existe e tem a direção esperada.
func (s *Service) EnsureType(ctx context.Context, categoryID, churchID ulid.ULID, expected Type) error {
	c, err := s.GetCategoryByID(ctx, categoryID, churchID)
	if err != nil {
		return err
	}
	if c.Type != expected {
		return appErrors.NewValidationError("category_id", "tipo da categoria não corresponde ao tipo da operação")
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context, churchID ulid.ULID, typ *Type, pagination *pkg.PaginationParams) ([]*Category, int64, error) {
	if typ != nil && !typ.IsValid() {
		return nil, 0, appErrors.NewValidationError("type", "tipo deve ser INCOME ou EXPENSE")
	}

	categories, total, err := s.Repository.GetByChurch(ctx, churchID, typ, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return categories, total, nil
}

type UpdateCategoryRequest struct {
	Name *string
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID, churchID ulid.ULID, req *UpdateCategoryRequest) (*Category, error) {
	c, err := s.GetCategoryByID(ctx, categoryID, churchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "é obrigatório")
		}
		if !strings.EqualFold(c.Name, name) {
			if err := s.ensureNameAvailable(ctx, name, c.Type, churchID); err != nil {
				return nil, err
			}
		}
		c.Name = name
	}
	c.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID, churchID ulid.ULID) error {
	if _, err := s.GetCategoryByID(ctx, categoryID, churchID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, categoryID, churchID)
}

func (s *Service) ensureNameAvailable(ctx context.Context, name string, typ Type, churchID ulid.ULID) error {
	_, err := s.Repository.GetByName(ctx, name, typ, churchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return appErrors.NewConflictError("categoria")
}
