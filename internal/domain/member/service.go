package member

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
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, memberID, churchID ulid.ULID) error
	GetByID(ctx context.Context, memberID, churchID ulid.ULID) (*Member, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*Member, int64, error)
}

type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{Repository: repo, UserChecker: userChecker}
}

type CreateMemberRequest struct {
	ChurchId ulid.ULID
	ActorId  ulid.ULID
	Name     string
	Email    string
	Phone    string
}

func (s *Service) CreateMember(ctx context.Context, req *CreateMemberRequest) (*Member, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.ActorId); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	m := &Member{
		Id:       pkg.GenerateULIDObject(),
		ChurchId: req.ChurchId,
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		IsActive: true,
	}

	if err := s.Repository.Create(ctx, m); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return m, nil
}

func (s *Service) GetMemberByID(ctx context.Context, memberID, churchID ulid.ULID) (*Member, error) {
	m, err := s.Repository.GetByID(ctx, memberID, churchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrMemberNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return m, nil
}

func (s *Service) ListMembers(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*Member, int64, error) {
	members, total, err := s.Repository.GetByChurch(ctx, churchID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return members, total, nil
}

type UpdateMemberRequest struct {
	Name     *string
	Email    *string
	Phone    *string
	IsActive *bool
}

func (s *Service) UpdateMember(ctx context.Context, memberID, churchID ulid.ULID, req *UpdateMemberRequest) (*Member, error) {
	m, err := s.GetMemberByID(ctx, memberID, churchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "é obrigatório")
		}
		m.Name = name
	}
	if req.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		m.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	m.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, m); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return m, nil
}

func (s *Service) DeleteMember(ctx context.Context, memberID, churchID ulid.ULID) error {
	if _, err := s.GetMemberByID(ctx, memberID, churchID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, memberID, churchID)
}
