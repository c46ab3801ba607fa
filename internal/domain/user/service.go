package user

import (
	"context"
	"errors"
	"strings"

	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetById(ctx context.Context, id ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreateUserRequest struct {
	ChurchId ulid.ULID
	Name     string
	Email    string
	Password string
	Role     Role
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if req.Email == "" {
		return nil, appErrors.NewValidationError("email", "é obrigatório")
	}
	if len(req.Password) < 8 {
		return nil, appErrors.NewValidationError("password", "deve ter no mínimo 8 caracteres")
	}
	if req.Role == "" {
		req.Role = RoleSecretary
	}
	if !req.Role.IsValid() {
		return nil, appErrors.NewValidationError("role", "perfil inválido")
	}

	existing, err := s.Repository.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}
	if existing != nil {
		return nil, appErrors.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	u := &User{
		Id:       pkg.GenerateULIDObject(),
		ChurchId: req.ChurchId,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.Repository.Create(ctx, u); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	u, err := s.Repository.GetById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return u, nil
}

func (s *Service) Exists(ctx context.Context, id ulid.ULID) error {
	_, err := s.GetByID(ctx, id)
	return err
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Repository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if !u.IsActive {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	return u, nil
}
