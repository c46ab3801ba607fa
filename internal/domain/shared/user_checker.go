package shared

import (
	"context"

	appErrors "Ecclesia/internal/errors"

	"github.com/oklog/ulid/v2"
)

type UserGetter interface {
	Exists(ctx context.Context, userID ulid.ULID) error
	ChurchOf(ctx context.Context, userID ulid.ULID) (ulid.ULID, error)
}

// UserCheckerService valida a existência do usuário e o seu vínculo de igreja
// antes das operações de domínio.
type UserCheckerService struct {
	userService UserGetter
}

func NewUserCheckerService(userService UserGetter) *UserCheckerService {
	return &UserCheckerService{userService: userService}
}

func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s.userService == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.userService.Exists(ctx, userID); err != nil {
		return appErrors.ErrUserNotFound.WithError(err)
	}

	return nil
}

func (s *UserCheckerService) EnsureSameChurch(ctx context.Context, userID, churchID ulid.ULID) error {
	if s.userService == nil {
		return appErrors.ErrInternalServer
	}

	owner, err := s.userService.ChurchOf(ctx, userID)
	if err != nil {
		return appErrors.ErrUserNotFound.WithError(err)
	}

	if owner != churchID {
		return appErrors.ErrResourceNotOwned
	}

	return nil
}
