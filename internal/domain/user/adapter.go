package user

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// UserServiceAdapter expõe o Service por trás da interface usada pelo
// UserCheckerService, evitando dependência circular entre domínios.
type UserServiceAdapter struct {
	service *Service
}

func NewUserServiceAdapter(service *Service) *UserServiceAdapter {
	return &UserServiceAdapter{service: service}
}

func (a *UserServiceAdapter) Exists(ctx context.Context, userID ulid.ULID) error {
	return a.service.Exists(ctx, userID)
}

func (a *UserServiceAdapter) ChurchOf(ctx context.Context, userID ulid.ULID) (ulid.ULID, error) {
	u, err := a.service.GetByID(ctx, userID)
	if err != nil {
		return ulid.ULID{}, err
	}
	return u.ChurchId, nil
}
