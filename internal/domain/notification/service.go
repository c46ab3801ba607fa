package notification

import (
	"context"

	"Ecclesia/internal/logger"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Notification, int64, error)
	MarkRead(ctx context.Context, notificationID, userID ulid.ULID) error
}

// Service entrega notificações internas em modo best-effort, no mesmo
// contrato do sink de auditoria.
type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Notify(ctx context.Context, churchID, targetUserID ulid.ULID, title, content string) {
	if s == nil || s.Repository == nil {
		return
	}

	n := &Notification{
		Id:       pkg.GenerateULIDObject(),
		ChurchId: churchID,
		UserId:   targetUserID,
		Title:    title,
		Content:  content,
	}

	if err := s.Repository.Create(ctx, n); err != nil {
		logger.Warn().
			Err(err).
			Str("user_id", targetUserID.String()).
			Str("title", title).
			Msg("Falha ao gravar notificação")
	}
}

func (s *Service) ListForUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Notification, int64, error) {
	return s.Repository.GetByUser(ctx, userID, pagination)
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID ulid.ULID) error {
	return s.Repository.MarkRead(ctx, notificationID, userID)
}
