package audit

import (
	"context"

	"Ecclesia/internal/logger"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*AuditLog, int64, error)
}

// Service registra trilha de auditoria em modo best-effort: falha de escrita
// nunca reverte nem bloqueia a operação financeira que a originou.
type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Append(ctx context.Context, churchID, userID ulid.ULID, action, entity, entityID, description string) {
	if s == nil || s.Repository == nil {
		return
	}

	entry := &AuditLog{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    churchID,
		UserId:      userID,
		Action:      action,
		Entity:      entity,
		EntityId:    entityID,
		Description: description,
	}

	if err := s.Repository.Create(ctx, entry); err != nil {
		logger.Warn().
			Err(err).
			Str("action", action).
			Str("entity", entity).
			Str("entity_id", entityID).
			Msg("Falha ao gravar registro de auditoria")
	}
}

func (s *Service) List(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*AuditLog, int64, error) {
	return s.Repository.GetByChurch(ctx, churchID, pagination)
}
