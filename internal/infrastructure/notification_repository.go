package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/notification"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

var _ notification.Repository = (*NotificationRepository)(nil)

type notificationDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId  string    `gorm:"type:varchar(26);not null;column:church_id"`
	UserId    string    `gorm:"type:varchar(26);not null;column:user_id"`
	Title     string    `gorm:"size:150;not null;column:title"`
	Content   string    `gorm:"size:500;column:content"`
	IsRead    bool      `gorm:"not null;column:is_read"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

func toDomainNotification(ndb *notificationDB) (*notification.Notification, error) {
	id, err := pkg.ParseULID(ndb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(ndb.ChurchId)
	if err != nil {
		return nil, err
	}
	userID, err := pkg.ParseULID(ndb.UserId)
	if err != nil {
		return nil, err
	}
	return &notification.Notification{
		Id:        id,
		ChurchId:  churchID,
		UserId:    userID,
		Title:     ndb.Title,
		Content:   ndb.Content,
		IsRead:    ndb.IsRead,
		CreatedAt: ndb.CreatedAt,
	}, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	ndb := &notificationDB{
		Id:        n.Id.String(),
		ChurchId:  n.ChurchId.String(),
		UserId:    n.UserId.String(),
		Title:     n.Title,
		Content:   n.Content,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	return r.DB.WithContext(ctx).Table("notifications").Create(ndb).Error
}

func (r *NotificationRepository) GetByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("notifications").Where("user_id = ?", userID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainNotification)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("notifications").
		Where("id = ? AND user_id = ?", notificationID.String(), userID.String()).
		Update("is_read", true).Error
}
