package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/member"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

var _ member.Repository = (*MemberRepository)(nil)

type memberDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId  string    `gorm:"type:varchar(26);not null;column:church_id"`
	Name      string    `gorm:"size:150;not null;column:name"`
	Email     string    `gorm:"size:150;column:email"`
	Phone     string    `gorm:"size:30;column:phone"`
	IsActive  bool      `gorm:"not null;column:is_active"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainMember(mdb *memberDB) (*member.Member, error) {
	id, err := pkg.ParseULID(mdb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(mdb.ChurchId)
	if err != nil {
		return nil, err
	}
	return &member.Member{
		Id:        id,
		ChurchId:  churchID,
		Name:      mdb.Name,
		Email:     mdb.Email,
		Phone:     mdb.Phone,
		IsActive:  mdb.IsActive,
		CreatedAt: mdb.CreatedAt,
		UpdatedAt: mdb.UpdatedAt,
	}, nil
}

func toDBMember(m *member.Member) *memberDB {
	return &memberDB{
		Id:        m.Id.String(),
		ChurchId:  m.ChurchId.String(),
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	mdb := toDBMember(m)
	return r.DB.WithContext(ctx).Table("members").Create(mdb).Error
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	mdb := toDBMember(m)
	return r.DB.WithContext(ctx).Table("members").Where("id = ?", mdb.Id).Updates(mdb).Error
}

func (r *MemberRepository) Delete(ctx context.Context, memberID, churchID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("members").
		Where("id = ? AND church_id = ?", memberID.String(), churchID.String()).
		Delete(&memberDB{}).Error
}

func (r *MemberRepository) GetByID(ctx context.Context, memberID, churchID ulid.ULID) (*member.Member, error) {
	var mdb memberDB
	err := r.DB.WithContext(ctx).Table("members").
		Where("id = ? AND church_id = ?", memberID.String(), churchID.String()).
		First(&mdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainMember(&mdb)
}

func (r *MemberRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*member.Member, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("members").Where("church_id = ?", churchID.String())
	return pkg.Paginate(baseQuery, pagination, "name ASC", toDomainMember)
}
