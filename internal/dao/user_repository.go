package dao

import (
	"context"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/internal/model"
	"github.com/daybookhq/journal-sync-service/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.Db.WithContext(ctx).Model(&model.User{})
}

func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Password:  m.Password,
		Timezone:  m.Timezone,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.db(ctx).Where("uid = ?", uid).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.db(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := timex.Now()
	m := &model.User{
		Email:     user.Email,
		Nickname:  user.Nickname,
		Password:  user.Password,
		Timezone:  user.Timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, uid int64, password string) error {
	return r.db(ctx).Where("uid = ?", uid).Updates(map[string]interface{}{
		"password":   password,
		"updated_at": timex.Now(),
	}).Error
}

func (r *userRepository) UpdateTimezone(ctx context.Context, uid int64, timezone string) error {
	return r.db(ctx).Where("uid = ?", uid).Updates(map[string]interface{}{
		"timezone":   timezone,
		"updated_at": timex.Now(),
	}).Error
}
