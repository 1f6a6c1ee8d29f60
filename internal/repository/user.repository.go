package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a looked up row does not exist.
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateReport = errors.New("a report already exists for this business and date")
	ErrDuplicateUser   = errors.New("username already exists")
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).Where("username = ?", username).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.withBusinesses(ctx, &entity)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.withBusinesses(ctx, &entity)
}

// Create inserts the user and its business allow list atomically.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Create(entity).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUser
			}
			return fmt.Errorf("insert user: %w", err)
		}
		if len(u.AllowedBusinesses) == 0 {
			return nil
		}
		links := make([]*UserBusinessEntity, len(u.AllowedBusinesses))
		for i, bid := range u.AllowedBusinesses {
			links[i] = &UserBusinessEntity{UserID: entity.ID, BusinessID: bid}
		}
		if err := r.Write(ctx).Create(&links).Error; err != nil {
			return fmt.Errorf("insert user businesses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserModel(entity, u.AllowedBusinesses), nil
}

func (r *UserRepository) withBusinesses(ctx context.Context, e *UserEntity) (*model.User, error) {
	var ids []int64
	err := r.Read(ctx).Model(&UserBusinessEntity{}).
		Where("user_id = ?", e.ID).
		Order("business_id").
		Pluck("business_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toUserModel(e, ids), nil
}

type BusinessRepository struct {
	*pg.DB
}

func NewBusinessRepository(db *pg.DB) *BusinessRepository {
	return &BusinessRepository{
		db,
	}
}

func (r *BusinessRepository) List(ctx context.Context) ([]*model.Business, error) {
	var entities []*BusinessEntity
	if err := r.Read(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, err
	}

	var links []*UserBusinessEntity
	if err := r.Read(ctx).Order("user_id").Find(&links).Error; err != nil {
		return nil, err
	}
	users := make(map[int64][]int64)
	for _, l := range links {
		users[l.BusinessID] = append(users[l.BusinessID], l.UserID)
	}

	out := make([]*model.Business, len(entities))
	for i, e := range entities {
		out[i] = toBusinessModel(e, users[e.ID])
	}
	return out, nil
}

func (r *BusinessRepository) Create(ctx context.Context, name string) (*model.Business, error) {
	entity := &BusinessEntity{Name: name}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toBusinessModel(entity, nil), nil
}
