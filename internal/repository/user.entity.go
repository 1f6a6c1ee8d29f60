package repository

import (
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
)

type UserEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	FullName     string    `db:"full_name"     gorm:"column:full_name;not null"`
	Role         string    `db:"role"          gorm:"column:role;not null;default:staff"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

// UserBusinessEntity is one row of the user <-> business allow list.
type UserBusinessEntity struct {
	UserID     int64 `db:"user_id"     gorm:"primaryKey;column:user_id"`
	BusinessID int64 `db:"business_id" gorm:"primaryKey;column:business_id;index"`
}

func (UserBusinessEntity) TableName() string {
	return "user_businesses"
}

type BusinessEntity struct {
	ID   int64  `db:"id"   gorm:"primaryKey;autoIncrement;column:id"`
	Name string `db:"name" gorm:"column:name;not null"`
}

func (BusinessEntity) TableName() string {
	return "businesses"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         string(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(e *UserEntity, businesses []int64) *model.User {
	if e == nil {
		return nil
	}
	if businesses == nil {
		businesses = []int64{}
	}
	return &model.User{
		ID:                e.ID,
		Username:          e.Username,
		PasswordHash:      e.PasswordHash,
		FullName:          e.FullName,
		Role:              model.Role(e.Role),
		AllowedBusinesses: businesses,
		CreatedAt:         e.CreatedAt,
	}
}

func toBusinessModel(e *BusinessEntity, users []int64) *model.Business {
	if e == nil {
		return nil
	}
	if users == nil {
		users = []int64{}
	}
	return &model.Business{
		ID:             e.ID,
		Name:           e.Name,
		AllowedUserIDs: users,
	}
}
