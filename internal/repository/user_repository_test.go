package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.DB)
	businesses := NewBusinessRepository(db.DB)
	ctx := context.Background()

	b1, err := businesses.Create(ctx, "Kadikoy")
	require.NoError(t, err)
	b2, err := businesses.Create(ctx, "Besiktas")
	require.NoError(t, err)

	created, err := users.Create(ctx, &model.User{
		Username:          "ayse",
		PasswordHash:      "$2a$10$hash",
		FullName:          "Ayse Kaya",
		Role:              model.RoleStaff,
		AllowedBusinesses: []int64{b2.ID, b1.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("find by username loads allowed businesses", func(t *testing.T) {
		u, err := users.FindByUsername(ctx, "ayse")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
		assert.Equal(t, "$2a$10$hash", u.PasswordHash)
		assert.Equal(t, model.RoleStaff, u.Role)
		assert.Equal(t, []int64{b1.ID, b2.ID}, u.AllowedBusinesses)
	})

	t.Run("find by id", func(t *testing.T) {
		u, err := users.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ayse Kaya", u.FullName)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := users.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = users.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Create(ctx, &model.User{Username: "ayse", PasswordHash: "x", FullName: "Other", Role: model.RoleAdmin})
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("businesses list their users", func(t *testing.T) {
		list, err := businesses.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Kadikoy", list[0].Name)
		assert.Equal(t, []int64{created.ID}, list[0].AllowedUserIDs)
	})
}

func TestInvoiceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInvoiceRepository(db.DB)
	ctx := context.Background()

	obj := &model.InvoiceObject{
		Path:        "1/abc.pdf",
		BusinessID:  1,
		ContentType: "application/pdf",
		Size:        4,
		Data:        []byte("%PDF"),
	}
	require.NoError(t, repo.Put(ctx, obj))

	got, err := repo.Get(ctx, "1/abc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), got.Data)
	assert.Equal(t, "application/pdf", got.ContentType)

	_, err = repo.Get(ctx, "1/missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}
