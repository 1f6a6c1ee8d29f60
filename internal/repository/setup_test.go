package repository

import (
	"testing"

	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	db := openTestDB(t)
	return &testDB{
		DB:    pg.New(db, db),
		rawDB: db,
	}
}

// setupLaggingReplicaDB pairs the write handle with a separate, empty read
// handle, the way a replica looks before it has caught up.
func setupLaggingReplicaDB(t *testing.T) *testDB {
	write := openTestDB(t)
	read := openTestDB(t)
	return &testDB{
		DB:    pg.New(read, write),
		rawDB: write,
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&UserEntity{},
		&UserBusinessEntity{},
		&BusinessEntity{},
		&SupplierEntity{},
		&TransactionEntity{},
		&DailyReportEntity{},
		&ExpenseEntity{},
		&CashMovementEntity{},
		&InvoiceObjectEntity{},
	)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *testDB, username, fullName string) *UserEntity {
	u := &UserEntity{Username: username, PasswordHash: "x", FullName: fullName, Role: "staff"}
	require.NoError(t, db.rawDB.Create(u).Error)
	return u
}
