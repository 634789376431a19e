// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"leave_system/internal/db"
	"leave_system/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), db.Options(true))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a fresh database, so pin one.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// CreateUser inserts a user with a bcrypt hash of password.
func CreateUser(t testing.TB, gdb *gorm.DB, email, password string, role domain.Role) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := domain.User{Email: email, Password: string(hash), FirstName: "Test", LastName: "User", Role: role}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}
