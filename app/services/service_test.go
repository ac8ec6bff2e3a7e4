package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"rps-backend/app/models"
	"rps-backend/app/repo"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int64

// newTestDB opens a private in-memory sqlite database with the same schema
// the server migrates at startup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.EmailVerification{}))
	return gdb
}

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	gdb := newTestDB(t)
	return NewUserService(repo.NewUserRepository(gdb)), gdb
}
