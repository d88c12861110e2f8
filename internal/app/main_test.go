package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/model"
	"github.com/Sandip75/backend-task/internal/repository"
)

const (
	testSecret   = "test-secret"
	testPassword = "Abcdef123456!"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.LoginRecord{},
		&model.Post{},
		&model.Comment{},
	))
	return db
}

// capturePublisher stands in for the broker and keeps published records.
type capturePublisher struct {
	records []model.LoginRecord
}

func (p *capturePublisher) Publish(_ context.Context, record model.LoginRecord) error {
	p.records = append(p.records, record)
	return nil
}

// syncPublisher writes records straight to the repository, standing in for
// the broker plus worker in tests that need the ledger populated.
type syncPublisher struct {
	repo *repository.LoginRecordRepository
}

func (p *syncPublisher) Publish(_ context.Context, record model.LoginRecord) error {
	return p.repo.Create(&record)
}

func newAuthService(db *gorm.DB, publisher LoginEventPublisher) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewLoginRecordRepository(db),
		publisher,
		testSecret,
		time.Hour,
	)
}

func mustSignup(t *testing.T, svc *AuthService, id string) *model.User {
	t.Helper()

	user, err := svc.Signup(SignupInput{
		ID:       id,
		Password: testPassword,
		Username: "홍길동",
	})
	require.NoError(t, err)
	return user
}
