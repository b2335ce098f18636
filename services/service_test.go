package services

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	"github.com/quillhq/quill/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *db.GormDB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return &db.GormDB{DB: gdb}
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		BaseUrl:   "http://localhost:8080",
	}
}

// stubMailer records reset mails instead of sending them.
type stubMailer struct {
	to   string
	link string
	fail bool
}

func (m *stubMailer) SendResetPassword(toEmail, resetLink string) (string, error) {
	if m.fail {
		return "", errors.New("rejected")
	}
	m.to = toEmail
	m.link = resetLink
	return "queued", nil
}

// stubMedia returns a fixed URL without touching any bucket.
type stubMedia struct {
	url string
	err error
}

func (m *stubMedia) UploadPostImage(_ *multipart.FileHeader, _ uint) (string, error) {
	return m.url, m.err
}

func seedUser(t *testing.T, gdb *db.GormDB, username string) *models.User {
	t.Helper()
	hashed, err := GenerateHashPassword("sekret1")
	require.NoError(t, err)
	user := &models.User{
		Fullname:       "Test " + username,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hashed,
	}
	require.NoError(t, gdb.DB.Create(user).Error)
	return user
}

func seedPost(t *testing.T, gdb *db.GormDB, authorID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID}
	require.NoError(t, gdb.DB.Create(post).Error)
	return post
}
