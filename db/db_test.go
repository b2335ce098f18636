package db

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/quillhq/quill/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with foreign keys enforced so the
// cascade and set-null actions behave like the real schema.
func newTestDB(t *testing.T) *GormDB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(gdb))
	return &GormDB{DB: gdb}
}

func seedUser(t *testing.T, gdb *GormDB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Fullname:       "Test " + username,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "x",
	}
	require.NoError(t, gdb.DB.Create(user).Error)
	return user
}

func seedGroup(t *testing.T, gdb *GormDB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, gdb.DB.Create(group).Error)
	return group
}

func seedPost(t *testing.T, gdb *GormDB, authorID uint, groupID *uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID, GroupID: groupID}
	require.NoError(t, gdb.DB.Create(post).Error)
	return post
}

func seedPosts(t *testing.T, gdb *GormDB, authorID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedPost(t, gdb, authorID, nil, fmt.Sprintf("post %d", i))
	}
}
