package db

import (
	"testing"

	"github.com/quillhq/quill/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepo_SlugLookup(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewGroupRepo(gdb)
	seedGroup(t, gdb, "novels")

	group, err := repo.FindGroupBySlug("novels")
	require.NoError(t, err)
	assert.Equal(t, "Group novels", group.Title)

	_, err = repo.FindGroupBySlug("missing")
	require.Error(t, err)
}

func TestGroupRepo_DuplicateSlugRejected(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewGroupRepo(gdb)
	seedGroup(t, gdb, "novels")

	err := repo.CreateGroup(&models.Group{Title: "Other", Slug: "novels"})
	require.Error(t, err)
}

func TestGroupRepo_ListedByTitle(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewGroupRepo(gdb)
	require.NoError(t, repo.CreateGroup(&models.Group{Title: "Zebra", Slug: "zebra"}))
	require.NoError(t, repo.CreateGroup(&models.Group{Title: "Apple", Slug: "apple"}))

	groups, err := repo.GetAllGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Apple", groups[0].Title)
	assert.Equal(t, "Zebra", groups[1].Title)
}
