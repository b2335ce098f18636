package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/quillhq/quill/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentRequiresLogin(t *testing.T) {
	_, r, gdb := newTestServer(t)
	author := createUser(t, gdb, "leo")
	post := createPost(t, gdb, author.ID, "a post")

	w := doPostForm(r, postDetailPath(post.ID)+"/comment", url.Values{"text": {"anon comment"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login?next=")

	var count int64
	require.NoError(t, gdb.DB.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddComment(t *testing.T) {
	s, r, gdb := newTestServer(t)
	author := createUser(t, gdb, "leo")
	commenter := createUser(t, gdb, "anna")
	post := createPost(t, gdb, author.ID, "a post")
	cookie := sessionFor(t, s, commenter.ID)

	w := doPostForm(r, postDetailPath(post.ID)+"/comment", url.Values{"text": {"well said"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, postDetailPath(post.ID), w.Header().Get("Location"))

	var comment models.Comment
	require.NoError(t, gdb.DB.First(&comment).Error)
	assert.Equal(t, "well said", comment.Text)
	assert.Equal(t, commenter.ID, comment.AuthorID)
}

func TestAddEmptyCommentRedirectsWithoutSaving(t *testing.T) {
	s, r, gdb := newTestServer(t)
	author := createUser(t, gdb, "leo")
	post := createPost(t, gdb, author.ID, "a post")
	cookie := sessionFor(t, s, author.ID)

	w := doPostForm(r, postDetailPath(post.ID)+"/comment", url.Values{"text": {"   "}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, postDetailPath(post.ID), w.Header().Get("Location"))

	var count int64
	require.NoError(t, gdb.DB.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddCommentMissingPost(t *testing.T) {
	s, r, gdb := newTestServer(t)
	user := createUser(t, gdb, "leo")
	cookie := sessionFor(t, s, user.ID)

	w := doPostForm(r, "/posts/999/comment", url.Values{"text": {"lost"}}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
