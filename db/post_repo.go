package db

import (
	"github.com/pkg/errors"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/pagination"
	"gorm.io/gorm"
)

// PostRepository reads and writes posts. Listing methods return posts in
// publication order, newest first, one fixed-size page at a time.
type PostRepository interface {
	CreatePost(post *models.Post) error
	UpdatePost(postID uint, text string, groupID *uint, image string) error
	GetPostByID(postID uint) (*models.Post, error)
	GetAllPosts(page int) ([]models.Post, pagination.Page, error)
	GetPostsByGroup(groupID uint, page int) ([]models.Post, pagination.Page, error)
	GetPostsByAuthor(authorID uint, page int) ([]models.Post, pagination.Page, error)
	GetFeedPosts(userID uint, page int) ([]models.Post, pagination.Page, error)
	CountPosts() (int64, error)
}

type postRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *GormDB) PostRepository {
	return &postRepo{db.DB}
}

func (r *postRepo) CreatePost(post *models.Post) error {
	if err := r.DB.Create(post).Error; err != nil {
		return errors.Wrap(err, "could not create post")
	}
	return nil
}

// UpdatePost changes the mutable fields only; created_at stays the original
// publication time.
func (r *postRepo) UpdatePost(postID uint, text string, groupID *uint, image string) error {
	updates := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if image != "" {
		updates["image"] = image
	}
	return r.DB.Model(&models.Post{}).Where("id = ?", postID).Updates(updates).Error
}

func (r *postRepo) GetPostByID(postID uint) (*models.Post, error) {
	var post models.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) GetAllPosts(page int) ([]models.Post, pagination.Page, error) {
	return r.paginate(func() *gorm.DB {
		return r.DB.Model(&models.Post{})
	}, page)
}

func (r *postRepo) GetPostsByGroup(groupID uint, page int) ([]models.Post, pagination.Page, error) {
	return r.paginate(func() *gorm.DB {
		return r.DB.Model(&models.Post{}).Where("group_id = ?", groupID)
	}, page)
}

func (r *postRepo) GetPostsByAuthor(authorID uint, page int) ([]models.Post, pagination.Page, error) {
	return r.paginate(func() *gorm.DB {
		return r.DB.Model(&models.Post{}).Where("author_id = ?", authorID)
	}, page)
}

// GetFeedPosts returns posts authored by anyone the user follows.
func (r *postRepo) GetFeedPosts(userID uint, page int) ([]models.Post, pagination.Page, error) {
	return r.paginate(func() *gorm.DB {
		return r.DB.Model(&models.Post{}).
			Joins("JOIN follows ON follows.author_id = posts.author_id").
			Where("follows.user_id = ?", userID)
	}, page)
}

func (r *postRepo) CountPosts() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// paginate runs the query twice, once for the total and once for the page
// window; the builder hands back a fresh chain each time.
func (r *postRepo) paginate(query func() *gorm.DB, page int) ([]models.Post, pagination.Page, error) {
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pagination.Page{}, errors.Wrap(err, "could not count posts")
	}

	p := pagination.New(page, pagination.DefaultPageSize, total)
	var posts []models.Post
	err := query().
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, p, err
	}
	return posts, p, nil
}
