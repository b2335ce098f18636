package db

import (
	"github.com/pkg/errors"
	"github.com/quillhq/quill/models"
	"gorm.io/gorm"
)

type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
}

type commentRepo struct {
	DB *gorm.DB
}

func NewCommentRepo(db *GormDB) CommentRepository {
	return &commentRepo{db.DB}
}

func (r *commentRepo) CreateComment(comment *models.Comment) error {
	if err := r.DB.Create(comment).Error; err != nil {
		return errors.Wrap(err, "could not create comment")
	}
	return nil
}

func (r *commentRepo) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
