package db

import (
	"github.com/pkg/errors"
	"github.com/quillhq/quill/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	CreateFollow(userID, authorID uint) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	CountFollowers(authorID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
}

type followRepo struct {
	DB *gorm.DB
}

func NewFollowRepo(db *GormDB) FollowRepository {
	return &followRepo{db.DB}
}

// CreateFollow inserts the pair once. ON CONFLICT DO NOTHING rides on the
// (user_id, author_id) unique index, so two concurrent follows end up with a
// single row and neither request sees an error.
func (r *followRepo) CreateFollow(userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
	if err != nil {
		return errors.Wrap(err, "could not create follow")
	}
	return nil
}

// DeleteFollow removes the pair if present; deleting a missing pair is a no-op.
func (r *followRepo) DeleteFollow(userID, authorID uint) error {
	return r.DB.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *followRepo) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepo) CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *followRepo) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
