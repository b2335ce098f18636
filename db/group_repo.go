package db

import (
	"github.com/pkg/errors"
	"github.com/quillhq/quill/models"
	"gorm.io/gorm"
)

type GroupRepository interface {
	CreateGroup(group *models.Group) error
	FindGroupBySlug(slug string) (*models.Group, error)
	FindGroupByID(id uint) (*models.Group, error)
	GetAllGroups() ([]models.Group, error)
	DeleteGroup(id uint) error
}

type groupRepo struct {
	DB *gorm.DB
}

func NewGroupRepo(db *GormDB) GroupRepository {
	return &groupRepo{db.DB}
}

func (r *groupRepo) CreateGroup(group *models.Group) error {
	if err := r.DB.Create(group).Error; err != nil {
		return errors.Wrap(err, "could not create group")
	}
	return nil
}

func (r *groupRepo) FindGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.DB.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) FindGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	err := r.DB.First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) GetAllGroups() ([]models.Group, error) {
	var groups []models.Group
	err := r.DB.Order("title ASC").Find(&groups).Error
	return groups, err
}

// DeleteGroup removes the group row; the SET NULL action on posts.group_id
// clears references without touching the posts themselves.
func (r *groupRepo) DeleteGroup(id uint) error {
	return r.DB.Delete(&models.Group{}, id).Error
}
