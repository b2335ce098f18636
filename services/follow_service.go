package services

import (
	"errors"
	"log"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	apiError "github.com/quillhq/quill/errors"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/pagination"
	"gorm.io/gorm"
)

// FollowService manages subscriptions between users. Follow and unfollow are
// idempotent: duplicates and self-follows silently no-op, the schema
// constraints backstop races.
type FollowService interface {
	FollowAuthor(userID uint, username string) (*models.User, error)
	UnfollowAuthor(userID uint, username string) (*models.User, error)
	IsFollowing(userID uint, authorID uint) (bool, error)
	Feed(userID uint, page int) ([]models.Post, pagination.Page, error)
}

type followService struct {
	Config     *config.Config
	followRepo db.FollowRepository
	authRepo   db.AuthRepository
	postRepo   db.PostRepository
}

func NewFollowService(followRepo db.FollowRepository, authRepo db.AuthRepository, postRepo db.PostRepository, conf *config.Config) FollowService {
	return &followService{
		Config:     conf,
		followRepo: followRepo,
		authRepo:   authRepo,
		postRepo:   postRepo,
	}
}

func (s *followService) FollowAuthor(userID uint, username string) (*models.User, error) {
	author, err := s.findAuthor(username)
	if err != nil {
		return nil, err
	}
	if author.ID == userID {
		// Self-follow is silently ignored.
		return author, nil
	}
	if err := s.followRepo.CreateFollow(userID, author.ID); err != nil {
		log.Printf("FollowAuthor error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return author, nil
}

func (s *followService) UnfollowAuthor(userID uint, username string) (*models.User, error) {
	author, err := s.findAuthor(username)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.DeleteFollow(userID, author.ID); err != nil {
		log.Printf("UnfollowAuthor error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return author, nil
}

func (s *followService) IsFollowing(userID uint, authorID uint) (bool, error) {
	return s.followRepo.IsFollowing(userID, authorID)
}

func (s *followService) Feed(userID uint, page int) ([]models.Post, pagination.Page, error) {
	return s.postRepo.GetFeedPosts(userID, page)
}

func (s *followService) findAuthor(username string) (*models.User, error) {
	author, err := s.authRepo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, apiError.ErrInternalServerError
	}
	return author, nil
}
