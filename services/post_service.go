package services

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	apiError "github.com/quillhq/quill/errors"
	"github.com/quillhq/quill/forms"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/pagination"
	"gorm.io/gorm"
)

// ErrNotPostAuthor marks an edit attempt by someone other than the author.
// The handler turns it into a redirect to the post detail, not an error page.
var ErrNotPostAuthor = apiError.New("only the author may edit a post", http.StatusForbidden)

// PostService orchestrates post workflows: form validation, group checks,
// image upload, then a single repository write.
type PostService interface {
	CreatePost(authorID uint, input *forms.PostInput, image *multipart.FileHeader) (*models.Post, forms.FieldErrors, error)
	EditPost(userID, postID uint, input *forms.PostInput, image *multipart.FileHeader) (*models.Post, forms.FieldErrors, error)
	GetPostDetail(postID uint) (*models.Post, []models.Comment, error)
	ListPosts(page int) ([]models.Post, pagination.Page, error)
	ListGroupPosts(slug string, page int) (*models.Group, []models.Post, pagination.Page, error)
	ListAuthorPosts(username string, page int) (*models.User, []models.Post, pagination.Page, error)
}

type postService struct {
	Config      *config.Config
	postRepo    db.PostRepository
	groupRepo   db.GroupRepository
	commentRepo db.CommentRepository
	authRepo    db.AuthRepository
	media       MediaService
}

func NewPostService(postRepo db.PostRepository, groupRepo db.GroupRepository, commentRepo db.CommentRepository, authRepo db.AuthRepository, media MediaService, conf *config.Config) PostService {
	return &postService{
		Config:      conf,
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		authRepo:    authRepo,
		media:       media,
	}
}

func (s *postService) CreatePost(authorID uint, input *forms.PostInput, image *multipart.FileHeader) (*models.Post, forms.FieldErrors, error) {
	fieldErrs, err := s.bind(authorID, input, image)
	if fieldErrs.Any() || err != nil {
		return nil, fieldErrs, err
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: authorID,
		GroupID:  input.GroupID,
		Image:    input.Image,
	}
	if err := s.postRepo.CreatePost(post); err != nil {
		log.Printf("CreatePost error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}
	return post, nil, nil
}

func (s *postService) EditPost(userID, postID uint, input *forms.PostInput, image *multipart.FileHeader) (*models.Post, forms.FieldErrors, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.ErrNotFound
		}
		return nil, nil, apiError.ErrInternalServerError
	}
	if post.AuthorID != userID {
		return post, nil, ErrNotPostAuthor
	}

	fieldErrs, err := s.bind(userID, input, image)
	if fieldErrs.Any() || err != nil {
		return post, fieldErrs, err
	}

	if err := s.postRepo.UpdatePost(postID, input.Text, input.GroupID, input.Image); err != nil {
		log.Printf("EditPost error: %v", err)
		return post, nil, apiError.ErrInternalServerError
	}
	updated, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return post, nil, apiError.ErrInternalServerError
	}
	return updated, nil, nil
}

// bind validates the input, resolves the optional group and uploads the
// optional image. Invalid input never reaches the repositories.
func (s *postService) bind(userID uint, input *forms.PostInput, image *multipart.FileHeader) (forms.FieldErrors, error) {
	fieldErrs := forms.ValidatePost(input)
	if input.GroupID != nil {
		if _, err := s.groupRepo.FindGroupByID(*input.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fieldErrs["group"] = "group does not exist"
			} else {
				return fieldErrs, apiError.ErrInternalServerError
			}
		}
	}
	if fieldErrs.Any() {
		return fieldErrs, nil
	}
	if image != nil {
		url, err := s.media.UploadPostImage(image, userID)
		if err != nil {
			fieldErrs["image"] = err.Error()
			return fieldErrs, nil
		}
		input.Image = url
	}
	return fieldErrs, nil
}

func (s *postService) GetPostDetail(postID uint) (*models.Post, []models.Comment, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.ErrNotFound
		}
		return nil, nil, apiError.ErrInternalServerError
	}
	comments, err := s.commentRepo.GetCommentsByPostID(postID)
	if err != nil {
		return nil, nil, apiError.ErrInternalServerError
	}
	return post, comments, nil
}

func (s *postService) ListPosts(page int) ([]models.Post, pagination.Page, error) {
	return s.postRepo.GetAllPosts(page)
}

func (s *postService) ListGroupPosts(slug string, page int) (*models.Group, []models.Post, pagination.Page, error) {
	group, err := s.groupRepo.FindGroupBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pagination.Page{}, apiError.ErrNotFound
		}
		return nil, nil, pagination.Page{}, apiError.ErrInternalServerError
	}
	posts, p, err := s.postRepo.GetPostsByGroup(group.ID, page)
	if err != nil {
		return nil, nil, p, apiError.ErrInternalServerError
	}
	return group, posts, p, nil
}

func (s *postService) ListAuthorPosts(username string, page int) (*models.User, []models.Post, pagination.Page, error) {
	author, err := s.authRepo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pagination.Page{}, apiError.ErrNotFound
		}
		return nil, nil, pagination.Page{}, apiError.ErrInternalServerError
	}
	posts, p, err := s.postRepo.GetPostsByAuthor(author.ID, page)
	if err != nil {
		return nil, nil, p, apiError.ErrInternalServerError
	}
	return author, posts, p, nil
}
