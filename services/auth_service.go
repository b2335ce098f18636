package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	apiError "github.com/quillhq/quill/errors"
	"github.com/quillhq/quill/mailingservices"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.User, string, *apiError.Error)
	LogoutUser(email, token string) error
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     mailingservices.Mailer
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, mail mailingservices.Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.Email == "" {
		return nil, errors.New("email is empty")
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	if err := s.authRepo.IsUsernameExist(user.Username); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

// LoginUser verifies the credentials and returns the user with a fresh
// session token.
func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.User, string, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, "", apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, "", apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	accessToken, err := jwt.GenerateToken(foundUser.ID, s.Config.JWTSecret)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", foundUser.Email, err)
		return nil, "", apiError.ErrInternalServerError
	}
	return foundUser, accessToken, nil
}

// LogoutUser blacklists the session token so it cannot be replayed.
func (s *authService) LogoutUser(email, token string) error {
	return s.authRepo.AddToBlackList(&models.Blacklist{Email: email, Token: token})
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	user, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil || user == nil {
		return apiError.New("user not found", http.StatusNotFound)
	}

	resetToken, err := jwt.GeneratePasswordResetToken(user.ID, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	baseURL := s.Config.BaseUrl
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	resetLink := fmt.Sprintf("%s/password/reset/%s", baseURL, resetToken)

	if _, err := s.mail.SendResetPassword(user.Email, resetLink); err != nil {
		log.Printf("error sending reset mail: %v", err)
		return apiError.New("connection to mail service interrupted", http.StatusInternalServerError)
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	claims, err := jwt.ValidateAndGetClaims(token, s.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}
	idValue, ok := claims["id"].(float64)
	if !ok || claims["reset"] != true {
		return apiError.New("invalid reset token", http.StatusUnauthorized)
	}

	hashed, err := GenerateHashPassword(request.Password)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.ResetPassword(uint(idValue), hashed); err != nil {
		log.Printf("error resetting password: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}
