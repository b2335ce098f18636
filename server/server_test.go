package server

import (
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/quillhq/quill/cache"
	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/services"
	jwtpkg "github.com/quillhq/quill/services/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testMailer struct{}

func (m *testMailer) SendResetPassword(string, string) (string, error) { return "queued", nil }

type testMedia struct{}

func (m *testMedia) UploadPostImage(*multipart.FileHeader, uint) (string, error) {
	return "https://bucket.example/posts/1/x.jpg", nil
}

func newTestServer(t *testing.T) (*Server, *gin.Engine, *db.GormDB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	conf := &config.Config{
		JWTSecret:       "test-secret",
		CacheTTLSeconds: 20,
		TemplateGlob:    "templates/*.html",
	}
	gormDB := &db.GormDB{DB: gdb}
	authRepo := db.NewAuthRepo(gormDB)
	postRepo := db.NewPostRepo(gormDB)
	groupRepo := db.NewGroupRepo(gormDB)
	commentRepo := db.NewCommentRepo(gormDB)
	followRepo := db.NewFollowRepo(gormDB)
	media := &testMedia{}

	s := &Server{
		Config:            conf,
		DB:                *gormDB,
		Mail:              &testMailer{},
		AuthRepository:    authRepo,
		PostRepository:    postRepo,
		GroupRepository:   groupRepo,
		CommentRepository: commentRepo,
		FollowRepository:  followRepo,
		AuthService:       services.NewAuthService(authRepo, &testMailer{}, conf),
		PostService:       services.NewPostService(postRepo, groupRepo, commentRepo, authRepo, media, conf),
		CommentService:    services.NewCommentService(commentRepo, postRepo, conf),
		FollowService:     services.NewFollowService(followRepo, authRepo, postRepo, conf),
		MediaService:      media,
		PageCache:         cache.New(time.Duration(conf.CacheTTLSeconds) * time.Second),
	}
	s.templates = template.Must(template.ParseGlob(conf.TemplateGlob))
	return s, s.setupRouter(), gormDB
}

func createUser(t *testing.T, gdb *db.GormDB, username string) *models.User {
	t.Helper()
	hashed, err := services.GenerateHashPassword("sekret1")
	require.NoError(t, err)
	user := &models.User{
		Fullname:       "Test " + username,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hashed,
	}
	require.NoError(t, gdb.DB.Create(user).Error)
	return user
}

func createPost(t *testing.T, gdb *db.GormDB, authorID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID}
	require.NoError(t, gdb.DB.Create(post).Error)
	return post
}

// sessionFor mints a token the middleware accepts, as a request cookie.
func sessionFor(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := jwtpkg.GenerateToken(userID, s.Config.JWTSecret)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookie, Value: token}
}

func doGet(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPostForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
