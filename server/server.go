package server

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quillhq/quill/cache"
	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	"github.com/quillhq/quill/mailingservices"
	"github.com/quillhq/quill/services"
)

type Server struct {
	Config            *config.Config
	DB                db.GormDB
	Mail              mailingservices.Mailer
	AuthRepository    db.AuthRepository
	PostRepository    db.PostRepository
	GroupRepository   db.GroupRepository
	CommentRepository db.CommentRepository
	FollowRepository  db.FollowRepository
	AuthService       services.AuthService
	PostService       services.PostService
	CommentService    services.CommentService
	FollowService     services.FollowService
	MediaService      services.MediaService
	PageCache         *cache.PageCache

	templates *template.Template
}

// Start parses the templates, mounts the router and serves until SIGINT or
// SIGTERM, then drains in-flight requests.
func (s *Server) Start() {
	if s.PageCache == nil {
		s.PageCache = cache.New(time.Duration(s.Config.CacheTTLSeconds) * time.Second)
	}
	s.templates = template.Must(template.ParseGlob(s.Config.TemplateGlob))

	r := s.setupRouter()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Config.Port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}
