package main

import (
	"log"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	"github.com/quillhq/quill/mailingservices"
	"github.com/quillhq/quill/server"
	"github.com/quillhq/quill/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	postRepo := db.NewPostRepo(gormDB)
	groupRepo := db.NewGroupRepo(gormDB)
	commentRepo := db.NewCommentRepo(gormDB)
	followRepo := db.NewFollowRepo(gormDB)

	mediaService := services.NewMediaService(conf)
	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	postService := services.NewPostService(postRepo, groupRepo, commentRepo, authRepo, mediaService, conf)
	commentService := services.NewCommentService(commentRepo, postRepo, conf)
	followService := services.NewFollowService(followRepo, authRepo, postRepo, conf)

	s := &server.Server{
		Config:            conf,
		DB:                *gormDB,
		Mail:              mailgunClient,
		AuthRepository:    authRepo,
		PostRepository:    postRepo,
		GroupRepository:   groupRepo,
		CommentRepository: commentRepo,
		FollowRepository:  followRepo,
		AuthService:       authService,
		PostService:       postService,
		CommentService:    commentService,
		FollowService:     followService,
		MediaService:      mediaService,
	}
	s.Start()
}
