package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhtran/feedgram/adapters/event"
	httpAdapter "github.com/minhtran/feedgram/adapters/http"
	"github.com/minhtran/feedgram/adapters/media_storage"
	"github.com/minhtran/feedgram/adapters/persistence"
	authUC "github.com/minhtran/feedgram/internal/application/usecase/auth"
	commentUC "github.com/minhtran/feedgram/internal/application/usecase/comment"
	followUC "github.com/minhtran/feedgram/internal/application/usecase/follow"
	mediaUC "github.com/minhtran/feedgram/internal/application/usecase/media"
	postUC "github.com/minhtran/feedgram/internal/application/usecase/post"
	searchUC "github.com/minhtran/feedgram/internal/application/usecase/search"
	userUC "github.com/minhtran/feedgram/internal/application/usecase/user"
	"github.com/minhtran/feedgram/internal/config"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/pkg/auth"
	"github.com/minhtran/feedgram/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	postRepo := persistence.NewPostgresPostRepo(dbPool)
	commentRepo := persistence.NewPostgresCommentRepo(dbPool)
	followRepo := persistence.NewPostgresFollowRepo(dbPool)
	searchRepo := persistence.NewPostgresSearchRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	tokenStore := persistence.NewRedisTokenStore(redisClient, cfg.Auth.RefreshLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	tuning := search.Tuning{
		SimilarityFloor: cfg.Search.SimilarityFloor,
		PositionDecay:   cfg.Search.PositionDecay,
	}

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, tokenStore, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, tokenStore, appLogger)
	sessionUseCase := authUC.NewSessionUseCase(jwtSvc, tokenStore, appLogger)
	userUseCase := userUC.NewUserUseCase(userRepo, appLogger)
	createPostUseCase := postUC.NewCreatePostUseCase(postRepo, kafkaClient, appLogger)
	listPostsUseCase := postUC.NewListPostsUseCase(postRepo, appLogger)
	deletePostUseCase := postUC.NewDeletePostUseCase(postRepo, kafkaClient, appLogger)
	likePostUseCase := postUC.NewLikePostUseCase(postRepo, appLogger)
	listLikersUseCase := postUC.NewListLikersUseCase(postRepo, appLogger)
	commentUseCase := commentUC.NewCommentUseCase(commentRepo, postRepo, appLogger)
	followUseCase := followUC.NewFollowUseCase(followRepo, userRepo, kafkaClient, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(searchRepo, tuning, appLogger)
	uploadUseCase := mediaUC.NewUploadMediaUseCase(uploader, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(
		registerUseCase,
		loginUseCase,
		sessionUseCase,
		cfg.Auth.RefreshCookie,
		cfg.Auth.RefreshLifespan,
	)
	userHandler := httpAdapter.NewUserHandler(userUseCase)
	postHandler := httpAdapter.NewPostHandler(
		createPostUseCase,
		listPostsUseCase,
		deletePostUseCase,
		likePostUseCase,
		listLikersUseCase,
	)
	commentHandler := httpAdapter.NewCommentHandler(commentUseCase)
	followHandler := httpAdapter.NewFollowHandler(followUseCase)
	searchHandler := httpAdapter.NewSearchHandler(searchUseCase)
	mediaHandler := httpAdapter.NewMediaHandler(uploadUseCase)

	// Middleware
	authRequired := httpAdapter.AuthRequired(jwtSvc)
	authOptional := httpAdapter.AuthOptional(jwtSvc)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpAdapter.RequestIDMiddleware())
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			if err := dbPool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		users := api.Group("/users")
		{
			users.GET("/search", authOptional, searchHandler.SearchUsers)
			users.GET("/me", authRequired, userHandler.Me)
			users.PATCH("/me", authRequired, userHandler.UpdateMe)
			users.GET("/:id", authOptional, userHandler.Get)
			users.GET("/:id/follow", authOptional, followHandler.Status)
			users.POST("/:id/follow", authRequired, followHandler.Follow)
			users.DELETE("/:id/follow", authRequired, followHandler.Unfollow)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", authOptional, postHandler.List)
			posts.POST("", authRequired, postHandler.Create)
			posts.GET("/search", authOptional, searchHandler.SearchPosts)
			posts.DELETE("/:id", authRequired, postHandler.Delete)
			posts.POST("/:id/likes", authRequired, postHandler.Like)
			posts.DELETE("/:id/likes", authRequired, postHandler.Unlike)
			posts.GET("/:id/likers", authOptional, postHandler.Likers)
			posts.GET("/:id/comments", authOptional, commentHandler.List)
			posts.POST("/:id/comments", authRequired, commentHandler.Create)
		}

		comments := api.Group("/comments")
		{
			comments.PATCH("/:id", authRequired, commentHandler.Update)
			comments.DELETE("/:id", authRequired, commentHandler.Delete)
		}

		api.POST("/uploads", authRequired, mediaHandler.Upload)
	}

	appLogger.Info("server starting on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
