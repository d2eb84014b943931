package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qna-web-server/config"
	_ "qna-web-server/docs"
	"qna-web-server/internal/handler"
	"qna-web-server/internal/model"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"
	"qna-web-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title QnA-web-server
// @version 1.0
// @description REST API вопросов и ответов с JWT-аутентификацией

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	memberRepo := repository.NewMemberRepository(db)
	postRepo := repository.NewPostRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.CacheSeconds)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	tokenService, err := security.NewTokenService(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка создания JWT сервиса: %v", err)
	}

	authService := service.NewAuthenticationService(memberRepo, tokenService)
	memberService := service.NewMemberService(memberRepo)
	postService := service.NewPostService(postRepo, cacheRepo)
	answerService := service.NewAnswerService(answerRepo, postRepo, cacheRepo)

	authHandler := handler.NewAuthenticationHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	postHandler := handler.NewPostHandler(postService, s3Service, time.Duration(cfg.TTL.PresignSeconds)*time.Second)
	answerHandler := handler.NewAnswerHandler(answerService)

	authManager := security.NewAuthenticationManager(tokenService, memberRepo, exemptRules(cfg))
	router.Use(authManager.Middleware())

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, memberHandler)
	setupMemberRoutes(router, memberHandler)
	setupPostRoutes(router, postHandler, answerHandler)

	runServer(ctx, srv)
}

// exemptRules — маршруты, свободные от проверки токенов. Список берётся из
// конфигурации; пустая конфигурация даёт маршруты по умолчанию.
func exemptRules(cfg *config.AppConfig) []config.ExemptRule {
	if len(cfg.Auth.Exempt) > 0 {
		return cfg.Auth.Exempt
	}
	return []config.ExemptRule{
		{Prefix: "/api/login"},
		{Prefix: "/api/signup"},
		{Prefix: "/swagger"},
		{Prefix: "/error"},
		{Method: http.MethodGet, Prefix: "/public/posts"},
	}
}

func setupAuthRoutes(r chi.Router, authHandler *handler.AuthenticationHandler, memberHandler *handler.MemberHandler) {
	// Логин матчится на любой метод: проверка POST и content-type живёт
	// внутри обработчика и отвечает 405/415 из таблицы ошибок.
	r.HandleFunc("/api/login", authHandler.Login)
	r.Post("/api/signup", memberHandler.Signup)
}

func setupMemberRoutes(r chi.Router, h *handler.MemberHandler) {
	r.Route("/api/members", func(r chi.Router) {
		r.Get("/me", h.Me)

		r.Group(func(r chi.Router) {
			r.Use(security.RequireRole(model.RoleAdmin))
			r.Get("/", h.ListMembers)
			r.Put("/{uuid}/role", h.UpdateRole)
		})
	})
}

func setupPostRoutes(r chi.Router, postHandler *handler.PostHandler, answerHandler *handler.AnswerHandler) {
	r.Get("/public/posts", postHandler.SearchPosts)

	r.Route("/api/posts", func(r chi.Router) {
		r.Post("/", postHandler.CreatePost)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", postHandler.GetPost)
			r.Put("/", postHandler.UpdatePost)
			r.Delete("/", postHandler.DeletePost)

			r.Post("/answers", answerHandler.CreateAnswer)
			r.Get("/answers", answerHandler.ListAnswers)

			r.Post("/attachments", postHandler.PresignUpload)
			r.Get("/attachments", postHandler.PresignDownload)
		})
	})

	r.Put("/api/answers/{uuid}", answerHandler.UpdateAnswer)
	r.Delete("/api/answers/{uuid}", answerHandler.DeleteAnswer)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
