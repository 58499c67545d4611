package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/auth"
	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/application/project"
	"github.com/niloofarsh/taskhub/internal/application/task"
	"github.com/niloofarsh/taskhub/internal/config"
	infraauth "github.com/niloofarsh/taskhub/internal/infrastructure/auth"
	httprouter "github.com/niloofarsh/taskhub/internal/infrastructure/http"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/handlers"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/persistence/db"
	"github.com/niloofarsh/taskhub/internal/infrastructure/persistence/postgres"
	"github.com/niloofarsh/taskhub/internal/infrastructure/queue"
	"github.com/niloofarsh/taskhub/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	if cfg.Admin.Email != "" {
		if _, err := pool.Exec(ctx, `UPDATE users SET role = 'admin' WHERE email = $1`, cfg.Admin.Email); err != nil {
			log.Warn().Err(err).Msg("promote admin account")
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	var events ports.EventEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		events = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		events = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	expiry := time.Duration(cfg.JWT.Expiry) * time.Second
	codec := infraauth.NewTokenCodec([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, expiry)

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, codec, expiry)
	createProjectUC := project.NewCreate(projectRepo)
	listProjectsUC := project.NewList(projectRepo)
	updateProjectUC := project.NewUpdate(projectRepo)
	deleteProjectUC := project.NewDelete(projectRepo, taskRepo, events)
	createTaskUC := task.NewCreate(taskRepo, userRepo, events)
	listTasksUC := task.NewList(taskRepo)
	getTaskUC := task.NewGet(taskRepo, projectRepo)
	updateTaskUC := task.NewUpdate(taskRepo, projectRepo, userRepo, events)
	deleteTaskUC := task.NewDelete(taskRepo, projectRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, userRepo, log)
	projectsHandler := handlers.NewProjectsHandler(createProjectUC, listProjectsUC, updateProjectUC, deleteProjectUC, listTasksUC, log)
	tasksHandler := handlers.NewTasksHandler(createTaskUC, listTasksUC, getTaskUC, updateTaskUC, deleteTaskUC, log)
	usersHandler := handlers.NewUsersHandler(userRepo, log)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(cfg.RateLimit.PerUser)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.IsDev))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	requireAuth := middleware.NewAuthenticator(codec, userRepo, log).Handler
	projectAccess := middleware.NewProjectAccess(projectRepo, log).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		ProjectsHandler: projectsHandler,
		TasksHandler:    tasksHandler,
		UsersHandler:    usersHandler,
		HealthHandler:   healthHandler,
		RequireAuth:     requireAuth,
		ProjectAccess:   projectAccess,
		Log:             log,
		Secure:          secureMiddleware,
		CORS:            corsMiddleware,
		IPRateLimit:     ipLimit,
		UserRateLimit:   userLimit,
		Metrics:         cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
