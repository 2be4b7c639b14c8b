package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/fspro/attendance-backend-go/internal/config"
	appHTTP "github.com/fspro/attendance-backend-go/internal/handler/http"
	"github.com/fspro/attendance-backend-go/internal/pkg/database"
	"github.com/fspro/attendance-backend-go/internal/pkg/docstore"
	"github.com/fspro/attendance-backend-go/internal/pkg/jwt"
	"github.com/fspro/attendance-backend-go/internal/pkg/sse"
	repository "github.com/fspro/attendance-backend-go/internal/repository/docstore"
	authService "github.com/fspro/attendance-backend-go/internal/service/auth"
	lateAttendanceService "github.com/fspro/attendance-backend-go/internal/service/lateattendance"
)

func newStore(cfg *config.Config) (docstore.Store, error) {
	switch cfg.Store.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return docstore.NewPostgresStore(context.Background(), db)
	case "mongo":
		return docstore.NewMongoStore(cfg.Mongo.URI, cfg.Mongo.Name)
	case "memory":
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize document store: ", err)
	}
	if cfg.Store.CacheDir != "" {
		store, err = docstore.NewMirrorStore(store, cfg.Store.CacheDir)
		if err != nil {
			log.Fatal("Failed to initialize local cache: ", err)
		}
	}

	recordRepo := repository.NewLateCheckInRepository(store)
	timeTableRepo := repository.NewTimeTableRepository(store)
	userRepo := repository.NewUserRepository(store)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := authService.NewAuthService(userRepo, JWTService)
	lateSvc := lateAttendanceService.NewLateAttendanceService(recordRepo, timeTableRepo, hub)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	lateAttendanceHandler := appHTTP.NewLateAttendanceHandler(lateSvc, JWTService, hub)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		lateAttendanceHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
