package app

import (
	"context"
	"fmt"
	"time"

	"buddymatch_backend/database"
	"buddymatch_backend/internal/algorithms"
	"buddymatch_backend/internal/config"
	"buddymatch_backend/internal/geo"
	"buddymatch_backend/internal/handlers"
	"buddymatch_backend/internal/logger"
	"buddymatch_backend/internal/middleware"
	"buddymatch_backend/internal/repositories"
	"buddymatch_backend/internal/routes"
	"buddymatch_backend/internal/services"
	"buddymatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	resolver, err := geo.LoadResolver(cfg.Geo.PostalTablePath)
	if err != nil {
		logger.Fatal("Failed to load postal table", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, resolver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proposalWorker := workers.NewProposalWorker(repositories.NewProposalRepository(gormDB))
	proposalWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, resolver geo.Resolver) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB, resolver)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, resolver geo.Resolver) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	pairScoreRepo := repositories.NewPairScoreRepository(gormDB)
	proposalRepo := repositories.NewProposalRepository(gormDB)
	matchRepo := repositories.NewMatchRepository(gormDB)
	orgRepo := repositories.NewOrganizationRepository(gormDB)
	activityRepo := repositories.NewActivityRepository(gormDB)

	scorer := algorithms.NewScorer(resolver, algorithms.Weights{
		Language:     cfg.Matching.LanguageWeight,
		Distance:     cfg.Matching.DistanceWeight,
		Availability: cfg.Matching.AvailabilityWeight,
	}, cfg.Matching.MaxDistanceKM)

	scoringService := services.NewScoringService(userRepo, pairScoreRepo, scorer)
	matchService := services.NewMatchService(matchRepo, pairScoreRepo, userRepo, scoringService)
	proposalService := services.NewProposalService(
		proposalRepo, matchRepo, pairScoreRepo, userRepo, matchService,
		time.Duration(cfg.Matching.ProposalTTLHours)*time.Hour,
	)
	journeyService := services.NewJourneyService(matchRepo, activityRepo, services.JourneyThresholds{
		InactivityDays:   cfg.Journey.InactivityDays,
		MaturityWeeks:    cfg.Journey.MaturityWeeks,
		MinContactVolume: cfg.Journey.MinContactVolume,
	})
	organizationService := services.NewOrganizationService(orgRepo, userRepo, resolver, services.OrganizationWeights{
		Distance:    cfg.Organization.DistanceWeight,
		Capacity:    cfg.Organization.CapacityWeight,
		MinCapacity: cfg.Organization.MinCapacity,
		MaxCapacity: cfg.Organization.MaxCapacity,
	})
	authService := services.NewAuthService(userRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		ScoringService:      scoringService,
		ProposalService:     proposalService,
		MatchService:        matchService,
		JourneyService:      journeyService,
		OrganizationService: organizationService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler()

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(services.AuthService),
		MatchingHandler:     handlers.NewMatchingHandler(baseHandler, services.ScoringService, services.ProposalService, services.MatchService),
		JourneyHandler:      handlers.NewJourneyHandler(baseHandler, services.JourneyService),
		OrganizationHandler: handlers.NewOrganizationHandler(baseHandler, services.OrganizationService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
