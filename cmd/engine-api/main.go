package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/jikanwari-engine/internal/handler"
	"github.com/noah-isme/jikanwari-engine/internal/middleware"
	"github.com/noah-isme/jikanwari-engine/internal/service"
	"github.com/noah-isme/jikanwari-engine/pkg/config"
	"github.com/noah-isme/jikanwari-engine/pkg/logger"
	corsmiddleware "github.com/noah-isme/jikanwari-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/jikanwari-engine/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	solverSvc := service.NewSolverService(validate, logr, metricsSvc, service.SolverServiceConfig{
		DefaultTimeout:     cfg.Solver.DefaultTimeout,
		DefaultMaxPatterns: cfg.Solver.DefaultMaxPatterns,
		PatternTTL:         cfg.Solver.PatternTTL,
		MaxLessonBlocks:    cfg.Solver.MaxLessonBlocks,
	})
	evalSvc := service.NewEvaluationService(validate, logr)
	suggestionSvc := service.NewSuggestionService(validate, logr, metricsSvc, service.SuggestionServiceConfig{
		TopK: cfg.Suggestion.TopK,
	})
	electiveSvc := service.NewElectiveService(validate, logr, metricsSvc, service.ElectiveServiceConfig{
		SwapPasses:        cfg.Elective.SwapPasses,
		UnassignedPenalty: cfg.Elective.UnassignedPenalty,
	})

	solverHandler := handler.NewSolverHandler(solverSvc)
	evalHandler := handler.NewEvaluationHandler(evalSvc)
	suggestionHandler := handler.NewSuggestionHandler(suggestionSvc)
	electiveHandler := handler.NewElectiveHandler(electiveSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		timetable := api.Group("/timetable")
		timetable.POST("/solve", solverHandler.Solve)
		timetable.GET("/patterns/:id", solverHandler.Patterns)
		timetable.POST("/evaluate", evalHandler.Evaluate)

		suggestions := api.Group("/suggestions")
		suggestions.POST("/substitute", suggestionHandler.Substitutes)
		suggestions.POST("/supervisor", suggestionHandler.Supervisors)
		suggestions.POST("/reschedule", suggestionHandler.Reschedule)

		api.POST("/electives/grouping", electiveHandler.Group)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
