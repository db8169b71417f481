package main

import (
	"fmt"
	"os"

	"github.com/energen/genquote/internal/auth"
	"github.com/energen/genquote/internal/config"
	"github.com/energen/genquote/internal/db"
	"github.com/energen/genquote/internal/excel"
	httphandler "github.com/energen/genquote/internal/http"
	"github.com/energen/genquote/internal/http/middleware"
	"github.com/energen/genquote/internal/logger"
	"github.com/energen/genquote/internal/pdf"
	"github.com/energen/genquote/internal/repository"
	"github.com/energen/genquote/internal/scheduler"
	"github.com/energen/genquote/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	quoteRepo := repository.NewQuoteRepository(database)

	policy := scheduler.Policy{
		HeavyHoursThreshold: cfg.Scheduler.HeavyHoursThreshold,
		CouplingCeilingKW:   cfg.Scheduler.CouplingCeilingKW,
		WeatherProfiles:     cfg.Scheduler.WeatherProfiles,
		DefaultProfile:      cfg.Scheduler.DefaultProfile,
	}
	sched := scheduler.New(policy, scheduler.DefaultLaborHourTable())

	quoteService := service.NewQuoteService(quoteRepo, sched, pdf.NewGenerator(), excel.NewGenerator(), cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(quoteService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting quote service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
