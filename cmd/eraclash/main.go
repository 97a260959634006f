package main

import (
	"errors"
	"os"
	"time"

	"github.com/eracards/eraclash/internal/api"
	"github.com/eracards/eraclash/internal/config"
	"github.com/eracards/eraclash/internal/constants"
	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/logging"
	"github.com/eracards/eraclash/internal/service"
	"github.com/eracards/eraclash/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	rules := engine.DefaultRules()

	// Load the card catalog (required). Path may be provided via
	// ERACLASH_CONFIG env var or defaults to ./eraclash_config.json in
	// the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./eraclash_config.json"
	}
	cfg, unknownTags, err := config.LoadConfig(configPath, rules)
	if err != nil {
		logging.Fatal("Missing or invalid card configuration", err, logging.Fields{"config_path": configPath, "hint": "create an eraclash_config.json with a 'card_list' array of card objects (name,era,strength,damage,ability,ability_name,ability_description,art) and optional keys: server.address, action_timeout_seconds, public_matches_ttl_seconds"})
	}
	for _, tag := range unknownTags {
		logging.Warn("card catalog references an unknown ability; it will have no effect", logging.Fields{constants.LogFieldAbility: string(tag)})
	}
	defsByName := cfg.CardsByName()

	// Starter decks are optional; players can always submit their own.
	decksPath := os.Getenv(constants.EnvDecksPath)
	if decksPath == "" {
		decksPath = "./decks.yaml"
	}
	starterDecks, err := config.LoadStarterDecks(decksPath, defsByName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("no starter deck file found; players must submit their own decks", logging.Fields{"decks_path": decksPath})
		} else {
			logging.Fatal("Invalid starter deck file", err, logging.Fields{"decks_path": decksPath})
		}
	}

	// Allow the DB path to be configured via ERACLASH_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/eraclash.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Cards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db, cfg.Cards, cfg.PublicMatchesTTL)
	handler := api.NewMatchHandler(repo, rules, defsByName, starterDecks, cfg.ActionTimeout)
	authHandler := api.NewAuthHandler(repo)

	// Background scanner: periodically pick up matches whose action
	// deadline has passed and auto-play for the idle actor.
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			matches, err := repo.FindTimedOutMatches(time.Now())
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			for _, m := range matches {
				if err := service.HandleTimedOutMatch(rules, repo, m.ID, cfg.ActionTimeout); err != nil {
					logging.Error("failed to handle timed out match", err, logging.Fields{constants.LogFieldMatchID: m.ID})
				}
			}
		}
	}()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RouteStarterDecks, handler.ListStarterDecks)
		apiRoutes.GET(constants.RoutePublicMatches, handler.ListPublicMatches)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteMatchesJoin, handler.JoinMatch)
		protected.GET(constants.RouteMatchByCode, handler.GetMatch)
		protected.POST(constants.RouteMatchStart, handler.StartMatch)
		protected.POST(constants.RouteMatchEnd, handler.EndMatch)
		protected.POST(constants.RouteMatchLeave, handler.LeaveMatch)
		protected.POST(constants.RouteMatchSelectCard, handler.SelectCard)
		protected.POST(constants.RouteMatchWager, handler.SubmitWager)
		protected.POST(constants.RouteMatchCancel, handler.CancelSelection)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
