// Package main starts the money ledger API server.
package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/vm-it-consulting/moneyapp/cmd/httpserver"
	"github.com/vm-it-consulting/moneyapp/internal/middleware"
	"github.com/vm-it-consulting/moneyapp/pkg/configpkg"
	"github.com/vm-it-consulting/moneyapp/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := dbpkg.Migrate(db, config.MigrationsURL); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply migrations")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("MONEY LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
