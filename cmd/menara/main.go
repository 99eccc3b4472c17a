package main

import (
	"github.com/smallbiznis/menara/internal/clock"
	"github.com/smallbiznis/menara/internal/config"
	"github.com/smallbiznis/menara/internal/dataset"
	"github.com/smallbiznis/menara/internal/executive"
	"github.com/smallbiznis/menara/internal/logger"
	"github.com/smallbiznis/menara/internal/observability"
	"github.com/smallbiznis/menara/internal/operations"
	"github.com/smallbiznis/menara/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		observability.Module,

		// Functional domains
		dataset.Module,
		executive.Module,
		operations.Module,

		server.Module,
	)
	app.Run()
}
