package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sunstack-labs/sunstack/internal/config"
	"github.com/sunstack-labs/sunstack/internal/consumption"
	"github.com/sunstack-labs/sunstack/internal/location"
	"github.com/sunstack-labs/sunstack/internal/migration"
	"github.com/sunstack-labs/sunstack/internal/observability"
	"github.com/sunstack-labs/sunstack/internal/server"
	"github.com/sunstack-labs/sunstack/internal/subsidy"
	"github.com/sunstack-labs/sunstack/pkg/db"
	"github.com/sunstack-labs/sunstack/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		subsidy.Module,
		consumption.Module,
		location.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
