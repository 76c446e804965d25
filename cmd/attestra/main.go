package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/attestra/attestra/internal/config"
	"github.com/attestra/attestra/internal/migration"
	"github.com/attestra/attestra/internal/observability"
	"github.com/attestra/attestra/internal/server"
	"github.com/attestra/attestra/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
