package main

import (
	"context"

	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool             `help:"Включить debug-логирование."`
		Version kong.VersionFlag `help:"Показать версию."`

		Serve   ServeCmd   `cmd:"" default:"1" help:"Запустить HTTP-сервер."`
		Migrate MigrateCmd `cmd:"" help:"Применить миграции и выйти."`
		Seed    SeedCmd    `cmd:"" help:"Наполнить БД демо-организациями и выйти."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("org-registry"),
		kong.Description("Реестр организаций и филиалов."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
