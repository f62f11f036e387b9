package main

import (
	"context"
	"log"
	"os"

	"github.com/pocketlegal/pocketlegal/internal/app/cli"
	"github.com/pocketlegal/pocketlegal/internal/app/config"
	"github.com/pocketlegal/pocketlegal/internal/buildinfo"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
