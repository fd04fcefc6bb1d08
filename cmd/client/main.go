package main

import (
	"context"
	"log"

	"github.com/drfoodie/nutritrack/internal/client/cli"
	"github.com/drfoodie/nutritrack/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
