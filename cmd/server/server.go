package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/config"
	"github.com/zucenko/pathwalker/model"
	"github.com/zucenko/pathwalker/server"
)

type Server struct {
	router      *way.Router
	BoardServer *server.BoardServer
}

func main() {
	configPath := flag.String("config", "", "YAML board configuration")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalln(err)
		}
		cfg = loaded
	} else {
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			log.Fatalln(err)
		}
		log.Printf("No config, defaulting to %dx%d board on port %s", cfg.Size, cfg.Size, cfg.Port)
	}
	cfg.Setup()

	template, err := loadTemplate(cfg)
	if err != nil {
		log.Fatalln(err)
	}

	s := Server{
		BoardServer: server.NewBoardServer(template, cfg.StepDelay),
	}
	go s.BoardServer.Loop(context.Background())
	s.routes()
	log.Printf("Serving %dx%d board from %v to %v on :%s", template.Size, template.Size, template.Start, template.End, cfg.Port)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, s.router))
}

func loadTemplate(cfg *config.Config) (*model.Grid, error) {
	if cfg.Layout != "" {
		return server.LoadLayout(cfg.Layout)
	}
	return model.NewGrid(cfg.Board())
}
