// Command walk runs one walk on a board without a server and prints it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/config"
	"github.com/zucenko/pathwalker/model"
	"github.com/zucenko/pathwalker/render"
	"github.com/zucenko/pathwalker/server"
	"github.com/zucenko/pathwalker/walker"
)

func loadGrid(configPath, layoutPath string, size int) (*model.Grid, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if size > 0 {
		cfg.Size = size
	}
	cfg.Setup()
	if layoutPath == "" {
		layoutPath = cfg.Layout
	}
	if layoutPath != "" {
		return server.LoadLayout(layoutPath)
	}
	return model.NewGrid(cfg.Board())
}

func run() int {
	var configPath, layoutPath, outFilename string
	var size int
	var showSteps bool
	flag.StringVar(&configPath, "config", "",
		"An optional YAML board configuration.")
	flag.StringVar(&layoutPath, "layout", "",
		"An optional text layout, overrides the configured one.")
	flag.IntVar(&size, "size", 0,
		"The board dimension when neither config nor layout is given.")
	flag.BoolVar(&showSteps, "steps", false,
		"If set, prints every visit and unvisit.")
	flag.StringVar(&outFilename, "output_file", "",
		"The name of a .png file to which the board will be saved.")
	flag.Parse()

	grid, err := loadGrid(configPath, layoutPath, size)
	if err != nil {
		log.Errorf("Failed loading board: %s", err)
		return 1
	}

	recorder := &walker.Recorder{}
	result, err := walker.FindPath(context.Background(), grid, recorder)
	if err != nil && !errors.Is(err, walker.ErrNoPath) {
		log.Errorf("Walk failed: %s", err)
		return 1
	}
	if showSteps {
		for _, s := range recorder.Steps {
			fmt.Println(s)
		}
	}
	labels := render.Labels(recorder.Steps)
	fmt.Print(render.Text(grid, labels))
	if result.Found {
		log.Infof("Path of %d cells found in %d iterations, %d dead ends", len(result.Path), result.Iterations, len(result.DeadEnds))
	} else {
		log.Warnf("No path after %d iterations, %d dead ends", result.Iterations, len(result.DeadEnds))
	}

	if outFilename == "" {
		return exitCode(result)
	}
	pic, err := render.Image(grid, labels)
	if err != nil {
		log.Errorf("Error drawing board: %s", err)
		return 1
	}
	f, err := os.Create(outFilename)
	if err != nil {
		log.Errorf("Error creating output file %s: %s", outFilename, err)
		return 1
	}
	defer f.Close()
	if err = png.Encode(f, pic); err != nil {
		log.Errorf("Error writing image to %s: %s", outFilename, err)
		return 1
	}
	log.Infof("Image %s written OK.", outFilename)
	return exitCode(result)
}

func exitCode(result walker.Result) int {
	if result.Found {
		return 0
	}
	return 2
}

func main() {
	os.Exit(run())
}
