package server

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
)

// LoadLayout reads a text board: '#' obstacle, '.' or ' ' free, 'S' start,
// 'E' end. Lines are rows, characters columns. Missing S and E default to
// the top-left and bottom-right corners.
func LoadLayout(path string) (*model.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening layout: %w", err)
	}
	defer file.Close()
	g, err := ReadLayout(file)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	log.Infof("loaded %dx%d layout %s with %d obstacles", g.Size, g.Size, path, len(g.Obstacles()))
	return g, nil
}

func ReadLayout(reader io.Reader) (*model.Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// trailing blank lines are not rows
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	size := len(lines)
	if size == 0 {
		return nil, fmt.Errorf("empty layout")
	}

	cfg := model.SquareConfig(size)
	var start, end *model.Coord
	obstacles := make([]model.Coord, 0)
	for row, line := range lines {
		if len(line) != size {
			return nil, fmt.Errorf("line %d: %d cells, want %d for a square layout", row+1, len(line), size)
		}
		for col, char := range line {
			c := model.Coord{X: col, Y: row}
			switch char {
			case '#':
				obstacles = append(obstacles, c)
			case '.', ' ':
			case 'S':
				if start != nil {
					return nil, fmt.Errorf("line %d col %d: second start, first at %v", row+1, col+1, *start)
				}
				start = &c
			case 'E':
				if end != nil {
					return nil, fmt.Errorf("line %d col %d: second end, first at %v", row+1, col+1, *end)
				}
				end = &c
			default:
				return nil, fmt.Errorf("line %d col %d: unexpected %q", row+1, col+1, char)
			}
		}
	}
	if start != nil {
		cfg.Start = *start
	}
	if end != nil {
		cfg.End = *end
	}

	g, err := model.NewGrid(cfg)
	if err != nil {
		return nil, err
	}
	for _, c := range obstacles {
		if err := g.SetObstacle(c, true); err != nil {
			return nil, err
		}
	}
	return g, nil
}
