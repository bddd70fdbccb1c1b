package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/fallcore/fallcore/internal/demoui"
	"github.com/fallcore/fallcore/internal/tetris"
	"github.com/fallcore/fallcore/internal/tetris/master"
)

func main() {
	masterMode := flag.Bool("master", false, "run the TGM3 Master progression overlay instead of the base game")
	seed := flag.Uint64("seed", 0, "bag-randomizer seed; 0 picks a random seed")
	verbose := flag.Bool("verbose", false, "log engine debug output to stderr")
	flag.Parse()

	s1, s2 := *seed, *seed+1
	if *seed == 0 {
		s1, s2 = rand.Uint64(), rand.Uint64()
	}
	r := tetris.NewSeededRand(s1, s2)

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	var engine tetris.Engine
	if *masterMode {
		engine = master.New(r, master.WithLogger(logger))
	} else {
		engine = tetris.NewGame(r, tetris.WithLogger(logger))
	}

	p := tea.NewProgram(
		demoui.New(engine),
		tea.WithAltScreen(),
		tea.WithFPS(60),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
