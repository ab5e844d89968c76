package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/jgale/minesweeper-agent/board"
	"github.com/jgale/minesweeper-agent/solver"
)

var log = logrus.New()

var (
	boardPath    string
	mineCount    int
	timeout      time.Duration
	sectionWidth int
	workers      int
	logFile      string
	verbose      bool
	profileCPU   bool
)

func init() {
	flag.StringVar(&boardPath, "board", "-", "board text file ('-' for stdin)")
	flag.IntVar(&mineCount, "mines", 0, "total mine count of the board")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "probabilistic search time budget")
	flag.IntVar(&sectionWidth, "section-width", 0, "target boundary section width (0 = default)")
	flag.IntVar(&workers, "workers", 0, "parallel workers (0 = all CPUs)")
	flag.StringVar(&logFile, "log-file", "", "also log to this rotating file")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&profileCPU, "profile", false, "write a CPU profile to the working directory")
}

func setupLogging() error {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	solver.Log = log

	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to set up log file: %w", err)
	}
	log.AddHook(hook)
	return nil
}

func readBoard() (*board.Snapshot, error) {
	var (
		text []byte
		err  error
	)
	if boardPath == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(boardPath)
	}
	if err != nil {
		return nil, err
	}
	return board.Parse(string(text), mineCount)
}

func run() error {
	snap, err := readBoard()
	if err != nil {
		return fmt.Errorf("unable to read board: %w", err)
	}
	log.WithFields(logrus.Fields{
		"size":      fmt.Sprintf("%dx%d", snap.Width, snap.Height),
		"mines":     snap.Mines,
		"covered":   len(snap.Covered),
		"flagged":   len(snap.Flagged),
		"clues":     len(snap.Clues),
		"minesLeft": snap.MinesLeft(),
	}).Info("board loaded")
	log.Debug("board:\n", snap.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s := solver.New(snap, solver.Config{
		SectionWidth: sectionWidth,
		Workers:      workers,
	})
	moves, err := s.Moves(ctx)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		log.Info("nothing left to do")
		return nil
	}

	for _, m := range moves {
		x, y := snap.Coords(m.Index)
		fields := logrus.Fields{"tile": fmt.Sprintf("%d:%d", x, y)}
		if m.Guess {
			fields["mineProbability"] = fmt.Sprintf("%.1f%%", m.Probability*100)
		}
		log.WithFields(fields).Info(m.Type.String())
		fmt.Printf("%s %d %d\n", m.Type, x, y)
	}
	return nil
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		log.Fatal(err)
	}
	if profileCPU {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
