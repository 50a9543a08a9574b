package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"kirosh/internal/audio"
	"kirosh/internal/config"
	"kirosh/internal/game"
	"kirosh/internal/logging"
	"kirosh/internal/save"
	"kirosh/internal/scoring"
	"kirosh/internal/state"
)

type options struct {
	dataDir     string
	logLevel    string
	leaderboard string
	newGame     bool
	noAudio     bool
	noHints     bool
	bell        bool
	top         bool
}

func parseFlags() options {
	var o options

	flag.StringVar(&o.dataDir, "data", "", "Directory for saves, profile and logs")
	flag.StringVar(&o.dataDir, "d", "", "Data directory (shorthand)")

	flag.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	flag.StringVar(&o.leaderboard, "leaderboard", "", "Leaderboard server URL")
	flag.StringVar(&o.leaderboard, "l", "", "Leaderboard server URL (shorthand)")

	flag.BoolVar(&o.newGame, "new", false, "Discard any saved game and start over")
	flag.BoolVar(&o.newGame, "n", false, "Start a new game (shorthand)")

	flag.BoolVar(&o.noAudio, "no-audio", false, "Disable sound cues")
	flag.BoolVar(&o.noHints, "no-hints", false, "Disable hints")
	flag.BoolVar(&o.bell, "bell", false, "Ring the terminal bell for Morse signals")

	flag.BoolVar(&o.top, "top", false, "Print the leaderboard and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "    -d, --data=DIR          Directory for saves, profile and logs\n")
		fmt.Fprintf(os.Stderr, "        --log-level=LEVEL   Log level (debug, info, warn, error)\n")
		fmt.Fprintf(os.Stderr, "    -l, --leaderboard=URL   Leaderboard server URL (default: local database)\n")
		fmt.Fprintf(os.Stderr, "    -n, --new               Discard any saved game and start over\n")
		fmt.Fprintf(os.Stderr, "        --no-audio          Disable sound cues\n")
		fmt.Fprintf(os.Stderr, "        --no-hints          Disable hints\n")
		fmt.Fprintf(os.Stderr, "        --bell              Ring the terminal bell for Morse signals\n")
		fmt.Fprintf(os.Stderr, "        --top               Print the leaderboard and exit\n")
		fmt.Fprintf(os.Stderr, "    -h, --help              Show this help message\n")
	}

	flag.Parse()
	return o
}

// apply overrides cfg with the flags that were set.
func (o options) apply(cfg *config.Config) {
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
		cfg.LeaderboardDB = filepath.Join(o.dataDir, "leaderboard.db")
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.leaderboard != "" {
		cfg.LeaderboardURL = o.leaderboard
	}
}

// openLeaderboard picks the HTTP leaderboard when a URL is configured and
// the local SQLite database otherwise.
func openLeaderboard(cfg config.Config) (scoring.Leaderboard, io.Closer, error) {
	if cfg.LeaderboardURL != "" {
		return scoring.NewClient(cfg.LeaderboardURL, nil), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LeaderboardDB), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create leaderboard dir: %w", err)
	}
	store, err := scoring.OpenSQLite(cfg.LeaderboardDB)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

func printLeaderboard(ctx context.Context, board *scoring.Submitter) error {
	entries, err := board.List(ctx, leaderboardSize)
	if err != nil {
		return fmt.Errorf("list leaderboard: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No scores yet.")
		return nil
	}
	for i, e := range entries {
		fmt.Printf("%2d. %-20s %6s  %-9s %s\n", i+1, e.PlayerName, state.FormatLeaderboard(e.Duration()),
			e.EndingType, e.CompletedAt.Local().Format("2006-01-02"))
	}
	return nil
}

func retryPending(board *scoring.Submitter, log zerolog.Logger) {
	if !board.HasPending() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sent, err := board.RetryPending(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("pending score still undelivered")
		return
	}
	if sent {
		log.Info().Msg("pending score delivered")
	}
}

func run(o options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o.apply(&cfg)

	log, logFile, err := logging.OpenFile(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	leaderboard, closeBoard, err := openLeaderboard(cfg)
	if err != nil {
		return err
	}
	defer closeBoard.Close()
	board := scoring.NewSubmitter(leaderboard, scoring.NewJSONFileStorage(cfg.DataDir), log)

	if o.top {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return printLeaderboard(ctx, board)
	}
	retryPending(board, log)

	profiles := save.NewProfileStore(cfg.DataDir, log)
	prefs := profiles.Load().Preferences
	if o.noAudio {
		prefs.AudioEnabled = false
	}
	if o.noHints {
		prefs.HintsEnabled = false
	}

	sinks := []audio.Sink{audio.LogSink{Log: log}}
	if o.bell {
		sinks = append(sinks, &audio.Bell{W: os.Stderr})
	}

	engine := game.New(game.Options{
		Ghost:             cfg.Ghost(),
		HintPoll:          cfg.HintPoll,
		MorseAutoComplete: cfg.MorseAutoComplete,
		Preferences:       prefs,
	}, game.Deps{
		Store:   save.NewFileStore(cfg.DataDir, log),
		Profile: profiles,
		Scores:  board,
		Audio:   audio.Multi(sinks...),
		Log:     log,
	})
	defer func() {
		if err := engine.Close(); err != nil {
			log.Warn().Err(err).Msg("could not save game on exit")
		}
	}()

	restored := false
	if o.newGame {
		engine.Reset()
	} else if restored, err = engine.Restore(); err != nil {
		log.Warn().Err(err).Msg("could not restore saved game")
	}

	p := tea.NewProgram(newLocalState(engine, board, restored), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "kirosh: %v\n", err)
		os.Exit(1)
	}
}
