package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/mitchelldurbincs/bridgefront/internal/config"
	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
	"github.com/mitchelldurbincs/bridgefront/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/bridgefront/internal/game/mapgen"
	"github.com/mitchelldurbincs/bridgefront/internal/game/states"
	"github.com/mitchelldurbincs/bridgefront/internal/replay"
	"github.com/mitchelldurbincs/bridgefront/internal/selection"
	"github.com/mitchelldurbincs/bridgefront/internal/targeting"
)

const usage = `usage: targetctl <command> [flags]

commands:
  candidates  print the highlight sets after a sequence of picks
  submit      apply picks and print the resulting action command
  replay      extract combat sequences from an action log
  demo        print a generated demo snapshot
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "candidates":
		err = runCandidates(os.Args[2:], false)
	case "submit":
		err = runCandidates(os.Args[2:], true)
	case "replay":
		err = runReplay(os.Args[2:])
	case "demo":
		err = runDemo(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Command failed")
	}
}

// commonFlags registers the flags every command shares
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to config file")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
}

// load initializes configuration and logging from the parsed flags
func (c *commonFlags) load() (*config.Config, error) {
	if err := config.Init(c.configPath); err != nil {
		return nil, fmt.Errorf("initialize config: %w", err)
	}
	cfg := config.Get()
	if c.logLevel == "" {
		c.logLevel = cfg.Logging.Level
	}
	setupLogging(c.logLevel, cfg.Logging.Format)
	return cfg, nil
}

func runCandidates(args []string, doSubmit bool) error {
	name := "candidates"
	if doSubmit {
		name = "submit"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	snapshotPath := fs.String("snapshot", "", "Path to a snapshot JSON file (empty to generate a demo board)")
	catalogPath := fs.String("catalog", "", "Path to a card catalog JSON file")
	cardID := fs.String("card", targeting.ActionMove, "Card or action id to select")
	picks := fs.String("picks", "", "Semicolon-separated picks: hex:q,r edge:a|b player:id split:forces=N,champions=BOOL")
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(*snapshotPath, cfg)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		return err
	}
	steps, err := parsePicks(*picks)
	if err != nil {
		return err
	}

	bus := events.NewEventBus(log.Logger)
	eventLogger := subscribers.NewLoggerSubscriber("targetctl", log.Logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(cfg.Logging.Level == "debug")
	bus.Subscribe(eventLogger)

	session := selection.NewSession(cfg.SessionConfig(), catalog, bus, log.Logger)
	session.Update(snap)
	if _, err := session.Select(*cardID); err != nil {
		return err
	}
	for _, step := range steps {
		step.apply(session)
	}

	if !doSubmit {
		return printJSON(candidatesOutput(session))
	}

	cmd, err := session.Submit()
	if err != nil {
		return err
	}
	st, err := cmd.ToStruct()
	if err != nil {
		return err
	}
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

type candidatesResult struct {
	CardID         string            `json:"cardId"`
	Kind           targeting.Kind    `json:"kind"`
	Ready          bool              `json:"ready"`
	Payload        targeting.Payload `json:"payload,omitempty"`
	StartHexes     []string          `json:"startHexes"`
	CandidateHexes []string          `json:"candidateHexes"`
	CandidateEdges []string          `json:"candidateEdges"`
}

func candidatesOutput(s *selection.Session) candidatesResult {
	st := s.State()
	c := s.Candidates()
	out := candidatesResult{
		CardID:         st.CardID(),
		Kind:           st.Kind(),
		Ready:          st.Ready(),
		StartHexes:     []string{},
		CandidateHexes: []string{},
		CandidateEdges: []string{},
	}
	if p, ok := st.Payload(); ok {
		out.Payload = p
	}
	for _, k := range c.StartHexes.Sorted() {
		out.StartHexes = append(out.StartHexes, string(k))
	}
	for _, k := range c.CandidateHexes.Sorted() {
		out.CandidateHexes = append(out.CandidateHexes, string(k))
	}
	for _, k := range c.CandidateEdges.Sorted() {
		out.CandidateEdges = append(out.CandidateEdges, string(k))
	}
	return out
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	logPath := fs.String("log", "", "Path to an action log JSON array (required)")
	_ = fs.Parse(args)

	if _, err := common.load(); err != nil {
		return err
	}
	if *logPath == "" {
		return fmt.Errorf("-log is required")
	}

	data, err := os.ReadFile(*logPath)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	entries, err := events.DecodeLog(data)
	if err != nil {
		return err
	}

	sequences, stats := replay.NewExtractor(log.Logger).Extract(entries)
	return printJSON(struct {
		Sequences []replay.Sequence `json:"sequences"`
		Stats     replay.Stats      `json:"stats"`
	}{sequences, stats})
}

func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	seed := fs.Int64("seed", 0, "RNG seed (0 to use config default)")
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *seed != 0 {
		if err := config.Set("demo.seed", *seed); err != nil {
			return err
		}
	}
	snap, err := demoSnapshot(cfg)
	if err != nil {
		return err
	}
	return printJSON(snap)
}

func loadSnapshot(path string, cfg *config.Config) (selection.Snapshot, error) {
	if path == "" {
		return demoSnapshot(cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return selection.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return selection.DecodeSnapshot(data)
}

func loadCatalog(path string) (*targeting.Catalog, error) {
	if path == "" {
		return targeting.NewCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	catalog, err := targeting.DecodeCatalog(data)
	if err != nil {
		if catalog == nil {
			return nil, err
		}
		log.Warn().Err(err).Msg("Catalog has unusable entries")
	}
	return catalog, nil
}

// demoSnapshot generates a board seen by the first player during the action phase
func demoSnapshot(cfg *config.Config) (selection.Snapshot, error) {
	mapCfg := mapgen.DefaultMapConfig(cfg.Demo.BoardRadius, cfg.Demo.Players)
	board, err := mapgen.NewGenerator(mapCfg, rand.New(rand.NewSource(cfg.Demo.Seed))).GenerateMap()
	if err != nil {
		return selection.Snapshot{}, fmt.Errorf("generate demo board: %w", err)
	}
	log.Debug().
		Int("radius", mapCfg.Radius).
		Int("players", mapCfg.PlayerCount).
		Int64("seed", cfg.Demo.Seed).
		Int("bridges", len(board.Bridges)).
		Msg("Generated demo board")
	return selection.Snapshot{
		Board:    board,
		PlayerID: mapgen.PlayerID(0),
		Phase:    states.PhaseAction,
		Round:    1,
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so stdout stays machine-readable
	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
