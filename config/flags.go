package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Flags holds parsed command-line flags.
type Flags struct {
	Help bool

	Difficulty int
	LogLevel   string
	LogJSON    bool
	Peers      string

	// Args are the remaining positional arguments: [port] [node_id].
	Args []string
}

// ParseFlags parses command-line flags.
func ParseFlags() *Flags {
	f := &Flags{}
	fs := flag.NewFlagSet("noded", flag.ContinueOnError)

	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.IntVar(&f.Difficulty, "difficulty", DefaultDifficulty, "Initial mining difficulty (1-5)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")
	fs.StringVar(&f.Peers, "peer", "", "Comma-separated peer URLs to register at startup")

	fs.Usage = func() {
		printUsage()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	f.Args = fs.Args()
	return f
}

// ToConfig turns parsed flags and positional arguments into a Config.
// Port defaults to 5000; node_id defaults to a fresh random identifier.
func ToConfig(f *Flags) (*Config, error) {
	cfg := &Config{
		Port:       DefaultPort,
		NodeID:     strings.ReplaceAll(uuid.New().String(), "-", ""),
		Difficulty: f.Difficulty,
		Log: LogConfig{
			Level: f.LogLevel,
			JSON:  f.LogJSON,
		},
	}

	if len(f.Args) >= 1 && f.Args[0] != "" {
		port, err := strconv.Atoi(f.Args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", f.Args[0], err)
		}
		cfg.Port = port
	}
	if len(f.Args) >= 2 && f.Args[1] != "" {
		cfg.NodeID = f.Args[1]
	}

	if f.Peers != "" {
		cfg.Peers = parseStringList(f.Peers)
	}

	if cfg.Difficulty < MinDifficulty || cfg.Difficulty > MaxDifficulty {
		return nil, fmt.Errorf("difficulty %d out of range [%d,%d]", cfg.Difficulty, MinDifficulty, MaxDifficulty)
	}

	return cfg, nil
}

func parseStringList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printUsage() {
	usage := `noded - a toy proof-of-work mining node

Usage:
  noded [port] [node_id] [options]
  noded --help

Positional arguments (both optional):
  port       HTTP listen port (default: 5000)
  node_id    This node's identifier (default: random 32-char hex)

Options:
  --difficulty N   Initial mining difficulty, 1-5 (default: 3)
  --log-level L    Log level: debug, info, warn, error (default: info)
  --log-json       Output logs as JSON
  --peer URL,URL   Comma-separated peer URLs to register at startup

Examples:
  noded
  noded 5001 bob --peer http://localhost:5000
`
	fmt.Print(usage)
}
