package config

import (
	"io"

	"github.com/lgbarn/chessbot-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build validates and returns the built Config.
func (b *ConfigBuilder) Build() (*Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// WithMode sets the mode.
func (b *ConfigBuilder) WithMode(mode Mode) *ConfigBuilder {
	b.cfg.Mode = mode
	return b
}

// WithStrategem sets the bot's strategem, and White's in arena mode.
func (b *ConfigBuilder) WithStrategem(name string) *ConfigBuilder {
	b.cfg.Strategem = name
	return b
}

// WithOpponentStrategem sets Black's strategem in arena mode.
func (b *ConfigBuilder) WithOpponentStrategem(name string) *ConfigBuilder {
	b.cfg.OpponentStrategem = name
	return b
}

// WithSeed sets the random seed.
func (b *ConfigBuilder) WithSeed(seed uint64) *ConfigBuilder {
	b.cfg.Seed = seed
	return b
}

// WithBotSide sets the side the bot plays.
func (b *ConfigBuilder) WithBotSide(side chess.Colour) *ConfigBuilder {
	b.cfg.BotSide = side
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithListenAddr sets the address served in serve mode.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.ListenAddr = addr
	return b
}

// WithAccessLog sets where the HTTP access log is written.
func (b *ConfigBuilder) WithAccessLog(w io.Writer) *ConfigBuilder {
	b.cfg.AccessLog = w
	return b
}

// WithArena sets the arena game count, worker count and ply cap.
func (b *ConfigBuilder) WithArena(games, workers, maxPlies int) *ConfigBuilder {
	b.cfg.Games = games
	b.cfg.Workers = workers
	b.cfg.MaxPlies = maxPlies
	return b
}

// WithPGNFile sets where arena games are written.
func (b *ConfigBuilder) WithPGNFile(path string) *ConfigBuilder {
	b.cfg.PGNFile = path
	return b
}

// WithPerftDepth sets the perft depth.
func (b *ConfigBuilder) WithPerftDepth(depth int) *ConfigBuilder {
	b.cfg.PerftDepth = depth
	return b
}

// WithDivide makes perft print the count below each root move.
func (b *ConfigBuilder) WithDivide(divide bool) *ConfigBuilder {
	b.cfg.PerftDivide = divide
	return b
}

// WithInput sets the move input stream.
func (b *ConfigBuilder) WithInput(r io.Reader) *ConfigBuilder {
	b.cfg.Input = r
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.Output = w
	return b
}

// WithLogFile sets where log records are written.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
