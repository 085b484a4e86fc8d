// Package config loads settings from flags, OTHELLO_* environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug         = "debug"
	ConfigFile          = "config-file"
	ConfigSearchDepth   = "search-depth"
	ConfigSearchThreads = "search-threads"
	ConfigBlackPlayer   = "black-player"
	ConfigWhitePlayer   = "white-player"
	ConfigMatchGames    = "match-games"
	ConfigMatchThreads  = "match-threads"
	ConfigColors        = "colors"
	ConfigHistoryFile   = "history-file"
	ConfigCPUProfile    = "cpu-profile"
	ConfigMemProfile    = "mem-profile"

	DefaultSearchDepth = 9
)

var (
	ErrBadSearchDepth = errors.New("search-depth cannot be negative")
	ErrBadMatchGames  = errors.New("match-games cannot be negative")
	ErrBadPlayerType  = errors.New("player must be one of human, alphabeta, random")
)

var playerTypes = []string{"human", "alphabeta", "random"}

type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSearchDepth, DefaultSearchDepth)
	c.SetDefault(ConfigSearchThreads, 0)
	c.SetDefault(ConfigBlackPlayer, "human")
	c.SetDefault(ConfigWhitePlayer, "alphabeta")
	c.SetDefault(ConfigMatchGames, 100)
	c.SetDefault(ConfigMatchThreads, runtime.NumCPU())
	c.SetDefault(ConfigColors, true)
	c.SetDefault(ConfigHistoryFile, "/tmp/othello_readline.tmp")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
}

// Load parses flags out of args. Parsing stops at the first non-flag
// argument; it and everything after it is kept in Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigFile, "", "yaml, toml or json file with settings")
	fs.Int(ConfigSearchDepth, DefaultSearchDepth, "plies searched below each candidate move")
	fs.Int(ConfigSearchThreads, 0, "candidate moves searched at once; 0 searches all of them")
	fs.String(ConfigBlackPlayer, "human", "black player: human, alphabeta or random")
	fs.String(ConfigWhitePlayer, "alphabeta", "white player: human, alphabeta or random")
	fs.Int(ConfigMatchGames, 100, "games played by the match command")
	fs.Int(ConfigMatchThreads, runtime.NumCPU(), "games played at once by the match command")
	fs.Bool(ConfigColors, true, "color the board with ANSI escapes")
	fs.String(ConfigHistoryFile, "/tmp/othello_readline.tmp", "readline history file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("othello")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if f := c.GetString(ConfigFile); f != "" {
		c.SetConfigFile(f)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
	}
	return c.Validate()
}

// Args are the positional arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) Validate() error {
	if c.GetInt(ConfigSearchDepth) < 0 {
		return ErrBadSearchDepth
	}
	if c.GetInt(ConfigMatchGames) < 0 {
		return ErrBadMatchGames
	}
	for _, key := range []string{ConfigBlackPlayer, ConfigWhitePlayer} {
		if !validPlayer(c.GetString(key)) {
			return fmt.Errorf("%s %q: %w", key, c.GetString(key), ErrBadPlayerType)
		}
	}
	return nil
}

func validPlayer(p string) bool {
	p = strings.ToLower(strings.TrimSpace(p))
	for _, t := range playerTypes {
		if p == t {
			return true
		}
	}
	return false
}

// SanitizedSettings is every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// Clone copies every setting into a new config, so that callers can
// override keys without touching c.
func (c *Config) Clone() *Config {
	n := DefaultConfig()
	for k, v := range c.AllSettings() {
		n.Set(k, v)
	}
	n.args = c.args
	return n
}
