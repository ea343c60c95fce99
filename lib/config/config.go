// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "PONG_CLI_CONFIG"

// Environment selects the server profile.
type Environment string

const (
	// Development is a server started from the repository: plain HTTP
	// on port 3000.
	Development Environment = "development"
	// Production is the deployed stack behind TLS on port 8443.
	Production Environment = "production"
)

// KeyboardMode selects how held paddle keys are turned into movement.
type KeyboardMode string

const (
	// KeyboardDebounce infers holds from key-repeat timing. Works on
	// every terminal.
	KeyboardDebounce KeyboardMode = "debounce"
	// KeyboardRelease relies on the terminal reporting key releases and
	// sends each press and release directly.
	KeyboardRelease KeyboardMode = "release"
)

// Color profiles accepted by display.color.
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	ColorANSI256   = "ansi256"
	ColorANSI      = "ansi"
	ColorNone      = "none"
)

var (
	keyboardModes = []KeyboardMode{KeyboardDebounce, KeyboardRelease}
	colorProfiles = []string{ColorAuto, ColorTrueColor, ColorANSI256, ColorANSI, ColorNone}
)

// Config is the client configuration.
type Config struct {
	// Environment selects port and scheme defaults.
	Environment Environment `yaml:"environment"`

	Server  ServerConfig  `yaml:"server"`
	Network NetworkConfig `yaml:"network"`
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`

	// Per-environment overrides, applied after the base values.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains the sections that can be overridden per
// environment. Zero values in an override leave the base value alone.
type ConfigOverrides struct {
	Server  *ServerOverrides `yaml:"server,omitempty"`
	Network *NetworkConfig   `yaml:"network,omitempty"`
	Logging *LoggingConfig   `yaml:"logging,omitempty"`
}

// ServerOverrides mirrors ServerConfig with InsecureSkipVerify as a
// pointer so an override section can leave it unset.
type ServerOverrides struct {
	Host               string `yaml:"host"`
	HTTPPort           int    `yaml:"http_port"`
	SocketPort         int    `yaml:"socket_port"`
	InsecureSkipVerify *bool  `yaml:"insecure_skip_verify"`
}

// ServerConfig locates the game server.
type ServerConfig struct {
	// Host pre-fills the host selection page. The player can still
	// change it there.
	Host string `yaml:"host"`

	// HTTPPort is the authentication API port.
	// Default: 3000 (development), 8443 (production)
	HTTPPort int `yaml:"http_port"`

	// SocketPort is the websocket port.
	// Default: 3000 (development), 8443 (production)
	SocketPort int `yaml:"socket_port"`

	// InsecureSkipVerify disables TLS certificate checks. The game
	// server ships with a self-signed certificate.
	// Default: true
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// NetworkConfig bounds network calls made by background tasks.
type NetworkConfig struct {
	// RequestTimeout bounds every authentication call, websocket dial
	// and room request. It does not apply to waiting for game events.
	// Default: 15s
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// InputConfig configures paddle input.
type InputConfig struct {
	// KeyboardMode is "debounce" or "release".
	// Default: debounce
	KeyboardMode KeyboardMode `yaml:"keyboard_mode"`
}

// DisplayConfig configures rendering.
type DisplayConfig struct {
	// Color forces a colour profile: auto, truecolor, ansi256, ansi or
	// none.
	// Default: auto
	Color string `yaml:"color"`
}

// LoggingConfig configures the log file. While the game runs the
// terminal belongs to the UI, so records that should survive the
// session go to a file.
type LoggingConfig struct {
	// File receives JSON log records. Empty disables the file.
	File string `yaml:"file"`

	// Level is debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given: a
// development server on localhost.
func Default() *Config {
	cfg := &Config{
		Environment: Development,
		Server: ServerConfig{
			Host:               "localhost",
			InsecureSkipVerify: true,
		},
		Network: NetworkConfig{
			RequestTimeout: 15 * time.Second,
		},
		Input: InputConfig{
			KeyboardMode: KeyboardDebounce,
		},
		Display: DisplayConfig{
			Color: ColorAuto,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
	cfg.applyEnvironmentDefaults()
	return cfg
}

// Load loads the file named by PONG_CLI_CONFIG, or returns Default
// when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	// Ports are re-derived after the file picks an environment.
	cfg.Server.HTTPPort = 0
	cfg.Server.SocketPort = 0

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.applyEnvironmentDefaults()
	cfg.expandVariables()
	return cfg, nil
}

// SetEnvironment switches the environment and re-derives the port
// defaults. Ports set explicitly by the file are kept only if they
// differ from the previous environment's defaults.
func (c *Config) SetEnvironment(environment Environment) {
	previous := defaultPort(c.Environment)
	c.Environment = environment
	if c.Server.HTTPPort == previous {
		c.Server.HTTPPort = 0
	}
	if c.Server.SocketPort == previous {
		c.Server.SocketPort = 0
	}
	c.applyEnvironmentDefaults()
}

func defaultPort(environment Environment) int {
	if environment == Production {
		return 8443
	}
	return 3000
}

// applyEnvironmentDefaults fills unset ports from the environment.
func (c *Config) applyEnvironmentDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultPort(c.Environment)
	}
	if c.Server.SocketPort == 0 {
		c.Server.SocketPort = defaultPort(c.Environment)
	}
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Server != nil {
		if overrides.Server.Host != "" {
			c.Server.Host = overrides.Server.Host
		}
		if overrides.Server.HTTPPort != 0 {
			c.Server.HTTPPort = overrides.Server.HTTPPort
		}
		if overrides.Server.SocketPort != 0 {
			c.Server.SocketPort = overrides.Server.SocketPort
		}
		if overrides.Server.InsecureSkipVerify != nil {
			c.Server.InsecureSkipVerify = *overrides.Server.InsecureSkipVerify
		}
	}
	if overrides.Network != nil && overrides.Network.RequestTimeout != 0 {
		c.Network.RequestTimeout = overrides.Network.RequestTimeout
	}
	if overrides.Logging != nil {
		if overrides.Logging.File != "" {
			c.Logging.File = overrides.Logging.File
		}
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
	}
}

func (c *Config) expandVariables() {
	c.Logging.File = expandVars(c.Logging.File, map[string]string{
		"HOME": os.Getenv("HOME"),
	})
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %q (want %s or %s)", c.Environment, Development, Production))
	}
	if !validPort(c.Server.HTTPPort) {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if !validPort(c.Server.SocketPort) {
		errs = append(errs, fmt.Errorf("server.socket_port %d out of range", c.Server.SocketPort))
	}
	if c.Network.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("network.request_timeout must be positive, got %s", c.Network.RequestTimeout))
	}
	if !slices.Contains(keyboardModes, c.Input.KeyboardMode) {
		errs = append(errs, fmt.Errorf("input.keyboard_mode must be one of: %v", keyboardModes))
	}
	if !slices.Contains(colorProfiles, c.Display.Color) {
		errs = append(errs, fmt.Errorf("display.color must be one of: %v", colorProfiles))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// SocketEndpoint returns the websocket URL for a session on host
// authenticated by token.
func (c *Config) SocketEndpoint(host, token string) string {
	address := net.JoinHostPort(host, strconv.Itoa(c.Server.SocketPort))
	return "wss://" + address + "/socket.io/?token=" + url.QueryEscape(token) + "&EIO=4&transport=websocket"
}

// APIBaseURL returns the base URL of the authentication API on host.
func (c *Config) APIBaseURL(host string) string {
	scheme := "http"
	if c.Environment == Production {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(c.Server.HTTPPort))
}
