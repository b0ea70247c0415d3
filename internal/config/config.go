package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/mkdom/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mkdom.json"

	// DefaultPort is the default live server port.
	DefaultPort = 7070

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultBrowserTimeout bounds browser startup and page load.
	DefaultBrowserTimeout = "30s"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "mkdom"
)

// Config represents mkdom.json.
type Config struct {
	Host    HostConfig    `json:"host"`
	Browser BrowserConfig `json:"browser"`
	Server  ServerConfig  `json:"server"`
	Storage StorageConfig `json:"storage"`
	Metrics MetricsConfig `json:"metrics"`
	Log     LogConfig     `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// HostConfig configures the in-memory host.
type HostConfig struct {
	// ForceClassAttr disables the token set so classes are edited through
	// the class attribute.
	ForceClassAttr bool `json:"forceClassAttr,omitempty"`
}

// BrowserConfig configures the remote browser host.
type BrowserConfig struct {
	// ControlURL connects to a running browser instead of launching one.
	ControlURL string `json:"controlUrl,omitempty"`

	// Bin is the browser binary to launch.
	Bin string `json:"bin,omitempty"`

	// Headless launches without a window.
	Headless bool `json:"headless"`

	// Timeout bounds startup and page load (e.g. "30s").
	Timeout string `json:"timeout,omitempty"`
}

// ServerConfig configures the live server.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// StorageConfig configures document storage.
type StorageConfig struct {
	// Dir is where relative document paths are resolved.
	Dir string `json:"dir,omitempty"`

	S3 S3Config `json:"s3,omitempty"`
}

// S3Config configures s3:// locations.
type S3Config struct {
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// MetricsConfig configures host call metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  DefaultBrowserTimeout,
		},
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Storage: StorageConfig{
			Dir: ".",
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for mkdom.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass settings as flags")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Browser.Timeout == "" {
		c.Browser.Timeout = DefaultBrowserTimeout
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "."
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("server.port must be between 0 and 65535")
	}
	if _, err := time.ParseDuration(c.Browser.Timeout); err != nil {
		return errors.New("E122").
			WithDetailf("browser.timeout %q is not a duration", c.Browser.Timeout).
			WithSuggestion(`Use a Go duration such as "30s" or "2m"`)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E122").
			WithDetailf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// ServerAddress returns the host:port the live server binds to.
func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// BrowserTimeout returns the parsed browser timeout.
func (c *Config) BrowserTimeout() time.Duration {
	d, err := time.ParseDuration(c.Browser.Timeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultBrowserTimeout)
	}
	return d
}

// LogLevel returns the parsed log level, info when invalid.
func (c *Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, errors.New("E122").
			WithDetailf("log.level %q must be debug, info, warn or error", s)
	}
	return l, nil
}

// StoragePath resolves a document path against storage.dir. s3:// URLs and
// absolute paths are returned unchanged.
func (c *Config) StoragePath(p string) string {
	if strings.HasPrefix(p, "s3://") || filepath.IsAbs(p) {
		return p
	}
	dir := c.Storage.Dir
	if !filepath.IsAbs(dir) && c.Dir() != "" {
		dir = filepath.Join(c.Dir(), dir)
	}
	return filepath.Join(dir, p)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing mkdom.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has one.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
