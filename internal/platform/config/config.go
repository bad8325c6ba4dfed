// internal/platform/config/config.go
package config

import (
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"userenum/internal/platform/errors"
	"userenum/internal/platform/logx"
	"userenum/internal/platform/validator"
)

// EnvPrefix es el prefijo de todas las variables de entorno reconocidas.
const EnvPrefix = "USERENUM_"

const (
	DefaultWorkers   = 10
	DefaultBacklog   = 5
	DefaultTimeoutS  = 10
	DefaultUserAgent = "Mozilla/5.0"
	DefaultFormat    = "text"
	DefaultLogLevel  = "warn"
)

type Config struct {
	// Target
	BaseURL  string `yaml:"url"`
	Wordlist string `yaml:"wordlist"`

	// Dispatch
	Workers  int `yaml:"threads"`
	Backlog  int `yaml:"backlog"` // multiplicador K de la ventana
	TimeoutS int `yaml:"timeout"` // segundos por petición

	// HTTP
	UserAgent  string   `yaml:"user_agent"`
	Headers    []string `yaml:"headers"` // "Key: Value"
	ProxyURL   string   `yaml:"proxy"`
	Rate       float64  `yaml:"rate"` // peticiones por segundo, 0 = sin límite
	Insecure   bool     `yaml:"insecure"`
	StrictBody bool     `yaml:"strict_body"`

	// Output
	Verbose    bool   `yaml:"verbose"`
	Output     string `yaml:"output"`
	Format     string `yaml:"format"`
	NoProgress bool   `yaml:"no_progress"`
	NoColor    bool   `yaml:"no_color"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"-"`

	// Solo CLI
	ConfigPath   string `yaml:"-"`
	PrintVersion bool   `yaml:"-"`
	PrintHelp    bool   `yaml:"-"`
}

// DefaultConfig retorna la configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Workers:   DefaultWorkers,
		Backlog:   DefaultBacklog,
		TimeoutS:  DefaultTimeoutS,
		UserAgent: DefaultUserAgent,
		Format:    DefaultFormat,
		LogLevel:  DefaultLogLevel,
	}
}

// Load inicializa la configuración por capas: defaults -> perfil YAML ->
// ENV -> FLAGS (los flags tienen prioridad). args no incluye el nombre del programa.
func Load(args []string) (Config, error) {
	// Primera pasada: solo para descubrir --config, --help y --version.
	first := DefaultConfig()
	if err := parseFlags(&first, args); err != nil {
		return first, err
	}
	if first.PrintHelp || first.PrintVersion {
		return first, nil
	}

	cfg := DefaultConfig()

	path := first.ConfigPath
	if path == "" {
		path = getenv(EnvPrefix+"CONFIG", "")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	loadFromEnv(&cfg)

	// Segunda pasada: los flags se aplican sobre perfil y ENV.
	if err := parseFlags(&cfg, args); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = path

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFromFile carga un perfil YAML. Las claves desconocidas son un error.
func loadFromFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to open config profile"), errors.ErrInvalidConfig)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Mark(errors.Wrapf(err, "failed to parse config profile %s", path), errors.ErrInvalidConfig)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"URL", ""); v != "" {
		cfg.BaseURL = v
	}
	if v := getenv(EnvPrefix+"WORDLIST", ""); v != "" {
		cfg.Wordlist = v
	}
	if v := getenv(EnvPrefix+"THREADS", ""); v != "" {
		cfg.Workers = parseInt(v, cfg.Workers)
	}
	if v := getenv(EnvPrefix+"BACKLOG", ""); v != "" {
		cfg.Backlog = parseInt(v, cfg.Backlog)
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}
	if v := getenv(EnvPrefix+"VERBOSE", ""); v != "" {
		cfg.Verbose = parseBool(v)
	}

	// HTTP
	if v := getenv(EnvPrefix+"USER_AGENT", ""); v != "" {
		cfg.UserAgent = v
	}
	// Una cabecera por línea.
	if v := getenv(EnvPrefix+"HEADERS", ""); v != "" {
		cfg.Headers = nil
		for _, h := range strings.Split(v, "\n") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.Headers = append(cfg.Headers, h)
			}
		}
	}
	if v := getenv(EnvPrefix+"PROXY", ""); v != "" {
		cfg.ProxyURL = v
	}
	if v := getenv(EnvPrefix+"RATE", ""); v != "" {
		cfg.Rate = parseFloat(v, cfg.Rate)
	}
	if v := getenv(EnvPrefix+"INSECURE", ""); v != "" {
		cfg.Insecure = parseBool(v)
	}
	if v := getenv(EnvPrefix+"STRICT_BODY", ""); v != "" {
		cfg.StrictBody = parseBool(v)
	}

	// Output
	if v := getenv(EnvPrefix+"OUTPUT", ""); v != "" {
		cfg.Output = v
	}
	if v := getenv(EnvPrefix+"FORMAT", ""); v != "" {
		cfg.Format = v
	}
	if v := getenv(EnvPrefix+"NO_PROGRESS", ""); v != "" {
		cfg.NoProgress = parseBool(v)
	}
	if v := getenv("NO_COLOR", ""); v != "" {
		cfg.NoColor = true
	}
	if v := getenv(EnvPrefix+"NO_COLOR", ""); v != "" {
		cfg.NoColor = parseBool(v)
	}

	if v := getenv(logx.EnvLevel, ""); v != "" {
		cfg.LogLevel = v
	}
}

// parseFlags parsea args sobre cfg. Los valores actuales de cfg son los defaults de cada flag.
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("userenum", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.StringVarP(&cfg.BaseURL, "url", "u", cfg.BaseURL, "GitLab base URL")
	fs.StringVarP(&cfg.Wordlist, "wordlist", "w", cfg.Wordlist, "Path to username wordlist")
	fs.IntVarP(&cfg.Workers, "threads", "t", cfg.Workers, "Number of concurrent workers")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Also print users not found")

	fs.IntVar(&cfg.Backlog, "backlog", cfg.Backlog, "Pending probes allowed per worker")
	fs.IntVarP(&cfg.TimeoutS, "timeout", "T", cfg.TimeoutS, "Per-request timeout in seconds")

	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header")
	fs.StringArrayVarP(&cfg.Headers, "header", "H", cfg.Headers, "Extra header 'Key: Value' (repeatable)")
	fs.StringVarP(&cfg.ProxyURL, "proxy", "p", cfg.ProxyURL, "Proxy URL (http, https, socks5)")
	fs.Float64Var(&cfg.Rate, "rate", cfg.Rate, "Max requests per second (0 = unlimited)")
	fs.BoolVarP(&cfg.Insecure, "insecure", "k", cfg.Insecure, "Skip TLS certificate verification")
	fs.BoolVar(&cfg.StrictBody, "strict-body", cfg.StrictBody, "Report malformed 200 bodies as errors")

	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Write results to file")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output file format (text, jsonl, yaml)")
	fs.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "Plain line output, no live progress")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colors")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Shortcut for --log-level debug")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "YAML profile")

	fs.BoolVar(&cfg.PrintVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&cfg.PrintHelp, "help", "h", false, "Show help and exit")

	if err := fs.Parse(args); err != nil {
		return errors.Mark(err, errors.ErrInvalidConfig)
	}
	if fs.NArg() > 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "unexpected argument %q", fs.Arg(0))
	}
	return nil
}

func normalize(c *Config) {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.Wordlist = strings.TrimSpace(c.Wordlist)
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Backlog < 1 {
		c.Backlog = 1
	}
	if c.TimeoutS <= 0 {
		c.TimeoutS = DefaultTimeoutS
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}

	switch f := strings.ToLower(strings.TrimSpace(c.Format)); f {
	case "":
		c.Format = DefaultFormat
	case "json":
		c.Format = "jsonl"
	case "yml":
		c.Format = "yaml"
	default:
		c.Format = f
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Debug {
		c.LogLevel = "debug"
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate comprueba que la configuración es utilizable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "missing base URL (--url)")
	}
	if !validator.IsHTTPURL(c.BaseURL) {
		return errors.Wrapf(errors.ErrInvalidConfig, "base URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}

	if c.Wordlist == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "missing wordlist (--wordlist)")
	}

	if _, err := c.HTTPHeaders(); err != nil {
		return err
	}

	if c.ProxyURL != "" && !validator.IsProxyURL(c.ProxyURL) {
		return errors.Wrapf(errors.ErrInvalidConfig, "unsupported proxy URL %q, want http, https or socks5", c.ProxyURL)
	}

	if c.Rate < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "rate must be >= 0, got %g", c.Rate)
	}

	switch c.Format {
	case "text", "jsonl", "yaml":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", c.Format)
	}

	if logx.ParseLevel(c.LogLevel, -1) == -1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown log level %q", c.LogLevel)
	}
	return nil
}

// HTTPHeaders parsea las cabeceras extra "Key: Value".
func (c Config) HTTPHeaders() (http.Header, error) {
	h := make(http.Header, len(c.Headers))
	for _, raw := range c.Headers {
		k, v, ok := strings.Cut(raw, ":")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || !validator.IsHeaderName(k) || !validator.IsHeaderValue(v) {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "malformed header %q, want 'Key: Value'", raw)
		}
		h.Add(k, v)
	}
	return h, nil
}

// Timeout devuelve el timeout por petición como time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// Window devuelve el máximo de probes pendientes.
func (c Config) Window() int {
	return c.Workers * c.Backlog
}

// Level devuelve el nivel de log efectivo.
func (c Config) Level() logx.Level {
	return logx.ParseLevel(c.LogLevel, logx.LevelWarn)
}

// ToYAML serializa la configuración (útil para debugging).
func (c Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}
