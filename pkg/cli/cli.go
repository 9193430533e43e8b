package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/telekom/pinotctl/pkg/mockcontroller"
)

const envPrefix = "MOCK_CONTROLLER_"

type Config struct {
	Debug         bool
	ListenAddress string
	FixturesPath  string
	CORSOrigins   string
	Metrics       bool
	RateLimit     float64
	RateBurst     int
}

// Parse reads args into a Config. Environment values become flag defaults,
// so explicit flags win.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	config := &Config{}
	fs.BoolVar(&config.Debug, "debug", getEnvBool("DEBUG", false), "Enable debug level logging")
	fs.StringVar(&config.ListenAddress, "listen", getEnvString("LISTEN", ":9000"),
		"The address the controller API binds to (host:port)")
	fs.StringVar(&config.FixturesPath, "fixtures", getEnvString("FIXTURES", ""),
		"YAML file with cluster fixtures; built-in fixtures when empty")
	fs.StringVar(&config.CORSOrigins, "cors-origin", getEnvString("CORS_ORIGIN", ""),
		"Comma separated list of allowed CORS origins")
	fs.BoolVar(&config.Metrics, "metrics", getEnvBool("METRICS", true),
		"Expose Prometheus metrics on /metrics")
	fs.Float64Var(&config.RateLimit, "rate-limit", getEnvFloat("RATE_LIMIT", 0),
		"Requests per second allowed per client address; 0 disables throttling")
	fs.IntVar(&config.RateBurst, "rate-burst", getEnvInt("RATE_BURST", 50),
		"Burst size for --rate-limit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if config.RateLimit < 0 {
		return nil, fmt.Errorf("rate-limit must not be negative, got %v", config.RateLimit)
	}
	return config, nil
}

// Server converts the flags into the server configuration.
func (c *Config) Server() mockcontroller.Config {
	cfg := mockcontroller.Config{
		ListenAddress: c.ListenAddress,
		Debug:         c.Debug,
		Metrics:       c.Metrics,
		RateLimit:     c.RateLimit,
		RateBurst:     c.RateBurst,
	}
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg
}

func (c *Config) Print(log *zap.SugaredLogger) {
	log.Infow("CLI Configuration",
		"debug", c.Debug,
		"listen", c.ListenAddress,
		"fixtures", c.FixturesPath,
		"cors_origins", c.CORSOrigins,
		"metrics", c.Metrics,
		"rate_limit", c.RateLimit,
		"rate_burst", c.RateBurst,
	)
}

func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(envPrefix + key); ok {
		return val
	}
	return defaultVal
}

// getEnvBool accepts true/1/yes and false/0/no, case-insensitively. Anything
// else yields the default.
func getEnvBool(key string, defaultVal bool) bool {
	val, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultVal
	}
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(envPrefix + key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(envPrefix + key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return defaultVal
}
