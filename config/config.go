// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// envPrefix prefixes every environment variable read by readEnv.
const envPrefix = "DOCSRU_"

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"DOCSRU_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"DOCSRU_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"DOCSRU_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"DOCSRU_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
	} `yaml:"basic"`

	Content struct {
		Dir         string `env:"DOCSRU_CONTENT_DIR,overwrite" yaml:"dir"`
		Index       string `env:"DOCSRU_CONTENT_INDEX,overwrite" yaml:"index"`
		SlugMode    string `env:"DOCSRU_SLUG_MODE,overwrite" yaml:"slugMode"`
		TOCMinLevel int    `env:"DOCSRU_TOC_MIN_LEVEL,overwrite" yaml:"tocMinLevel"`
		TOCMaxLevel int    `env:"DOCSRU_TOC_MAX_LEVEL,overwrite" yaml:"tocMaxLevel"`
	} `yaml:"content"`

	Preferences struct {
		// Defaults apply to readers without a stored choice.
		PreferComposition bool `env:"DOCSRU_PREFER_COMPOSITION,overwrite" yaml:"preferComposition"`
		PreferSFC         bool `env:"DOCSRU_PREFER_SFC,overwrite" yaml:"preferSfc"`
		// SkipUnchanged suppresses notifications for a Set that does not change the value.
		SkipUnchanged bool `env:"DOCSRU_PREFERENCES_SKIP_UNCHANGED,overwrite" yaml:"skipUnchanged"`
	} `yaml:"preferences"`

	Cache struct {
		Enabled  bool `env:"DOCSRU_CACHE,overwrite" yaml:"enabled"`
		Size     int  `env:"DOCSRU_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		Compress bool `env:"DOCSRU_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"DOCSRU_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"DOCSRU_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"DOCSRU_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"DOCSRU_DEV" yaml:"inDevelopment"`
		WatchContent  bool `env:"DOCSRU_WATCH_CONTENT,overwrite" yaml:"watchContent"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"DOCSRU_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"DOCSRU_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"DOCSRU_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled bool `env:"DOCSRU_LIMITER,overwrite" yaml:"enabled"`
		// Rate is the sustained number of requests per second per client network.
		Rate       float64  `env:"DOCSRU_LIMITER_RATE,overwrite" yaml:"rate"`
		Burst      int      `env:"DOCSRU_LIMITER_BURST,overwrite" yaml:"burst"`
		Prefixes   []string `env:"DOCSRU_LIMITER_PREFIXES,overwrite" yaml:"prefixes"`
		PassIPs    []string `env:"DOCSRU_LIMITER_PASS_IPS,overwrite" yaml:"passList"`
		IPv4Prefix int      `env:"DOCSRU_LIMITER_IPV4_PREFIX,overwrite" yaml:"ipv4Prefix"`
		IPv6Prefix int      `env:"DOCSRU_LIMITER_IPV6_PREFIX,overwrite" yaml:"ipv6Prefix"`
	} `yaml:"limiter"`

	Internationalization struct {
		DefaultLocale string `env:"DOCSRU_DEFAULT_LOCALE,overwrite" yaml:"defaultLocale"`
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"DOCSRU_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from flags, the YAML file, .env and
// the environment, in increasing order of precedence.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	switch {
	case configFlagUserSet:
		configFilePath = parsedConfigFlagValue
	case os.Getenv(envPrefix+"CONFIGFILE") != "":
		configFilePath = os.Getenv(envPrefix + "CONFIGFILE")
	default:
		configFilePath = parsedConfigFlagValue
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat("./config.yml"); statErr == nil {
				configFilePath = "./config.yml"
			}
		}
	}

	if err := cfg.load(configFilePath); err != nil {
		return err
	}

	cfg.setupAudit()
	cfg.print()

	if isContainerized() && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a container but host is not a wildcard address (e.g. '0.0.0.0' or '::'). The site may be unreachable from outside the container.")
	}

	return nil
}

// load applies defaults, then the YAML file at configFilePath, .env and the
// environment, and validates the result.
func (cfg *ServerConfig) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}

var staticSkippedPathPrefixes = []string{"/css/", "/js/", "/favicon.ico"}

// ShouldSkipServerLogging determines if a request should bypass request logging.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
