package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shabbyrobe/jsontoxml"
)

// Config holds all configuration for the jsontoxml command.
type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ConvertConfig holds conversion settings.
type ConvertConfig struct {
	PrettyPrint bool   `mapstructure:"pretty_print"`
	Indent      string `mapstructure:"indent"`
	Escape      bool   `mapstructure:"escape"`
	Sanitize    bool   `mapstructure:"sanitize"`
	MaxDepth    int    `mapstructure:"max_depth"`

	Header     bool   `mapstructure:"header"`
	Version    string `mapstructure:"version"`
	Encoding   string `mapstructure:"encoding"`
	Standalone bool   `mapstructure:"standalone"`

	// DocType is only written when HasDocType is set, so that an empty
	// doctype can be requested.
	DocType    string `mapstructure:"doctype"`
	HasDocType bool   `mapstructure:"-"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"pretty":      "convert.pretty_print",
	"indent":      "convert.indent",
	"escape":      "convert.escape",
	"sanitize":    "convert.sanitize",
	"max-depth":   "convert.max_depth",
	"header":      "convert.header",
	"xml-version": "convert.version",
	"encoding":    "convert.encoding",
	"standalone":  "convert.standalone",
	"doctype":     "convert.doctype",
	"log-level":   "logging.level",
}

// Load reads configuration from an optional file, environment variables
// and flags, in increasing order of precedence. If file is empty, config.yaml
// is looked up in the working directory; a missing file is not an error
// unless it was named explicitly.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("convert.pretty_print", false)
	v.SetDefault("convert.indent", jsontoxml.DefaultIndent)
	v.SetDefault("convert.escape", false)
	v.SetDefault("convert.sanitize", false)
	v.SetDefault("convert.max_depth", jsontoxml.DefaultMaxDepth)
	v.SetDefault("convert.header", false)
	v.SetDefault("convert.version", jsontoxml.DefaultVersion)
	v.SetDefault("convert.encoding", jsontoxml.DefaultEncoding)
	v.SetDefault("convert.standalone", false)
	v.SetDefault("logging.level", "info")

	// Config file
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("JSONTOXML")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// doctype has no default, so AutomaticEnv alone would not see it
	_ = v.BindEnv("convert.doctype", "JSONTOXML_CONVERT_DOCTYPE")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %q: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Convert.HasDocType = v.IsSet("convert.doctype")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "panic", "fatal", "error", "warn", "warning", "info", "debug", "trace":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	if c.Convert.MaxDepth < 0 {
		return fmt.Errorf("invalid convert.max_depth %d", c.Convert.MaxDepth)
	}
	return nil
}

// Options converts the configuration into conversion options.
func (c ConvertConfig) Options() []jsontoxml.Option {
	var opts []jsontoxml.Option
	if c.PrettyPrint {
		opts = append(opts, jsontoxml.WithIndentString(c.Indent))
	}
	if c.Escape {
		opts = append(opts, jsontoxml.WithEscape())
	}
	if c.Sanitize {
		opts = append(opts, jsontoxml.WithSanitizedNames())
	}
	if c.Header {
		opts = append(opts, jsontoxml.WithXMLHeader(jsontoxml.Header{
			Version:    c.Version,
			Encoding:   c.Encoding,
			Standalone: c.Standalone,
		}))
	}
	if c.HasDocType {
		opts = append(opts, jsontoxml.WithDocType(c.DocType))
	}
	opts = append(opts, jsontoxml.WithMaxDepth(c.MaxDepth))
	return opts
}
