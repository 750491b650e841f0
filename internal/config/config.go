package config

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/taurusgroup/rsa-keygen/internal/params"
	"github.com/taurusgroup/rsa-keygen/pkg/keyfile"
	"github.com/taurusgroup/rsa-keygen/pkg/sign"
	"go.uber.org/zap"
)

const EnvPrefix = "RSAKEYGEN"

// Configuration options
const (
	ConfigFile = "config"
	Debug      = "debug"
	Bits       = "bits"
	Rounds     = "rounds"
	OutDir     = "out-dir"
	Name       = "name"
	Accurate   = "accurate"
	Workers    = "workers"
	Count      = "count"
	Digest     = "digest"
)

type Config struct {
	Debug    bool   `mapstructure:"debug"`
	Bits     int    `mapstructure:"bits"`
	Rounds   int    `mapstructure:"rounds"`
	OutDir   string `mapstructure:"out-dir"`
	Name     string `mapstructure:"name"`
	Accurate bool   `mapstructure:"accurate"`
	Workers  int    `mapstructure:"workers"`
	Count    int    `mapstructure:"count"`
	Digest   string `mapstructure:"digest"`
}

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(fs *flag.FlagSet) {
	fs.String(ConfigFile, "", "Configuration file, defaults to rsakeygen.yaml in . or /etc/rsakeygen")
	fs.Bool(Debug, false, "Debug logging")
}

// AddGenerateFlags registers the key generation flags.
func AddGenerateFlags(fs *flag.FlagSet) {
	fs.Int(Bits, params.DefaultBits, "Size of the modulus in bits")
	fs.Int(Rounds, params.PrimalityRounds, "Miller-Rabin iterations per prime candidate")
	fs.String(OutDir, ".", "Directory the key files are written to")
	fs.String(Name, "", "Base name of the key files, defaults to rsa<bits>")
	fs.Bool(Accurate, true, "Retry until the modulus has exactly the requested size")
	fs.Int(Workers, 0, "Workers searching primes in parallel, 0 disables the pool")
	fs.Int(Count, 1, "Number of key pairs to generate")
}

// AddDigestFlags registers the flags of the sign and verify commands.
func AddDigestFlags(fs *flag.FlagSet) {
	fs.String(Digest, string(sign.SHA256), "Digest algorithm: sha256, blake3 or sha3-256")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(Debug, false)
	v.SetDefault(Bits, params.DefaultBits)
	v.SetDefault(Rounds, params.PrimalityRounds)
	v.SetDefault(OutDir, ".")
	v.SetDefault(Name, "")
	v.SetDefault(Accurate, true)
	v.SetDefault(Workers, 0)
	v.SetDefault(Count, 1)
	v.SetDefault(Digest, string(sign.SHA256))
}

// New reads the configuration from, in increasing priority, defaults,
// the configuration file, RSAKEYGEN_* environment variables and fs.
func New(fs *flag.FlagSet) (*Config, error) {
	v := viper.New()
	// e.g. --out-dir is configurable using RSAKEYGEN_OUT_DIR.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	path := ""
	if f := fs.Lookup(ConfigFile); f != nil {
		path = f.Value.String()
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rsakeygen")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/rsakeygen")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = keyfile.DefaultName(cfg.Bits)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that keygen and sign would not reject themselves.
func (c Config) Validate() error {
	var errs []error
	if c.Rounds < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", Rounds))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", Workers))
	}
	if c.Count < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", Count))
	}
	if _, err := sign.ParseAlgorithm(c.Digest); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Fields returns the configuration as zap fields.
func (c Config) Fields() []zap.Field {
	return []zap.Field{
		zap.Int(Bits, c.Bits),
		zap.Int(Rounds, c.Rounds),
		zap.String(OutDir, c.OutDir),
		zap.String(Name, c.Name),
		zap.Bool(Accurate, c.Accurate),
		zap.Int(Workers, c.Workers),
		zap.Int(Count, c.Count),
		zap.String(Digest, c.Digest),
	}
}
