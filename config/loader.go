package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/piperkit/piper/errors"
	"github.com/piperkit/piper/util"
)

// recognizedKeys are the option names accepted in a piper.yaml file.
// Anything else is a configuration error, not a silent no-op.
var recognizedKeys = map[string]bool{
	"batch_size":        true,
	"logging.format":    true,
	"logging.output":    true,
	"logging.no_color":  true,
	"logging.timestamp": true,
}

// LoaderConfig controls where settings are read from.
type LoaderConfig struct {
	// ConfigFile is an explicit settings file path. When empty, piper.yaml
	// is searched in Dirs (and the working directory).
	ConfigFile string
	// EnvFile is an explicit .env path. When empty, ./.env is loaded if
	// present.
	EnvFile string
	// Dirs are additional directories searched for piper.yaml.
	Dirs []string
}

// Load resolves settings from defaults, an optional config file, an
// optional .env file, and PIPER_* environment variables, in that order.
func Load(opts LoaderConfig) (*Settings, error) {
	loadEnvFile(opts.EnvFile)

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("piper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		for _, dir := range opts.Dirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		explicit := opts.ConfigFile != ""
		if explicit || !errorAs(err, &notFound) {
			return nil, errors.Config("reading settings file").WithCause(err)
		}
	} else {
		for _, key := range v.AllKeys() {
			if !recognizedKeys[strings.ToLower(key)] {
				return nil, errors.Configf("unknown option %q in %s", key, v.ConfigFileUsed())
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Config("parsing settings file").WithCause(err)
	}

	s.ApplyDefaults()
	applyEnv(s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromEnv resolves settings from defaults and PIPER_* environment variables
// only. It never fails: unparsable values fall back to defaults.
func FromEnv() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	applyEnv(s)
	return s
}

// applyEnv applies PIPER_* environment overrides on top of s.
func applyEnv(s *Settings) {
	if raw, ok := os.LookupEnv(EnvBatchSize); ok {
		if n := util.ParseInt(raw, s.BatchSize); n > 0 {
			s.BatchSize = n
		}
	}
	if raw, ok := os.LookupEnv(EnvDebug); ok {
		s.Debug = util.Ptr(util.ParseInt(raw, 0))
	}
	if raw, ok := os.LookupEnv(EnvVerbose); ok {
		s.Verbose = util.Ptr(util.ParseInt(raw, 0))
	}
}

func loadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// errorAs narrows err to target without importing the standard errors
// package under a clashing name at every call site.
func errorAs(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}
