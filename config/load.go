package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads settings from an optional config file plus RATE_* environment
// variables, then applies defaults and validates the resolver ladder. An
// empty configFile loads defaults only.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("RATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	settings.ApplyDefaults()

	if conflicts := settings.Resolver.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid resolver settings: %s", strings.Join(conflicts, "; "))
	}

	return settings, nil
}
