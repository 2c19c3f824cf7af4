package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// Config keys. Each can be set by flag, by LICENSEBAT_<KEY> or in
// licensebat.yaml.
const (
	keyDependencyFile = "dependency_file"
	keyLicrcFile      = "licrc_file"
	keyFormat         = "format"
	keyConcurrency    = "concurrency"
	keyFailOnInvalid  = "fail_on_invalid"
	keySort           = "sort"
	keyShowIgnored    = "show_ignored"
	keyAddr           = "addr"
	keyCORSOrigins    = "cors_origins"
)

// initConfig wires environment variables and the optional config file into
// viper. A missing default config file is fine; an explicit one must load.
func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "read config file %s", configFile)
		}
		return nil
	}

	viper.SetConfigName(appName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/" + appName)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "read config file")
	}
	return nil
}

// The resolve helpers give an explicitly set flag precedence over the
// environment and the config file, which in turn beat the flag default.

func resolveString(cmd *cobra.Command, value, key, flagName string) string {
	if flagChanged(cmd, flagName) {
		return value
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return value
}

func resolveInt(cmd *cobra.Command, value int, key, flagName string) int {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return value
	}
	return viper.GetInt(key)
}

func resolveBool(cmd *cobra.Command, value bool, key, flagName string) bool {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return value
	}
	return viper.GetBool(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key, flagName string) []string {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
