package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CLARITY"

// keys omitted from the marshalled defaults when empty
var optionalKeys = []string{
	"grammar.http_proxy",
	"grammar.https_proxy",
	"grammar.no_proxy",
	"cache.dir",
	"rules.file",
}

// loadConfig resolves the configuration: CLARITY_* environment variables
// over the config file over the built-in defaults. An empty path looks for
// ~/.clarity/config.yaml and tolerates its absence.
func loadConfig(path string) (*model.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// seed every key so AutomaticEnv can see it
	base, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}
	for _, key := range optionalKeys {
		v.SetDefault(key, "")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clarity", "config.yaml")
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Clarity configuration",
	Long: `Manage Clarity configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CLARITY_*, e.g. CLARITY_GRAMMAR_SERVICE_URL)
3. Config file (~/.clarity/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Create a configuration file (default ~/.clarity/config.yaml) holding every option at its default value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			path = defaultConfigPath()
			if path == "" {
				return fmt.Errorf("cannot determine home directory; use --path")
			}
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		if err := writeDefaultConfig(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", path)
		return nil
	},
}

func writeDefaultConfig(path string) error {
	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("# Clarity configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Environment variables override this file: CLARITY_<SECTION>_<KEY>,\n")
	b.WriteString("# e.g. CLARITY_GRAMMAR_REMOTE=false or CLARITY_CACHE_DIR=/var/cache/clarity.\n")
	b.WriteString("# Optional keys: grammar.http_proxy, grammar.https_proxy, grammar.no_proxy,\n")
	b.WriteString("# cache.dir (enables the disk cache), rules.file (vocabulary extension).\n\n")
	b.Write(data)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "destination (default: $HOME/.clarity/config.yaml)")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
