package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-screener"
)

type Config struct {
	Vocabulary []string          `mapstructure:"vocabulary"`
	Store      *StoreConfig      `mapstructure:"store" validate:"required"`
	AI         *AIConfig         `mapstructure:"ai"`
	Headhunter *HeadhunterConfig `mapstructure:"headhunter"`
}

type StoreConfig struct {
	Backend string       `mapstructure:"backend" validate:"oneof=memory file redis"`
	Dir     string       `mapstructure:"dir" validate:"required_if=Backend file"`
	Redis   *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db" validate:"gte=0"`
	KeyPrefix string        `mapstructure:"key-prefix"`
	TTL       time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required_if=Enabled true"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type HeadhunterConfig struct {
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener reads resumes and runs a scripted screening chat with the candidate",
	}

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateStore, StoreConfig{})
	return v
}

// validateStore requires redis.addr only for the redis backend.
func validateStore(sl validator.StructLevel) {
	store := sl.Current().Interface().(StoreConfig)
	if store.Backend != "redis" {
		return
	}
	if store.Redis == nil || strings.TrimSpace(store.Redis.Addr) == "" {
		sl.ReportError(store.Redis, "Redis", "Redis", "redis_addr", "")
	}
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"headhunter.token-file":  "HH_TOKEN_FILE",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"store.redis.password":   "REDIS_PASSWORD",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.dir", "sessions")
	viper.SetDefault("ai.provider", "gemini")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional; an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{Backend: "memory"}
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
