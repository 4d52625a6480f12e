package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration loaded from flags, environment
// variables, .env files, a config file, and defaults, in that order of
// precedence.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool

	// Config file
	ConfigFile string

	// Scorecard configuration
	ScorecardsDir string
	RosterDir     string
	Threshold     float64
	Strategy      string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from all sources in order of
// precedence:
//  1. Command-line flags (applied by cobra after parsing)
//  2. Environment variables (SCORECARD_*)
//  3. .env files
//  4. Config file (~/.scorecard.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.SetEnvPrefix("SCORECARD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("scorecards_dir", "Scorecards")
	viper.SetDefault("strategy", "")

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".scorecard")
		}
	}
	_ = viper.ReadInConfig()

	return &Config{
		Verbose:       viper.GetBool("verbose"),
		Quiet:         viper.GetBool("quiet"),
		ConfigFile:    viper.ConfigFileUsed(),
		ScorecardsDir: viper.GetString("scorecards_dir"),
		RosterDir:     viper.GetString("roster_dir"),
		Threshold:     viper.GetFloat64("threshold"),
		Strategy:      viper.GetString("strategy"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "auto"),
	}, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
