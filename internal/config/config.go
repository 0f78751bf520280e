// Package config loads configuration for the two SAGE binaries. A .env file
// is honored when present; environment variables override everything.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Server holds the analytics backend configuration.
type Server struct {
	Addr         string
	DataFile     string
	GeminiAPIKey string
	Model        string
	LogLevel     string
	LogFormat    string
}

// Dashboard holds the terminal dashboard configuration.
type Dashboard struct {
	BackendURL string
	DebugLog   string
}

// LoadServer reads the server configuration with defaults applied.
// Variables use the SAGE_ prefix except GEMINI_API_KEY, which keeps the
// name the Gemini tooling conventionally uses.
func LoadServer() (*Server, error) {
	_ = godotenv.Load() // optional

	v := viper.New()
	v.SetEnvPrefix("sage")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8000")
	v.SetDefault("data_file", "data/sample_data.csv")
	v.SetDefault("model", "gemini-2.5-flash")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	return &Server{
		Addr:         v.GetString("addr"),
		DataFile:     v.GetString("data_file"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Model:        v.GetString("model"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
	}, nil
}

// LoadDashboard reads the dashboard configuration.
func LoadDashboard() *Dashboard {
	_ = godotenv.Load() // optional

	backendURL := os.Getenv("SAGE_BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8000"
	}

	return &Dashboard{
		BackendURL: backendURL,
		DebugLog:   os.Getenv("SAGE_DEBUG_LOG"),
	}
}
