package config

import "os"

type Config struct {
	ListenAddr   string
	DBPath       string
	BackendURL   string
	BackendToken string
	LabelBackend string
	ClaudeAPIKey string
	ClaudeModel  string
	LogLevel     string
	LogFile      string
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "/data/claimbench.db"),
		BackendURL:   getEnv("CLAIMS_API_URL", "http://localhost:9000"),
		BackendToken: getEnv("CLAIMS_API_TOKEN", ""),
		LabelBackend: getEnv("LABEL_BACKEND", "none"),
		ClaudeAPIKey: getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:  getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-latest"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
