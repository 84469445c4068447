package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the service needs.
type Config struct {
	Server ServerConfig
	Ledger LedgerConfig
	Chat   ChatConfig
	Voice  VoiceConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr          string
	AllowedOrigin string
}

// LedgerConfig points at the remote rewards/user backend.
type LedgerConfig struct {
	BaseURL   string
	TokenFile string
}

// ChatConfig tunes the FAQ chatbot.
type ChatConfig struct {
	Greeting string
	FAQFile  string
}

// VoiceConfig carries the text-to-speech settings relayed to the device.
type VoiceConfig struct {
	Language string
	Rate     float32
	Pitch    float32
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	voice, err := loadVoiceConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Ledger: LedgerConfig{
			BaseURL:   getEnvOrDefault("LEDGER_BASE_URL", "https://backecosrev5s.onrender.com/api"),
			TokenFile: getEnvOrDefault("TOKEN_FILE", "data/credentials.json"),
		},
		Chat: ChatConfig{
			Greeting: strings.TrimSpace(os.Getenv("CHAT_GREETING")),
			FAQFile:  strings.TrimSpace(os.Getenv("FAQ_FILE")),
		},
		Voice: voice,
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	cfg := ServerConfig{
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", "*"),
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		cfg.Addr = port
		return cfg, nil
	}
	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}
	cfg.Addr = ":" + port
	return cfg, nil
}

func loadVoiceConfig() (VoiceConfig, error) {
	rate, err := parseFloat32Env("VOICE_RATE", 1.0)
	if err != nil {
		return VoiceConfig{}, err
	}
	pitch, err := parseFloat32Env("VOICE_PITCH", 1.2)
	if err != nil {
		return VoiceConfig{}, err
	}
	return VoiceConfig{
		Language: getEnvOrDefault("VOICE_LANGUAGE", "pt-BR"),
		Rate:     rate,
		Pitch:    pitch,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseFloat32Env(key string, defaultValue float32) (float32, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return float32(val), nil
}
