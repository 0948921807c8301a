package main

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SlackBotToken string `yaml:"slack_bot_token"`
	SlackAppToken string `yaml:"slack_app_token"`

	NocChannelID string `yaml:"noc_channel_id"`

	DBPath string `yaml:"db_path"`

	ITopURL      string `yaml:"itop_url"`
	ITopUser     string `yaml:"itop_user"`
	ITopPassword string `yaml:"itop_password"`
	ITopClass    string `yaml:"itop_class"`
	ITopOrg      string `yaml:"itop_org"`

	BasicAssistant    bool `yaml:"basic_assistant"`
	AdvancedAssistant bool `yaml:"advanced_assistant"`

	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
}

func LoadConfig() Config {
	// Assistants default on; yaml/env can switch either off.
	cfg := Config{BasicAssistant: true, AdvancedAssistant: true}

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackAppToken, "SLACK_APP_TOKEN")
	envOverride(&cfg.NocChannelID, "NOC_CHANNEL_ID")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ITopURL, "ITOP_URL")
	envOverride(&cfg.ITopUser, "ITOP_USER")
	envOverride(&cfg.ITopPassword, "ITOP_PASSWORD")
	envOverride(&cfg.ITopClass, "ITOP_CLASS")
	envOverride(&cfg.ITopOrg, "ITOP_ORG")
	envOverrideBool(&cfg.BasicAssistant, "BASIC_ASSISTANT")
	envOverrideBool(&cfg.AdvancedAssistant, "ADVANCED_ASSISTANT")
	envOverrideInt(&cfg.SessionTTLMinutes, "SESSION_TTL_MINUTES")

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "./incidentbot.db"
	}
	if cfg.ITopClass == "" {
		cfg.ITopClass = "UserRequest"
	}

	// Validate required fields
	required := map[string]string{
		"slack_bot_token": cfg.SlackBotToken,
		"slack_app_token": cfg.SlackAppToken,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}

	// iTOP is optional, but half-configured is a deployment mistake.
	if cfg.ITopURL != "" && (cfg.ITopUser == "" || cfg.ITopPassword == "") {
		log.Fatalf("itop_user and itop_password are required when itop_url is set")
	}

	if cfg.SessionTTLMinutes < 0 {
		log.Fatalf("invalid session_ttl_minutes '%d': must be >= 0", cfg.SessionTTLMinutes)
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
