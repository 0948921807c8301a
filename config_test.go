package main

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := LoadConfig()
	if cfg.DBPath != "./incidentbot.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ITopClass != "UserRequest" {
		t.Errorf("ITopClass = %q", cfg.ITopClass)
	}
	if !cfg.BasicAssistant || !cfg.AdvancedAssistant {
		t.Error("assistants should default on")
	}
	if cfg.SessionTTLMinutes != 0 {
		t.Errorf("SessionTTLMinutes = %d, want 0 (disabled)", cfg.SessionTTLMinutes)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("BASIC_ASSISTANT", "false")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("NOC_CHANNEL_ID", "C123")

	cfg := LoadConfig()
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.BasicAssistant {
		t.Error("BASIC_ASSISTANT=false not applied")
	}
	if !cfg.AdvancedAssistant {
		t.Error("AdvancedAssistant flipped without override")
	}
	if cfg.SessionTTLMinutes != 30 {
		t.Errorf("SessionTTLMinutes = %d", cfg.SessionTTLMinutes)
	}
	if cfg.NocChannelID != "C123" {
		t.Errorf("NocChannelID = %q", cfg.NocChannelID)
	}
}
