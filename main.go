package main

import (
	"log"

	"github.com/slack-go/slack"
)

func main() {
	if err := ValidateTaxonomy(); err != nil {
		log.Fatalf("Taxonomy validation failed: %v", err)
	}

	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	api := slack.New(
		cfg.SlackBotToken,
		slack.OptionAppLevelToken(cfg.SlackAppToken),
	)

	caps := Capabilities{}
	if cfg.BasicAssistant {
		caps.Basic = NewBasicClassifier()
	}
	if cfg.AdvancedAssistant {
		caps.Advanced = NewKeywordClassifier()
	}

	var registrar Registrar = NoopRegistrar{}
	if cfg.ITopURL != "" {
		registrar = NewITopRegistrar(cfg)
		log.Printf("iTOP registration enabled url=%s class=%s", cfg.ITopURL, cfg.ITopClass)
	}

	sessions := NewSessionStore()
	machine := NewMachine(
		sessions,
		caps,
		NewSlackResponder(api),
		&SQLStore{DB: db},
		NewNocNotifier(api, cfg.NocChannelID),
		registrar,
	)

	StartSessionReaper(cfg, sessions)

	log.Println("Starting Incident Bot...")
	if err := StartSlackBot(cfg, db, api, machine); err != nil {
		log.Fatalf("Slack bot error: %v", err)
	}
}
