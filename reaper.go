package main

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepSchedule = "*/10 * * * *"

// StartSessionReaper periodically deletes conversations idle past the
// configured TTL. A TTL of zero keeps sessions forever.
func StartSessionReaper(cfg Config, sessions *SessionStore) {
	if cfg.SessionTTLMinutes <= 0 {
		log.Println("Session reaper disabled (session_ttl_minutes not set)")
		return
	}
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(sweepSchedule)
	if err != nil {
		log.Printf("Invalid sweep schedule '%s': %v, session reaper disabled", sweepSchedule, err)
		return
	}
	log.Printf("Session reaper scheduled (cron: %s, ttl: %s)", sweepSchedule, ttl)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			time.Sleep(next.Sub(now))

			if removed := sessions.Sweep(ttl, time.Now()); removed > 0 {
				log.Printf("Session reaper removed %d idle sessions (%d active)", removed, sessions.Len())
			}
		}
	}()
}
