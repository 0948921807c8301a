package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"
)

// NocNotifier posts a summary of every new ticket to the NOC channel.
// With no channel configured it stays silent.
type NocNotifier struct {
	api       *slack.Client
	channelID string
}

func NewNocNotifier(api *slack.Client, channelID string) *NocNotifier {
	return &NocNotifier{api: api, channelID: channelID}
}

func (n *NocNotifier) TicketCreated(t Ticket) {
	if n.channelID == "" {
		return
	}

	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(nocMessage(t), false))
	if err != nil {
		log.Printf("NOC notification error ticket=%d: %v", t.ID, err)
	}
}

func nocMessage(t Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 *Nuevo incidente #%d*\n\n", t.ID)
	fmt.Fprintf(&b, "*Servicio:* %s\n", ServiceLabel(t.IncidentType))
	fmt.Fprintf(&b, "*Subtipo:* %s\n", SubtypeLabel(t.SubType))
	fmt.Fprintf(&b, "*Categoría:* %s · *Prioridad:* %d\n", t.Category, t.Priority)
	fmt.Fprintf(&b, "*Tiempo de resolución:* %s\n", t.ResolutionTime)
	fmt.Fprintf(&b, "*Objetivo SLA:* %s\n", t.SLATarget)
	fmt.Fprintf(&b, "*Reporta:* %s (cédula %s, tel %s)\n", t.FullName, t.UserID, t.Phone)
	switch t.IAMode {
	case ModeBasic:
		fmt.Fprintf(&b, "*Modo:* IA Básica (confianza %.1f%%)\n", t.IAConfidence*100)
	case ModeAdvanced:
		fmt.Fprintf(&b, "*Modo:* IA Avanzada (confianza %.1f%%)\n", t.IAConfidence*100)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s", t.Description)
	}
	return b.String()
}
