package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

const menuActionBlockSize = 5

func StartSlackBot(cfg Config, db *sql.DB, api *slack.Client, machine *Machine) error {
	client := socketmode.New(api)

	go func() {
		for evt := range client.Events {
			switch evt.Type {
			case socketmode.EventTypeSlashCommand:
				client.Ack(*evt.Request)
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					continue
				}
				log.Printf("Slash command received: %s from user=%s channel=%s", cmd.Command, cmd.UserID, cmd.ChannelID)
				go handleSlashCommand(api, db, cfg, machine, cmd)
			case socketmode.EventTypeEventsAPI:
				client.Ack(*evt.Request)
				eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				go handleEventsAPI(machine, eventsAPIEvent)
			case socketmode.EventTypeInteractive:
				client.Ack(*evt.Request)
				callback, ok := evt.Data.(slack.InteractionCallback)
				if !ok {
					continue
				}
				go handleInteraction(machine, callback)
			}
		}
	}()

	log.Println("Slack bot connected via Socket Mode")
	return client.Run()
}

func handleEventsAPI(machine *Machine, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		return
	}
	ev, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return
	}
	// Only direct messages from humans drive the conversation.
	if ev.ChannelType != "im" || ev.BotID != "" || ev.User == "" {
		return
	}
	if ev.SubType != "" && ev.SubType != "file_share" {
		return
	}

	if files := messageFiles(event); len(files) > 0 {
		for i, f := range files {
			caption := ""
			if i == 0 {
				caption = ev.Text
			}
			machine.HandleMedia(MediaEvent{
				Identity: ev.User,
				ChatRef:  ev.Channel,
				FileRef:  f.URLPrivate,
				FileType: mediaType(f.Mimetype),
				Caption:  caption,
			})
		}
		return
	}

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return
	}
	machine.HandleText(TextEvent{Identity: ev.User, ChatRef: ev.Channel, Text: text})
}

type inboundFile struct {
	Mimetype   string `json:"mimetype"`
	URLPrivate string `json:"url_private"`
}

// messageFiles pulls attachments out of a message event. The typed message
// struct does not carry them, so file_share payloads are decoded from the
// raw inner event.
func messageFiles(event slackevents.EventsAPIEvent) []inboundFile {
	cb, ok := event.Data.(*slackevents.EventsAPICallbackEvent)
	if !ok || cb.InnerEvent == nil {
		return nil
	}
	var payload struct {
		Files []inboundFile `json:"files"`
	}
	if err := json.Unmarshal(*cb.InnerEvent, &payload); err != nil {
		return nil
	}
	return payload.Files
}

// mediaType buckets a MIME type into the evidence categories the ticket
// detail view understands.
func mediaType(mimetype string) string {
	switch {
	case strings.HasPrefix(mimetype, "image/"):
		return "photo"
	case strings.HasPrefix(mimetype, "video/"):
		return "video"
	case strings.HasPrefix(mimetype, "audio/"):
		return "audio"
	default:
		return "document"
	}
}

func handleInteraction(machine *Machine, cb slack.InteractionCallback) {
	if cb.Type != slack.InteractionTypeBlockActions {
		return
	}
	if len(cb.ActionCallback.BlockActions) == 0 {
		return
	}
	act := cb.ActionCallback.BlockActions[0]
	channelID := cb.Channel.ID
	if channelID == "" {
		channelID = cb.Container.ChannelID
	}

	machine.HandleCallback(CallbackEvent{
		Identity: cb.User.ID,
		ChatRef:  channelID,
		Token:    act.ActionID,
	})
}

func handleSlashCommand(api *slack.Client, db *sql.DB, cfg Config, machine *Machine, cmd slack.SlashCommand) {
	// Let the machine note the command so a session exists for follow-ups.
	machine.HandleText(TextEvent{Identity: cmd.UserID, ChatRef: cmd.ChannelID, Text: cmd.Command})

	switch cmd.Command {
	case "/menu":
		machine.HandleCallback(CallbackEvent{Identity: cmd.UserID, ChatRef: cmd.ChannelID, Token: tokenBackMain})
	case "/estado":
		handleStatusCommand(api, db, cmd)
	case "/historial":
		machine.HandleCallback(CallbackEvent{Identity: cmd.UserID, ChatRef: cmd.ChannelID, Token: tokenMenuHistory})
	case "/cerrar":
		handleCloseCommand(api, db, cmd)
	case "/metricas":
		handleStatsCommand(api, db, cmd)
	}
}

func handleStatusCommand(api *slack.Client, db *sql.DB, cmd slack.SlashCommand) {
	id, err := parseTicketArg(cmd.Text)
	if err != nil {
		postEphemeral(api, cmd, "Uso: /estado <id del ticket>")
		return
	}
	t, err := GetTicketByID(db, id)
	if errors.Is(err, ErrTicketNotFound) {
		postEphemeral(api, cmd, fmt.Sprintf("No existe ticket con ID %d.", id))
		return
	}
	if err != nil {
		log.Printf("estado lookup error id=%d: %v", id, err)
		postEphemeral(api, cmd, "Error consultando ticket.")
		return
	}
	postEphemeral(api, cmd, formatTicketDetail(t))
}

func handleCloseCommand(api *slack.Client, db *sql.DB, cmd slack.SlashCommand) {
	id, err := parseTicketArg(cmd.Text)
	if err != nil {
		postEphemeral(api, cmd, "Uso: /cerrar <id del ticket>")
		return
	}
	t, err := GetTicketByID(db, id)
	if errors.Is(err, ErrTicketNotFound) {
		postEphemeral(api, cmd, fmt.Sprintf("No existe ticket con ID %d.", id))
		return
	}
	if err != nil {
		log.Printf("cerrar lookup error id=%d: %v", id, err)
		postEphemeral(api, cmd, "Error consultando ticket.")
		return
	}
	// Only the reporter closes their own tickets.
	if t.ReporterIdentity != cmd.UserID {
		postEphemeral(api, cmd, "Solo el reportante puede cerrar este ticket.")
		log.Printf("cerrar denied user=%s ticket=%d", cmd.UserID, id)
		return
	}
	if t.Status == "closed" {
		postEphemeral(api, cmd, fmt.Sprintf("El ticket %d ya está cerrado.", id))
		return
	}

	ok, err := CloseTicket(db, id, time.Now())
	if err != nil || !ok {
		log.Printf("cerrar update error id=%d: %v", id, err)
		postEphemeral(api, cmd, "Error cerrando ticket.")
		return
	}
	postEphemeral(api, cmd, fmt.Sprintf("✅ Ticket %d cerrado. ¡Gracias por confirmar la solución!", id))
	log.Printf("ticket closed id=%d user=%s", id, cmd.UserID)
}

func handleStatsCommand(api *slack.Client, db *sql.DB, cmd slack.SlashCommand) {
	stats, err := GetTicketStats(db)
	if err != nil {
		log.Printf("metricas error: %v", err)
		postEphemeral(api, cmd, "Error consultando métricas.")
		return
	}

	var b strings.Builder
	b.WriteString("📊 *Métricas de incidentes*\n\n")
	fmt.Fprintf(&b, "- Tickets totales: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Tickets abiertos: %d\n", stats.Open)
	if stats.MostCommonType != "" {
		fmt.Fprintf(&b, "- Tipo más frecuente: %s (%d)\n", ServiceLabel(stats.MostCommonType), stats.MostCommonN)
	}
	postEphemeral(api, cmd, b.String())
}

func parseTicketArg(text string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}

func postEphemeral(api *slack.Client, cmd slack.SlashCommand, text string) {
	_, err := api.PostEphemeral(cmd.ChannelID, cmd.UserID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Error posting ephemeral: %v", err)
	}
}

// SlackResponder delivers machine output through the Slack Web API.
type SlackResponder struct {
	api *slack.Client
}

func NewSlackResponder(api *slack.Client) *SlackResponder {
	return &SlackResponder{api: api}
}

func (r *SlackResponder) SendText(chatRef, text string) {
	_, _, err := r.api.PostMessage(chatRef, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Error posting message channel=%s: %v", chatRef, err)
	}
}

// SendMenu renders buttons as action blocks, chunked so no block exceeds
// the Slack per-block element limit.
func (r *SlackResponder) SendMenu(chatRef, title string, buttons []MenuButton) {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, title, false, false),
			nil, nil,
		),
	}
	for start := 0; start < len(buttons); start += menuActionBlockSize {
		end := start + menuActionBlockSize
		if end > len(buttons) {
			end = len(buttons)
		}
		var elems []slack.BlockElement
		for _, btn := range buttons[start:end] {
			elems = append(elems, slack.NewButtonBlockElement(
				btn.Token,
				btn.Token,
				slack.NewTextBlockObject(slack.PlainTextType, btn.Text, true, false),
			))
		}
		blocks = append(blocks, slack.NewActionBlock(fmt.Sprintf("menu_%d", start/menuActionBlockSize), elems...))
	}

	_, _, err := r.api.PostMessage(chatRef, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		log.Printf("Error posting menu channel=%s: %v", chatRef, err)
	}
}

func (r *SlackResponder) SendFile(chatRef, fileRef, fileType, caption string) {
	text := fmt.Sprintf("%s\n%s", caption, fileRef)
	_, _, err := r.api.PostMessage(chatRef, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Error posting evidence link channel=%s: %v", chatRef, err)
	}
}
