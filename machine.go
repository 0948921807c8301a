package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Responder is the machine's only channel back to the reporter. The Slack
// adapter implements it; tests use a fake.
type Responder interface {
	SendText(chatRef, text string)
	SendMenu(chatRef, title string, buttons []MenuButton)
	SendFile(chatRef, fileRef, fileType, caption string)
}

// TicketStore persists tickets and evidence. Persistence must succeed before
// a ticket is considered created.
type TicketStore interface {
	InsertTicket(t Ticket) (int64, error)
	InsertEvidences(ticketID int64, evs []PendingEvidence, at time.Time) error
	GetTicketByID(id int64) (Ticket, error)
	GetEvidencesByTicket(ticketID int64) ([]Evidence, error)
	GetTicketsByReporter(identity string, limit int) ([]Ticket, error)
	UpdateExternalRef(id int64, ref string) error
}

// Notifier delivers the NOC notification after a ticket is persisted.
type Notifier interface {
	TicketCreated(t Ticket)
}

// Registrar registers the ticket with the external incident-management
// system. Failure is isolated: it never rolls back the local ticket.
type Registrar interface {
	Register(t Ticket) (string, error)
}

// Capabilities declares at startup which classifiers this deployment has.
// A nil field disables the corresponding intake flow; the machine degrades
// with a user-visible message instead of probing at runtime.
type Capabilities struct {
	Basic    *BasicClassifier
	Advanced *KeywordClassifier
}

// Machine drives the three intake flows over per-identity sessions. Events
// for one reporter are handled to completion in order; different reporters
// never contend, so a slow external call in one flow cannot stall another's.
type Machine struct {
	mu        sync.Mutex // guards locks
	locks     map[string]*sync.Mutex
	sessions  *SessionStore
	caps      Capabilities
	responder Responder
	store     TicketStore
	notifier  Notifier
	registrar Registrar
	now       func() time.Time
}

func NewMachine(sessions *SessionStore, caps Capabilities, responder Responder, store TicketStore, notifier Notifier, registrar Registrar) *Machine {
	return &Machine{
		locks:     make(map[string]*sync.Mutex),
		sessions:  sessions,
		caps:      caps,
		responder: responder,
		store:     store,
		notifier:  notifier,
		registrar: registrar,
		now:       time.Now,
	}
}

// lockIdentity serializes event handling for one reporter and returns the
// held lock. Locks are never removed; the map is bounded by the reporter
// population.
func (m *Machine) lockIdentity(identity string) *sync.Mutex {
	m.mu.Lock()
	l, ok := m.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		m.locks[identity] = l
	}
	m.mu.Unlock()
	l.Lock()
	return l
}

const (
	msgGreeting          = "¡Hola! Soy el asistente de incidentes. Selecciona el tipo de incidente:"
	msgSelectService     = "Selecciona el tipo de incidente:"
	msgSelectSubtype     = "Selecciona un subtipo:"
	msgAskName           = "Perfecto. Para crear el ticket, por favor ingresa tu nombre completo:"
	msgAskID             = "Por favor ingresa tu número de cédula:"
	msgAskPhone          = "Por favor ingresa tu número de teléfono:"
	msgAskDescription    = "Describe el incidente con detalle (puedes enviar fotos/videos):"
	msgAskNameAdvanced   = "Antes de crear el ticket, por favor ingresa tu nombre completo:"
	msgAskNameEdit       = "Ingresa tu nombre completo:"
	msgAskTicketID       = "Ingresa el ID del ticket:"
	msgBasicUnavailable  = "La funcionalidad de IA básica no está disponible en este despliegue."
	msgAdvUnavailable    = "La funcionalidad de IA avanzada no está disponible en este despliegue."
	msgAdvAnalyzing      = "🧠 Analizando con IA avanzada..."
	msgSaveFailed        = "❌ Error al guardar el ticket."
	msgInvalidTicketID   = "❌ ID inválido. Intenta de nuevo."
	msgTicketLookupError = "Error consultando ticket."
	msgHistoryError      = "Error consultando historial."
	msgNoHistory         = "No tienes tickets registrados."
	msgRegisterFailed    = "⚠ El ticket fue creado localmente, pero no se pudo registrar automáticamente en iTOP."
)

func (m *Machine) HandleText(ev TextEvent) {
	l := m.lockIdentity(ev.Identity)
	defer l.Unlock()

	sess, ok := m.sessions.Lookup(ev.Identity)
	if !ok {
		// Top-level commands are owned by the transport; just open an empty
		// session so follow-up events have somewhere to land.
		if strings.HasPrefix(ev.Text, "/") {
			m.sessions.Create(ev.Identity, m.now())
			return
		}
		sess = m.sessions.Create(ev.Identity, m.now())
		sess.Step = stepStart
		m.responder.SendMenu(ev.ChatRef, msgGreeting, mainMenu)
		return
	}
	sess.LastActivity = m.now()

	switch sess.Step {
	case stepBasicProcessing:
		m.runBasicIntake(sess, ev)

	case stepAdvancedProcessing:
		m.runAdvancedIntake(sess, ev)

	case stepAwaitingName:
		sess.Name = ev.Text
		sess.Step = stepAwaitingID
		m.responder.SendText(ev.ChatRef, msgAskID)

	case stepAwaitingID:
		sess.IDNumber = ev.Text
		sess.Step = stepAwaitingPhone
		m.responder.SendText(ev.ChatRef, msgAskPhone)

	case stepAwaitingPhone:
		sess.Phone = ev.Text
		sess.Step = stepAwaitingDescription
		m.responder.SendText(ev.ChatRef, msgAskDescription)

	case stepAwaitingDescription:
		sess.Description = ev.Text
		m.finalize(sess, ev.ChatRef)

	case stepAdvancedAskName:
		sess.Name = ev.Text
		sess.Step = stepAdvancedAskID
		m.responder.SendText(ev.ChatRef, msgAskID)

	case stepAdvancedAskID:
		sess.IDNumber = ev.Text
		sess.Step = stepAdvancedAskPhone
		m.responder.SendText(ev.ChatRef, msgAskPhone)

	case stepAdvancedAskPhone:
		sess.Phone = ev.Text
		sess.Step = stepAdvancedConfirmation
		m.responder.SendMenu(ev.ChatRef, advancedSummary(sess), []MenuButton{
			{Text: "✅ Confirmar y crear ticket", Token: tokenAdvancedConfirm},
			{Text: "⬅️ Volver al menú principal", Token: tokenBackMain},
		})

	case stepAwaitingTicketID:
		sess.Step = ""
		m.lookupTicket(ev)

	default:
		low := strings.ToLower(ev.Text)
		if low == "/menu" || low == "menu" {
			m.responder.SendMenu(ev.ChatRef, msgSelectService, mainMenu)
		}
	}
}

func (m *Machine) HandleCallback(ev CallbackEvent) {
	l := m.lockIdentity(ev.Identity)
	defer l.Unlock()

	sess, ok := m.sessions.Lookup(ev.Identity)
	if !ok {
		sess = m.sessions.Create(ev.Identity, m.now())
	}
	sess.LastActivity = m.now()

	switch {
	case ev.Token == tokenMyQueries:
		m.responder.SendMenu(ev.ChatRef, "📁 Mis consultas:", []MenuButton{
			{Text: "🔍 Consultar ticket por ID", Token: tokenQueryTicket},
			{Text: "📜 Ver historial", Token: tokenMenuHistory},
			{Text: "⬅️ Volver", Token: tokenBackMain},
		})

	case ev.Token == tokenQueryTicket:
		sess.Step = stepAwaitingTicketID
		m.responder.SendText(ev.ChatRef, msgAskTicketID)

	case ev.Token == tokenMenuHistory:
		m.sendHistory(ev.Identity, ev.ChatRef)

	case ev.Token == tokenBackMain:
		// Cancel: discard everything collected and restart the manual flow.
		*sess = Session{Identity: sess.Identity, Step: stepStart, LastActivity: m.now()}
		m.responder.SendMenu(ev.ChatRef, msgSelectService, mainMenu)

	case ev.Token == tokenBasicAssist:
		sess.Step = stepBasicProcessing
		m.responder.SendText(ev.ChatRef,
			"🚀 *Modo IA Básica Activado*\n\nPor favor describe tu problema en un solo mensaje (ej: \"Mi cámara 123 está sin imagen, soy Juan, cédula 12345678\").")

	case ev.Token == tokenAdvancedAssist:
		sess.Step = stepAdvancedProcessing
		m.responder.SendText(ev.ChatRef,
			"🚀 *MODO IA AVANZADA ACTIVADO*\n\nDescribe tu problema en detalle y el asistente analizará y sugerirá acciones técnicas.")

	case ev.Token == tokenBasicConfirm, ev.Token == tokenAdvancedConfirm:
		m.finalize(sess, ev.ChatRef)

	case ev.Token == tokenBasicEdit:
		// Re-enter the manual collection steps without re-classifying.
		sess.Step = stepAwaitingName
		m.responder.SendText(ev.ChatRef, msgAskNameEdit)

	case IsService(ev.Token):
		sess.Service = ev.Token
		m.responder.SendMenu(ev.ChatRef, msgSelectSubtype, submenus[ev.Token])

	case IsSubtype(ev.Token):
		sess.SubType = ev.Token
		sess.Step = stepAwaitingName
		m.responder.SendText(ev.ChatRef, msgAskName)
	}
}

// HandleMedia records an attachment as pending evidence. Only meaningful
// while the manual flow waits for a description; a media message there
// triggers finalize immediately, merging any caption into the description.
func (m *Machine) HandleMedia(ev MediaEvent) {
	l := m.lockIdentity(ev.Identity)
	defer l.Unlock()

	sess, ok := m.sessions.Lookup(ev.Identity)
	if !ok || sess.Step != stepAwaitingDescription {
		return
	}
	sess.LastActivity = m.now()
	sess.PendingEvidence = append(sess.PendingEvidence, PendingEvidence{
		FileRef:  ev.FileRef,
		FileType: ev.FileType,
	})
	if ev.Caption != "" {
		if sess.Description != "" {
			sess.Description += "\n"
		}
		sess.Description += ev.Caption
	}
	m.finalize(sess, ev.ChatRef)
}

func (m *Machine) runBasicIntake(sess *Session, ev TextEvent) {
	if m.caps.Basic == nil {
		m.responder.SendText(ev.ChatRef, msgBasicUnavailable)
		sess.Step = stepStart
		return
	}

	analysis := m.caps.Basic.Classify(ev.Text)
	info := m.caps.Basic.ParseUser(ev.Text)

	sess.Service = analysis.Service
	sess.SubType = analysis.SubType
	sess.Description = ev.Text
	sess.Name = firstNonEmpty(info.Name, sess.Name, "Usuario_"+ev.Identity)
	sess.IDNumber = firstNonEmpty(info.ID, sess.IDNumber, "Por confirmar")
	sess.Phone = firstNonEmpty(info.Phone, sess.Phone, "Por confirmar")
	sess.Mode = ModeBasic
	sess.IAConfidence = analysis.Confidence
	sess.IADecisions = ""
	sess.Step = stepBasicConfirmation

	m.responder.SendMenu(ev.ChatRef, basicSummary(sess), []MenuButton{
		{Text: "✅ Sí, crear ticket", Token: tokenBasicConfirm},
		{Text: "✏️ Editar información", Token: tokenBasicEdit},
		{Text: "⬅️ Volver al menú principal", Token: tokenBackMain},
	})
}

func (m *Machine) runAdvancedIntake(sess *Session, ev TextEvent) {
	if m.caps.Advanced == nil {
		m.responder.SendText(ev.ChatRef, msgAdvUnavailable)
		sess.Step = stepStart
		return
	}

	m.responder.SendText(ev.ChatRef, msgAdvAnalyzing)
	analysis := m.caps.Advanced.Classify(ev.Text)
	info := ExtractUserInfo(ev.Text)

	sess.Service = analysis.Service
	sess.SubType = analysis.SubType
	sess.Description = ev.Text
	sess.Name = firstNonEmpty(info.Name, sess.Name, "Usuario_"+ev.Identity)
	sess.IDNumber = firstNonEmpty(info.ID, sess.IDNumber)
	sess.Phone = firstNonEmpty(info.Phone, sess.Phone)
	sess.Mode = ModeAdvanced
	sess.IAConfidence = analysis.Confidence
	sess.IADecisions = marshalDecisions(analysis.Decisions)
	sess.Analysis = &analysis
	sess.Step = stepAdvancedAskName

	m.responder.SendText(ev.ChatRef, msgAskNameAdvanced)
}

// finalize resolves the SLA profile, persists the ticket, flushes evidence,
// notifies the NOC, registers externally and deletes the session. If the
// ticket insert fails nothing else happens.
func (m *Machine) finalize(sess *Session, chatRef string) {
	profile := ResolveSLA(sess.Service, sess.SubType)
	now := m.now()

	ticket := Ticket{
		FullName:         sess.Name,
		UserID:           sess.IDNumber,
		Phone:            sess.Phone,
		IncidentType:     sess.Service,
		SubType:          sess.SubType,
		Description:      sess.Description,
		Category:         profile.Category,
		Priority:         profile.Priority,
		ResolutionHours:  profile.ResolutionHours,
		ResolutionTime:   profile.ResolutionTime,
		SLATarget:        profile.SLATarget,
		Status:           "open",
		ReporterIdentity: sess.Identity,
		IAMode:           sess.Mode,
		IAConfidence:     sess.IAConfidence,
		IADecisions:      sess.IADecisions,
		CreatedAt:        now,
	}

	id, err := m.store.InsertTicket(ticket)
	if err != nil {
		log.Printf("finalize insert error reporter=%s: %v", sess.Identity, err)
		m.responder.SendText(chatRef, msgSaveFailed)
		return
	}
	ticket.ID = id

	if len(sess.PendingEvidence) > 0 {
		if err := m.store.InsertEvidences(id, sess.PendingEvidence, now); err != nil {
			log.Printf("finalize evidence insert error ticket=%d: %v", id, err)
		}
	}

	m.responder.SendText(chatRef, ticketCreatedSummary(ticket, sess.Analysis))
	m.notifier.TicketCreated(ticket)
	log.Printf("ticket created id=%d reporter=%s service=%s subtype=%s mode=%d",
		id, sess.Identity, ticket.IncidentType, ticket.SubType, ticket.IAMode)

	m.sessions.Delete(sess.Identity)
	m.registerExternal(ticket, chatRef)
}

// registerExternal runs after local persistence and never affects it; a
// failure only skips the cross-reference and warns the reporter.
func (m *Machine) registerExternal(t Ticket, chatRef string) {
	ref, err := m.registrar.Register(t)
	if err != nil {
		log.Printf("external registration error ticket=%d: %v", t.ID, err)
		m.responder.SendText(chatRef, msgRegisterFailed)
		return
	}
	if ref == "" {
		return
	}
	if err := m.store.UpdateExternalRef(t.ID, ref); err != nil {
		log.Printf("external ref update error ticket=%d: %v", t.ID, err)
	}
	m.responder.SendText(chatRef, fmt.Sprintf("🔗 El incidente también fue registrado en iTOP con ID: *%s*", ref))
}

func (m *Machine) lookupTicket(ev TextEvent) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, ev.Text)
	if digits == "" {
		m.responder.SendText(ev.ChatRef, msgInvalidTicketID)
		return
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		m.responder.SendText(ev.ChatRef, msgInvalidTicketID)
		return
	}

	t, err := m.store.GetTicketByID(id)
	if errors.Is(err, ErrTicketNotFound) {
		m.responder.SendText(ev.ChatRef, fmt.Sprintf("No existe ticket con ID %d.", id))
		return
	}
	if err != nil {
		log.Printf("ticket lookup error id=%d: %v", id, err)
		m.responder.SendText(ev.ChatRef, msgTicketLookupError)
		return
	}

	m.responder.SendText(ev.ChatRef, formatTicketDetail(t))
	m.sendEvidences(ev.ChatRef, t.ID)
}

func (m *Machine) sendEvidences(chatRef string, ticketID int64) {
	evidences, err := m.store.GetEvidencesByTicket(ticketID)
	if err != nil {
		log.Printf("evidence lookup error ticket=%d: %v", ticketID, err)
		return
	}
	for _, ev := range evidences {
		switch ev.FileType {
		case "photo":
			m.responder.SendFile(chatRef, ev.FileRef, ev.FileType, "Evidencia (foto)")
		case "video":
			m.responder.SendFile(chatRef, ev.FileRef, ev.FileType, "Evidencia (video)")
		default:
			m.responder.SendFile(chatRef, ev.FileRef, ev.FileType, fmt.Sprintf("Evidencia (%s)", ev.FileType))
		}
	}
}

func (m *Machine) sendHistory(identity, chatRef string) {
	tickets, err := m.store.GetTicketsByReporter(identity, 20)
	if err != nil {
		log.Printf("history lookup error reporter=%s: %v", identity, err)
		m.responder.SendText(chatRef, msgHistoryError)
		return
	}
	if len(tickets) == 0 {
		m.responder.SendText(chatRef, msgNoHistory)
		return
	}

	var b strings.Builder
	b.WriteString("📚 *Tus últimos tickets*:\n\n")
	for _, t := range tickets {
		fmt.Fprintf(&b, "*#%d* — %s\n", t.ID, ServiceLabel(t.IncidentType))
		fmt.Fprintf(&b, "   %s\n", SubtypeLabel(t.SubType))
		fmt.Fprintf(&b, "   Estado: %s — Creado: %s\n\n", t.Status, t.CreatedAt.Format("2006-01-02 15:04"))
	}
	m.responder.SendText(chatRef, b.String())
}

func basicSummary(sess *Session) string {
	return fmt.Sprintf(
		"🤖 *Análisis IA - Resumen Detectado*\n\n"+
			"*Confianza:* %.1f%%\n"+
			"*Servicio sugerido:* %s\n"+
			"*Subtipo sugerido:* %s\n"+
			"*Nombre detectado:* %s\n"+
			"*Cédula detectada:* %s\n"+
			"*Teléfono detectado:* %s\n\n"+
			"¿Confirmas la creación del ticket con esta información?",
		sess.IAConfidence*100,
		ServiceLabel(sess.Service), SubtypeLabel(sess.SubType),
		sess.Name, sess.IDNumber, sess.Phone,
	)
}

func advancedSummary(sess *Session) string {
	symptoms := "Ninguno"
	decisions := "Ninguna"
	if a := sess.Analysis; a != nil {
		if len(a.Symptoms) > 0 {
			symptoms = strings.Join(a.Symptoms, ", ")
		}
		if len(a.Decisions) > 0 {
			var lines []string
			for _, d := range a.Decisions {
				lines = append(lines, "• "+d)
			}
			decisions = strings.Join(lines, "\n")
		}
	}
	return fmt.Sprintf(
		"🧠 *ANÁLISIS IA AVANZADA*\n\n"+
			"*Confianza:* %.1f%%\n"+
			"*Servicio sugerido:* %s\n"+
			"*Subtipo sugerido:* %s\n"+
			"*Síntomas detectados:* %s\n\n"+
			"*Acciones sugeridas:*\n%s\n\n"+
			"*Nombre:* %s\n"+
			"*Cédula:* %s\n"+
			"*Teléfono:* %s\n\n"+
			"¿Confirmas la creación del ticket con esta información?",
		sess.IAConfidence*100,
		ServiceLabel(sess.Service), SubtypeLabel(sess.SubType),
		symptoms, decisions,
		sess.Name, sess.IDNumber, sess.Phone,
	)
}

func ticketCreatedSummary(t Ticket, analysis *Classification) string {
	var modeIcon, modeText string
	switch t.IAMode {
	case ModeAdvanced:
		modeIcon, modeText = "🧠 ", "IA Avanzada"
	case ModeBasic:
		modeIcon, modeText = "🤖 ", "IA Básica"
	default:
		modeIcon, modeText = "✅ ", "Manual"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s*Ticket creado exitosamente*%s\n\n", modeIcon, modeIcon)
	fmt.Fprintf(&b, "*ID del Ticket:* %d\n", t.ID)
	fmt.Fprintf(&b, "*Nombre:* %s\n", t.FullName)
	fmt.Fprintf(&b, "*Cédula:* %s\n", t.UserID)
	fmt.Fprintf(&b, "*Teléfono:* %s\n", t.Phone)
	fmt.Fprintf(&b, "*Tipo de incidente:* %s\n", ServiceLabel(t.IncidentType))
	fmt.Fprintf(&b, "*Subtipo:* %s\n", SubtypeLabel(t.SubType))
	fmt.Fprintf(&b, "*Modo:* %s\n\n", modeText)
	b.WriteString("*Impacto:*\n")
	fmt.Fprintf(&b, "- *Categoría:* %s\n", t.Category)
	fmt.Fprintf(&b, "- *Prioridad:* %d\n", t.Priority)
	fmt.Fprintf(&b, "- *Tiempo de resolución:* %s\n\n", t.ResolutionTime)
	if analysis != nil {
		fmt.Fprintf(&b, "*Decisiones automáticas:* %d\n\n", len(analysis.Decisions))
	}
	b.WriteString("Nuestro equipo está trabajando en tu solicitud. Gracias por reportarlo.")
	return b.String()
}

func formatTicketDetail(t Ticket) string {
	sla := t.SLATarget
	if sla == "" {
		sla = "—"
	}
	return fmt.Sprintf(
		"📄 *Ticket %d*\n"+
			"Estado: %s\n"+
			"Servicio: %s\n"+
			"Subtipo: %s\n"+
			"Prioridad: %d\n"+
			"Descripción: %s\n"+
			"Creado: %s\n"+
			"SLA: %s",
		t.ID, t.Status, ServiceLabel(t.IncidentType), SubtypeLabel(t.SubType),
		t.Priority, t.Description, t.CreatedAt.Format("2006-01-02 15:04"), sla,
	)
}

func marshalDecisions(decisions []string) string {
	if len(decisions) == 0 {
		return ""
	}
	data, err := json.Marshal(decisions)
	if err != nil {
		return ""
	}
	return string(data)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
