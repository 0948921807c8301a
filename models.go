package main

import "time"

// Intake modes recorded on a ticket.
const (
	ModeManual   = 0
	ModeBasic    = 1
	ModeAdvanced = 2
)

// Inbound events handed to the conversation machine by the transport.
// Identity is the reporter's transport user id; ChatRef is where replies go.
type TextEvent struct {
	Identity string
	ChatRef  string
	Text     string
}

type CallbackEvent struct {
	Identity string
	ChatRef  string
	Token    string
}

type MediaEvent struct {
	Identity string
	ChatRef  string
	FileRef  string
	FileType string // "photo", "video", "document", or "audio"
	Caption  string
}

// UserInfo holds identity fragments pulled out of free text.
// Absent fields are empty strings, never errors.
type UserInfo struct {
	Name  string
	ID    string
	Phone string
}

// AnalysisMeta records what the classifier saw, for ticket provenance.
type AnalysisMeta struct {
	RawText         string
	NormalizedText  string
	MatchedSubtypes []string
}

// Classification is the full multi-label result of the advanced classifier.
type Classification struct {
	Service          string
	SubType          string
	Confidence       float64
	Symptoms         []string
	DetectedSubtypes []string
	Decisions        []string
	Meta             AnalysisMeta
}

// BasicClassification is the single-label result of the quick rule table.
type BasicClassification struct {
	Service    string
	SubType    string
	Confidence float64
}

// SLAProfile is the severity profile attached to a (service, subtype) pair.
type SLAProfile struct {
	Category        string
	Priority        int
	ResolutionHours int
	ResolutionTime  string
	SLATarget       string
}

type Ticket struct {
	ID               int64
	FullName         string
	UserID           string
	Phone            string
	IncidentType     string
	SubType          string
	Description      string
	Category         string
	Priority         int
	ResolutionHours  int
	ResolutionTime   string
	SLATarget        string
	Status           string
	ReporterIdentity string
	ExternalRef      string
	IAMode           int
	IAConfidence     float64
	IADecisions      string // JSON-serialized action list, empty for manual
	CreatedAt        time.Time
	ClosedAt         time.Time // zero until closed
}

type Evidence struct {
	ID        int64
	TicketID  int64
	FileRef   string
	FileType  string
	CreatedAt time.Time
}

// PendingEvidence is an attachment held on a session until finalize.
type PendingEvidence struct {
	FileRef  string
	FileType string
}

type TicketStats struct {
	Total          int
	Open           int
	MostCommonType string
	MostCommonN    int
}

// MenuButton is one option in a menu rendered by the transport.
type MenuButton struct {
	Text  string
	Token string
}
