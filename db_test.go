package main

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "incidentbot-test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleTicket(identity string, at time.Time) Ticket {
	return Ticket{
		FullName:         "Juan Pérez",
		UserID:           "12345678",
		Phone:            "3001234567",
		IncidentType:     ServiceCameraDown,
		SubType:          SubCamNoResp,
		Description:      "sin señal desde anoche",
		Category:         "Alta",
		Priority:         1,
		ResolutionHours:  4,
		ResolutionTime:   "4h (urbano) / 24h (rural)",
		SLATarget:        "MTTR cámara ≤4h urbano",
		Status:           "open",
		ReporterIdentity: identity,
		IAMode:           ModeManual,
		CreatedAt:        at,
	}
}

func TestTicketRoundTrip(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	id, err := InsertTicket(db, sampleTicket("U001", base))
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("first ticket id = %d", id)
	}

	got, err := GetTicketByID(db, id)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if got.FullName != "Juan Pérez" || got.SubType != SubCamNoResp || got.Priority != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Status != "open" || !got.ClosedAt.IsZero() {
		t.Fatalf("fresh ticket status wrong: %s closed_at=%v", got.Status, got.ClosedAt)
	}

	if _, err := GetTicketByID(db, 999); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestEvidenceBatchInsert(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	id, err := InsertTicket(db, sampleTicket("U001", base))
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}

	evs := []PendingEvidence{
		{FileRef: "F1", FileType: "photo"},
		{FileRef: "F2", FileType: "video"},
	}
	if err := InsertEvidences(db, id, evs, base); err != nil {
		t.Fatalf("InsertEvidences failed: %v", err)
	}
	if err := InsertEvidences(db, id, nil, base); err != nil {
		t.Fatalf("InsertEvidences with empty batch failed: %v", err)
	}

	got, err := GetEvidencesByTicket(db, id)
	if err != nil {
		t.Fatalf("GetEvidencesByTicket failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 evidences, got %d", len(got))
	}
	if got[0].FileRef != "F1" || got[1].FileType != "video" {
		t.Fatalf("evidence order or fields wrong: %+v", got)
	}
}

func TestGetTicketsByReporter(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 3; i++ {
		tk := sampleTicket("U001", base.Add(time.Duration(i)*time.Minute))
		if _, err := InsertTicket(db, tk); err != nil {
			t.Fatalf("InsertTicket failed: %v", err)
		}
	}
	if _, err := InsertTicket(db, sampleTicket("U002", base)); err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}

	got, err := GetTicketsByReporter(db, "U001", 2)
	if err != nil {
		t.Fatalf("GetTicketsByReporter failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("limit not applied: %d", len(got))
	}
	// Newest first.
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("order wrong: %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}
	for _, tk := range got {
		if tk.ReporterIdentity != "U001" {
			t.Fatalf("wrong reporter: %s", tk.ReporterIdentity)
		}
	}
}

func TestUpdateExternalRef(t *testing.T) {
	db := newTestDB(t)
	id, err := InsertTicket(db, sampleTicket("U001", time.Now().UTC()))
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}
	if err := UpdateExternalRef(db, id, "R-000042"); err != nil {
		t.Fatalf("UpdateExternalRef failed: %v", err)
	}
	got, err := GetTicketByID(db, id)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if got.ExternalRef != "R-000042" {
		t.Fatalf("external_ref = %q", got.ExternalRef)
	}
}

func TestCloseTicket(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	id, err := InsertTicket(db, sampleTicket("U001", base))
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}

	ok, err := CloseTicket(db, id, base.Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("CloseTicket failed: ok=%v err=%v", ok, err)
	}
	got, err := GetTicketByID(db, id)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if got.Status != "closed" || got.ClosedAt.IsZero() {
		t.Fatalf("close not persisted: %+v", got)
	}

	ok, err = CloseTicket(db, 999, base)
	if err != nil {
		t.Fatalf("CloseTicket missing id errored: %v", err)
	}
	if ok {
		t.Fatal("CloseTicket reported success for missing ticket")
	}
}

func TestGetTicketStats(t *testing.T) {
	db := newTestDB(t)

	stats, err := GetTicketStats(db)
	if err != nil {
		t.Fatalf("GetTicketStats on empty db failed: %v", err)
	}
	if stats.Total != 0 || stats.Open != 0 {
		t.Fatalf("empty stats wrong: %+v", stats)
	}

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		if _, err := InsertTicket(db, sampleTicket("U001", base)); err != nil {
			t.Fatalf("InsertTicket failed: %v", err)
		}
	}
	outage := sampleTicket("U002", base)
	outage.IncidentType = ServiceOutage
	outage.SubType = SubOutageSite
	id, err := InsertTicket(db, outage)
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}
	if _, err := CloseTicket(db, id, base.Add(time.Hour)); err != nil {
		t.Fatalf("CloseTicket failed: %v", err)
	}

	stats, err = GetTicketStats(db)
	if err != nil {
		t.Fatalf("GetTicketStats failed: %v", err)
	}
	if stats.Total != 3 || stats.Open != 2 {
		t.Fatalf("stats wrong: %+v", stats)
	}
	if stats.MostCommonType != ServiceCameraDown || stats.MostCommonN != 2 {
		t.Fatalf("most common wrong: %+v", stats)
	}
}
