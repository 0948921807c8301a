package main

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrTicketNotFound = errors.New("ticket not found")

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS tickets (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name         TEXT NOT NULL,
		user_id           TEXT DEFAULT '',
		phone             TEXT DEFAULT '',
		incident_type     TEXT NOT NULL,
		sub_type          TEXT NOT NULL,
		description       TEXT DEFAULT '',
		category          TEXT NOT NULL,
		priority          INTEGER NOT NULL,
		resolution_hours  INTEGER NOT NULL DEFAULT 0,
		resolution_time   TEXT DEFAULT '',
		sla_target        TEXT DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'open',
		reporter_identity TEXT NOT NULL,
		external_ref      TEXT DEFAULT '',
		ia_mode           INTEGER NOT NULL DEFAULT 0,
		ia_confidence     REAL NOT NULL DEFAULT 0,
		ia_decisions      TEXT DEFAULT '',
		created_at        DATETIME NOT NULL,
		closed_at         DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_reporter ON tickets(reporter_identity);
	CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);

	CREATE TABLE IF NOT EXISTS evidences (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id  INTEGER NOT NULL,
		file_ref   TEXT NOT NULL,
		file_type  TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_evidences_ticket ON evidences(ticket_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return db, nil
}

func InsertTicket(db *sql.DB, t Ticket) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO tickets
		 (full_name, user_id, phone, incident_type, sub_type, description,
		  category, priority, resolution_hours, resolution_time, sla_target,
		  status, reporter_identity, external_ref, ia_mode, ia_confidence, ia_decisions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.FullName, t.UserID, t.Phone, t.IncidentType, t.SubType, t.Description,
		t.Category, t.Priority, t.ResolutionHours, t.ResolutionTime, t.SLATarget,
		t.Status, t.ReporterIdentity, t.ExternalRef, t.IAMode, t.IAConfidence, t.IADecisions, t.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func InsertEvidences(db *sql.DB, ticketID int64, evs []PendingEvidence, at time.Time) error {
	if len(evs) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO evidences (ticket_id, file_ref, file_type, created_at) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range evs {
		if _, err := stmt.Exec(ticketID, ev.FileRef, ev.FileType, at); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const ticketColumns = `id, full_name, user_id, phone, incident_type, sub_type, description,
	category, priority, resolution_hours, resolution_time, sla_target,
	status, reporter_identity, external_ref, ia_mode, ia_confidence, ia_decisions,
	created_at, closed_at`

func scanTicket(row interface{ Scan(...any) error }) (Ticket, error) {
	var t Ticket
	var closedAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.FullName, &t.UserID, &t.Phone, &t.IncidentType, &t.SubType, &t.Description,
		&t.Category, &t.Priority, &t.ResolutionHours, &t.ResolutionTime, &t.SLATarget,
		&t.Status, &t.ReporterIdentity, &t.ExternalRef, &t.IAMode, &t.IAConfidence, &t.IADecisions,
		&t.CreatedAt, &closedAt,
	)
	if closedAt.Valid {
		t.ClosedAt = closedAt.Time
	}
	return t, err
}

func GetTicketByID(db *sql.DB, id int64) (Ticket, error) {
	t, err := scanTicket(db.QueryRow(
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrTicketNotFound
	}
	return t, err
}

func GetTicketsByReporter(db *sql.DB, identity string, limit int) ([]Ticket, error) {
	rows, err := db.Query(
		`SELECT `+ticketColumns+` FROM tickets
		 WHERE reporter_identity = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		identity, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func GetEvidencesByTicket(db *sql.DB, ticketID int64) ([]Evidence, error) {
	rows, err := db.Query(
		`SELECT id, ticket_id, file_ref, file_type, created_at
		 FROM evidences WHERE ticket_id = ? ORDER BY id`,
		ticketID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evidence
	for rows.Next() {
		var ev Evidence
		if err := rows.Scan(&ev.ID, &ev.TicketID, &ev.FileRef, &ev.FileType, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func UpdateExternalRef(db *sql.DB, id int64, ref string) error {
	_, err := db.Exec(`UPDATE tickets SET external_ref = ? WHERE id = ?`, ref, id)
	return err
}

// CloseTicket marks a ticket closed; reports whether it existed.
func CloseTicket(db *sql.DB, id int64, at time.Time) (bool, error) {
	res, err := db.Exec(
		`UPDATE tickets SET status = 'closed', closed_at = ? WHERE id = ?`,
		at, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func GetTicketStats(db *sql.DB) (TicketStats, error) {
	var s TicketStats
	if err := db.QueryRow(`SELECT COUNT(*) FROM tickets`).Scan(&s.Total); err != nil {
		return s, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM tickets WHERE status = 'open'`).Scan(&s.Open); err != nil {
		return s, err
	}
	err := db.QueryRow(
		`SELECT incident_type, COUNT(*) AS cnt FROM tickets
		 GROUP BY incident_type ORDER BY cnt DESC LIMIT 1`,
	).Scan(&s.MostCommonType, &s.MostCommonN)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	return s, err
}

// SQLStore adapts the database helpers to the TicketStore interface the
// conversation machine consumes.
type SQLStore struct {
	DB *sql.DB
}

func (s *SQLStore) InsertTicket(t Ticket) (int64, error) {
	return InsertTicket(s.DB, t)
}

func (s *SQLStore) InsertEvidences(ticketID int64, evs []PendingEvidence, at time.Time) error {
	return InsertEvidences(s.DB, ticketID, evs, at)
}

func (s *SQLStore) GetTicketByID(id int64) (Ticket, error) {
	return GetTicketByID(s.DB, id)
}

func (s *SQLStore) GetEvidencesByTicket(ticketID int64) ([]Evidence, error) {
	return GetEvidencesByTicket(s.DB, ticketID)
}

func (s *SQLStore) GetTicketsByReporter(identity string, limit int) ([]Ticket, error) {
	return GetTicketsByReporter(s.DB, identity, limit)
}

func (s *SQLStore) UpdateExternalRef(id int64, ref string) error {
	return UpdateExternalRef(s.DB, id, ref)
}
