package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"apix-lead-bot/internal/domain"
)

// LeadStore — хранилище дневных корзин на SQLite. Порядок заявок в
// корзине задаётся автоинкрементным id. Каждая мутация — отдельный
// durable-стейтмент, отдельный флаш не нужен.
type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(dsn string) (*LeadStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &LeadStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS leads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    day_key TEXT NOT NULL,
    lead_id TEXT NOT NULL,
    name TEXT,
    phone TEXT NOT NULL,
    area TEXT,
    location TEXT,
    mount TEXT,
    timing TEXT,
    platform TEXT,
    source TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_day_key ON leads(day_key);
`)
	return err
}

func (s *LeadStore) Append(dayKey string, lead domain.Lead) error {
	_, err := s.db.Exec(
		`INSERT INTO leads(day_key, lead_id, name, phone, area, location, mount, timing, platform, source, created_at) VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		dayKey, lead.ID, lead.Name, lead.Phone, lead.Area, lead.Location, lead.Mount, lead.Timing, lead.Platform, lead.Source,
		lead.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("sqlite: append: %w", err)
	}
	return nil
}

func (s *LeadStore) Get(dayKey string) []domain.Lead {
	rows, err := s.db.Query(
		`SELECT lead_id, name, phone, area, location, mount, timing, platform, source, created_at FROM leads WHERE day_key = ? ORDER BY id`,
		dayKey,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Name, &l.Phone, &l.Area, &l.Location, &l.Mount, &l.Timing, &l.Platform, &l.Source, &createdAt); err != nil {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			l.CreatedAt = ts
		}
		out = append(out, l)
	}
	return out
}

func (s *LeadStore) Evict(dayKey string) error {
	if _, err := s.db.Exec(`DELETE FROM leads WHERE day_key = ?`, dayKey); err != nil {
		return fmt.Errorf("sqlite: evict: %w", err)
	}
	return nil
}

func (s *LeadStore) Close() error { return s.db.Close() }
