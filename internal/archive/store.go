// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps snapshots of ticket digests in a local SQLite
// database so they can be listed, searched and exported offline.
// Fetch commands never read from it.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/jira-digest/pkg/types"
)

const (
	dbFile = "archive.db"

	// timeLayout is fixed-width so archived_at sorts as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNotFound is returned when a key is not in the archive.
var ErrNotFound = errors.New("archive: ticket not found")

// Store manages the archive database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	now        func() time.Time
}

// ListOptions filters List. Zero values match everything.
type ListOptions struct {
	// Project matches the key prefix before the dash ("SHOP" for SHOP-42).
	Project string
	// Status matches the workflow status name, case-insensitively.
	Status string
	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// Open opens or creates the archive at cfg.Dir/archive.db and creates the
// schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultArchiveDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultArchiveResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tickets (
			key TEXT PRIMARY KEY,
			project TEXT NOT NULL,
			summary TEXT NOT NULL,
			status TEXT,
			search_text TEXT NOT NULL,
			data TEXT NOT NULL,
			archived_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_project ON tickets(project)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_archived_at ON tickets(archived_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores t, replacing any earlier snapshot of the same key.
func (s *Store) Save(ctx context.Context, t types.Ticket) error {
	if t.Key == "" {
		return errors.New("archive: ticket has no key")
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding ticket %s: %w", t.Key, err)
	}
	archivedAt := s.now().UTC().Format(timeLayout)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tickets (key, project, summary, status, search_text, data, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			project=excluded.project, summary=excluded.summary, status=excluded.status,
			search_text=excluded.search_text, data=excluded.data, archived_at=excluded.archived_at`,
		t.Key, project(t.Key), t.Summary, t.Status, searchText(t), string(data), archivedAt,
	)
	if err != nil {
		return fmt.Errorf("saving ticket %s: %w", t.Key, err)
	}
	return nil
}

// Get returns the archived snapshot of key.
func (s *Store) Get(ctx context.Context, key string) (types.ArchivedTicket, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data, archived_at FROM tickets WHERE key = ?`, key)
	at, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ArchivedTicket{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return at, err
}

// List returns archived tickets, most recently archived first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.ArchivedTicket, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT data, archived_at FROM tickets WHERE 1=1`)
	if opts.Project != "" {
		qb.WriteString(` AND project = ?`)
		args = append(args, strings.ToUpper(opts.Project))
	}
	if opts.Status != "" {
		qb.WriteString(` AND status = ? COLLATE NOCASE`)
		args = append(args, opts.Status)
	}
	qb.WriteString(` ORDER BY archived_at DESC, key LIMIT ?`)
	args = append(args, s.limit(opts.Limit))

	return s.query(ctx, qb.String(), args...)
}

// Search returns archived tickets whose summary, description or sections
// contain text, ignoring case, most recently archived first.
func (s *Store) Search(ctx context.Context, text string, limit int) ([]types.ArchivedTicket, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("archive: empty search text")
	}
	return s.query(ctx,
		`SELECT data, archived_at FROM tickets
		 WHERE search_text LIKE ? ESCAPE '\'
		 ORDER BY archived_at DESC, key LIMIT ?`,
		"%"+escapeLike(strings.ToLower(text))+"%", s.limit(limit))
}

// Delete removes key from the archive.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tickets WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting ticket %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting ticket %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

func (s *Store) limit(n int) int {
	if n <= 0 {
		return s.maxResults
	}
	return n
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.ArchivedTicket, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	tickets := []types.ArchivedTicket{}
	for rows.Next() {
		at, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archive rows: %w", err)
	}
	return tickets, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(row scanner) (types.ArchivedTicket, error) {
	var data, archivedAt string
	if err := row.Scan(&data, &archivedAt); err != nil {
		return types.ArchivedTicket{}, err
	}
	var at types.ArchivedTicket
	if err := json.Unmarshal([]byte(data), &at.Ticket); err != nil {
		return types.ArchivedTicket{}, fmt.Errorf("decoding archived ticket: %w", err)
	}
	ts, err := time.Parse(timeLayout, archivedAt)
	if err != nil {
		return types.ArchivedTicket{}, fmt.Errorf("parsing archived_at %q: %w", archivedAt, err)
	}
	at.ArchivedAt = ts
	return at, nil
}

// project returns the key prefix before the last dash, upper-cased.
func project(key string) string {
	if i := strings.LastIndex(key, "-"); i > 0 {
		return strings.ToUpper(key[:i])
	}
	return ""
}

func searchText(t types.Ticket) string {
	parts := []string{t.Summary, t.Description}
	parts = append(parts, t.Requirements...)
	parts = append(parts, t.AcceptanceCriteria...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
