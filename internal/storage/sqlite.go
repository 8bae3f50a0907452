package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/matsen/snip/internal/logging"
	"github.com/matsen/snip/internal/snippet"
	_ "modernc.org/sqlite"
)

// DB wraps the single SQLite connection a snip process works against.
type DB struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenDB opens or creates a SQLite database at the given path.
// A nil logger discards diagnostics.
func OpenDB(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	logger.Debug("connecting to database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One process, one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("database connection established")
	return &DB{db: db, log: logger}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the snippets table if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snippets (
			keyword TEXT PRIMARY KEY,
			message TEXT NOT NULL,
			hidden INTEGER NOT NULL DEFAULT 0
		);
	`

	_, err := db.Exec(schema)
	return err
}

// upsertSnippet inserts a snippet or overwrites message and hidden for an
// existing keyword in one statement.
const upsertSnippet = `
	INSERT INTO snippets (keyword, message, hidden) VALUES (?, ?, ?)
	ON CONFLICT(keyword) DO UPDATE SET
		message = excluded.message,
		hidden = excluded.hidden`

// Put stores a snippet under name, replacing any snippet already stored there.
func (d *DB) Put(ctx context.Context, name, message string, hidden bool) (snippet.Snippet, error) {
	s := snippet.Snippet{Keyword: name, Message: message, Hidden: hidden}

	d.log.Info("storing snippet", "keyword", name, "hidden", hidden)
	if _, err := d.db.ExecContext(ctx, upsertSnippet, s.Keyword, s.Message, s.Hidden); err != nil {
		return snippet.Snippet{}, fmt.Errorf("storing snippet %q: %w", name, err)
	}
	d.log.Debug("snippet stored", "keyword", name)

	return s, nil
}

// Get retrieves the message stored under name.
func (d *DB) Get(ctx context.Context, name string) (snippet.Lookup[string], error) {
	d.log.Info("retrieving snippet", "keyword", name)

	var message string
	err := d.db.QueryRowContext(ctx, `SELECT message FROM snippets WHERE keyword = ?`, name).Scan(&message)
	if err == sql.ErrNoRows {
		d.log.Debug("snippet not found", "keyword", name)
		return snippet.NotFound[string](), nil
	}
	if err != nil {
		return snippet.Lookup[string]{}, fmt.Errorf("retrieving snippet %q: %w", name, err)
	}

	d.log.Debug("snippet retrieved", "keyword", name)
	return snippet.Found(message), nil
}

// Catalog returns every stored keyword in ascending order.
func (d *DB) Catalog(ctx context.Context) ([]string, error) {
	d.log.Info("listing keywords")

	rows, err := d.db.QueryContext(ctx, `SELECT keyword FROM snippets ORDER BY keyword`)
	if err != nil {
		return nil, fmt.Errorf("listing keywords: %w", err)
	}
	defer rows.Close()

	keywords := []string{}
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, fmt.Errorf("scanning keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing keywords: %w", err)
	}

	d.log.Debug("keywords listed", "count", len(keywords))
	return keywords, nil
}

// Search returns visible snippets whose message contains s. Matching is
// case-sensitive; hidden snippets never match.
func (d *DB) Search(ctx context.Context, s string) (snippet.Lookup[[]snippet.Snippet], error) {
	d.log.Info("searching snippets", "query", s)

	// instr is case-sensitive and treats % and _ literally, unlike LIKE.
	rows, err := d.db.QueryContext(ctx, `
		SELECT keyword, message, hidden
		FROM snippets
		WHERE hidden = 0 AND (?1 = '' OR instr(message, ?1) > 0)
		ORDER BY keyword`, s)
	if err != nil {
		return snippet.Lookup[[]snippet.Snippet]{}, fmt.Errorf("searching snippets: %w", err)
	}
	defer rows.Close()

	matches, err := scanSnippets(rows)
	if err != nil {
		return snippet.Lookup[[]snippet.Snippet]{}, fmt.Errorf("searching snippets: %w", err)
	}

	d.log.Debug("search complete", "query", s, "matches", len(matches))
	if len(matches) == 0 {
		return snippet.NotFound[[]snippet.Snippet](), nil
	}
	return snippet.Found(matches), nil
}

// Export returns every stored snippet, hidden ones included, ordered by keyword.
func (d *DB) Export(ctx context.Context) ([]snippet.Snippet, error) {
	d.log.Info("exporting snippets")

	rows, err := d.db.QueryContext(ctx, `SELECT keyword, message, hidden FROM snippets ORDER BY keyword`)
	if err != nil {
		return nil, fmt.Errorf("exporting snippets: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

// Import upserts all snippets in a single transaction. Either every snippet
// is stored or none are.
func (d *DB) Import(ctx context.Context, snippets []snippet.Snippet) (int, error) {
	d.log.Info("importing snippets", "count", len(snippets))

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSnippet)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range snippets {
		if _, err := stmt.ExecContext(ctx, s.Keyword, s.Message, s.Hidden); err != nil {
			return 0, fmt.Errorf("importing snippet %q: %w", s.Keyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}

	d.log.Debug("import complete", "count", len(snippets))
	return len(snippets), nil
}

// scanSnippets scans keyword, message, hidden rows.
func scanSnippets(rows *sql.Rows) ([]snippet.Snippet, error) {
	snippets := []snippet.Snippet{}
	for rows.Next() {
		var s snippet.Snippet
		if err := rows.Scan(&s.Keyword, &s.Message, &s.Hidden); err != nil {
			return nil, fmt.Errorf("scanning snippet: %w", err)
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snippets, nil
}
