package kb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

// SQLiteSource loads the knowledge base from a SQLite database, for
// deployments that manage answers in a table instead of a JSON file.
// Row order (insertion order via rowid) carries through to the index so
// tie-break behavior matches the JSON source.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens (creating if needed) the knowledge database.
func NewSQLiteSource(dataPath string) (*SQLiteSource, error) {
	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dataPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS topics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		subtopic TEXT,
		answer TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_topics_topic ON topics(topic);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Load reads every row in insertion order and regroups subtopic rows under
// their topic, first-seen topic order preserved.
func (s *SQLiteSource) Load(ctx context.Context) (entities.KnowledgeBase, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT topic, subtopic, answer FROM topics ORDER BY id`)
	if err != nil {
		return entities.KnowledgeBase{}, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	var kb entities.KnowledgeBase
	position := make(map[string]int)

	for rows.Next() {
		var topic, answer string
		var subtopic sql.NullString
		if err := rows.Scan(&topic, &subtopic, &answer); err != nil {
			return entities.KnowledgeBase{}, fmt.Errorf("scanning topic row: %w", err)
		}

		if !subtopic.Valid || subtopic.String == "" {
			kb.Topics = append(kb.Topics, entities.Topic{Name: topic, Answer: answer})
			continue
		}

		idx, seen := position[topic]
		if !seen {
			kb.Topics = append(kb.Topics, entities.Topic{Name: topic, Nested: true})
			idx = len(kb.Topics) - 1
			position[topic] = idx
		}
		kb.Topics[idx].Subtopics = append(kb.Topics[idx].Subtopics, entities.Subtopic{
			Name:   subtopic.String,
			Answer: answer,
		})
	}
	if err := rows.Err(); err != nil {
		return entities.KnowledgeBase{}, fmt.Errorf("iterating topic rows: %w", err)
	}
	return kb, nil
}

// Put inserts or replaces one answer. Pass an empty subtopic for terminal
// topics. Intended for seeding and admin tooling, not the request path.
func (s *SQLiteSource) Put(ctx context.Context, topic, subtopic, answer string) error {
	var sub interface{}
	if subtopic != "" {
		sub = subtopic
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO topics (topic, subtopic, answer) VALUES (?, ?, ?)`,
		topic, sub, answer)
	if err != nil {
		return fmt.Errorf("inserting topic: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
