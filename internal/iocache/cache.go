// Package iocache persists the pipeline's intermediate and final
// artifacts — the KB dataset, pair indexes, feature vectors, trained
// models and the positive-sample index — in an embedded
// modernc.org/sqlite database, keyed by the (catalog, entity, goal[,
// chunk]) tuple the pipeline addresses artifacts by. It is the Go
// replacement for the original implementation's gzipped-pickle/JSONL
// cache files.
package iocache

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// artifactTableDDL is the single key/value table every artifact kind is
// stored in, generated the way the teacher's schema.DDLGenerator builds a
// CREATE TABLE string from a fixed column list.
const artifactTableDDL = `
CREATE TABLE IF NOT EXISTS artifacts (
    kind     TEXT NOT NULL,
    catalog  TEXT NOT NULL,
    entity   TEXT NOT NULL,
    goal     TEXT NOT NULL,
    chunk    INTEGER NOT NULL,
    checksum TEXT NOT NULL,
    payload  BLOB NOT NULL,
    PRIMARY KEY (kind, catalog, entity, goal, chunk)
);`

// Store is a handle to the cache database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the sqlite cache database at path and
// brings its schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	if _, err := db.ExecContext(ctx, artifactTableDDL); err != nil {
		db.Close()
		return nil, MigrateError(path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key identifies one cached artifact.
type Key struct {
	Kind    string
	Catalog string
	Entity  string
	Goal    string
	Chunk   int
}

// contentNamespace seeds the deterministic content-hash UUIDs artifacts
// are checksummed with, so the same payload bytes always produce the
// same checksum regardless of when or where Put runs.
var contentNamespace = uuid.Nil

// Put gob-encodes value and stores it under key, overwriting any existing
// artifact with the same key (retrain/rebuild always overwrites, per the
// pipeline's cache-reuse lifecycle rule). The checksum column holds a
// uuid.NewSHA1 content hash of the encoded payload; Put reports whether
// that hash differs from whatever was previously stored under key, so
// callers can detect an upstream source changing between runs instead of
// silently re-caching identical bytes.
func Put[T any](ctx context.Context, s *Store, key Key, value T) (bool, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return false, WriteError(key, err)
	}
	checksum := uuid.NewSHA1(contentNamespace, buf.Bytes()).String()

	var previous string
	row := s.db.QueryRowContext(ctx, `
		SELECT checksum FROM artifacts
		WHERE kind = ? AND catalog = ? AND entity = ? AND goal = ? AND chunk = ?`,
		key.Kind, key.Catalog, key.Entity, key.Goal, key.Chunk)
	switch err := row.Scan(&previous); err {
	case nil, sql.ErrNoRows:
	default:
		return false, WriteError(key, err)
	}
	changed := previous != checksum

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (kind, catalog, entity, goal, chunk, checksum, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, catalog, entity, goal, chunk)
		DO UPDATE SET payload = excluded.payload, checksum = excluded.checksum`,
		key.Kind, key.Catalog, key.Entity, key.Goal, key.Chunk, checksum, buf.Bytes())
	if err != nil {
		return false, WriteError(key, err)
	}
	return changed, nil
}

// Get decodes the artifact stored under key, reporting false if absent.
func Get[T any](ctx context.Context, s *Store, key Key) (T, bool, error) {
	var zero T

	row := s.db.QueryRowContext(ctx, `
		SELECT payload FROM artifacts
		WHERE kind = ? AND catalog = ? AND entity = ? AND goal = ? AND chunk = ?`,
		key.Kind, key.Catalog, key.Entity, key.Goal, key.Chunk)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return zero, false, nil
		}
		return zero, false, ReadError(key, err)
	}

	var value T
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&value); err != nil {
		return zero, false, ReadError(key, err)
	}
	return value, true, nil
}

// Delete removes every chunk of an artifact kind for (catalog, entity,
// goal), used to clear stale results before a fresh run.
func (s *Store) Delete(ctx context.Context, kind, catalog, entity, goal string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM artifacts WHERE kind = ? AND catalog = ? AND entity = ? AND goal = ?`,
		kind, catalog, entity, goal)
	if err != nil {
		return WriteError(Key{Kind: kind, Catalog: catalog, Entity: entity, Goal: goal}, err)
	}
	return nil
}

// Has reports whether any chunk of an artifact kind exists for (catalog,
// entity, goal), used to decide whether a pipeline stage can resume from
// cache instead of recomputing.
func (s *Store) Has(ctx context.Context, kind, catalog, entity, goal string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM artifacts WHERE kind = ? AND catalog = ? AND entity = ? AND goal = ?`,
		kind, catalog, entity, goal)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, ReadError(Key{Kind: kind, Catalog: catalog, Entity: entity, Goal: goal}, err)
	}
	return count > 0, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%s#%d", k.Kind, k.Catalog, k.Entity, k.Goal, k.Chunk)
}
