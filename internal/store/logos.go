package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"iranconnect-web/internal/domain"
)

// Logo is one cached company logo.
type Logo struct {
	Key         string
	ContentType string
	Bytes       []byte
	SourceURL   string
	FetchedAt   time.Time
}

// Logos caches logo images in the logos table.
type Logos struct {
	db *sql.DB
}

func NewLogos(db *DB) *Logos { return &Logos{db: db.Pool} }

// LogoKeyFromURL derives the cache key for a logo source url.
func LogoKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(strings.TrimSpace(u)))
	return hex.EncodeToString(h[:])
}

func (l *Logos) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx, `SELECT 1 FROM logos WHERE key = ? LIMIT 1;`, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Logos) Save(ctx context.Context, lg Logo) error {
	if lg.Key == "" || len(lg.Bytes) == 0 {
		return errors.New("save logo: empty key or body")
	}
	if lg.FetchedAt.IsZero() {
		lg.FetchedAt = time.Now()
	}
	_, err := l.db.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, content_type, bytes, fetched_at, source_url)
VALUES(?,?,?,?,?);`,
		lg.Key,
		lg.ContentType,
		lg.Bytes,
		lg.FetchedAt.UTC().Format(time.RFC3339),
		lg.SourceURL,
	)
	if err != nil {
		return fmt.Errorf("save logo %s: %w", lg.Key, err)
	}
	return nil
}

// Get returns domain.ErrNotFound for an unknown key.
func (l *Logos) Get(ctx context.Context, key string) (Logo, error) {
	var (
		lg      Logo
		fetched string
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT key, content_type, bytes, fetched_at, source_url FROM logos WHERE key = ? LIMIT 1;`, key,
	).Scan(&lg.Key, &lg.ContentType, &lg.Bytes, &fetched, &lg.SourceURL)
	if errors.Is(err, sql.ErrNoRows) {
		return Logo{}, fmt.Errorf("logo %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return Logo{}, fmt.Errorf("get logo %s: %w", key, err)
	}
	lg.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
	return lg, nil
}

// DeleteOrphans removes logos fetched before cutoff that no job's logo ref
// points at. Newer logos may belong to an import that has not upserted its
// jobs yet.
func (l *Logos) DeleteOrphans(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := l.db.ExecContext(ctx, `
DELETE FROM logos
WHERE fetched_at < ?
  AND NOT EXISTS (
    SELECT 1 FROM jobs WHERE jobs.logo_ref = 'logo:' || logos.key
  );`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("delete orphan logos: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
