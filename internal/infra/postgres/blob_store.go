package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"golang.org/x/sync/singleflight"
)

// BlobStore keeps each collection as a JSONB row in note_blobs. The table is
// created by the migrations package.
type BlobStore struct {
	pool *pgxpool.Pool
	sf   singleflight.Group
}

func NewBlobStore(pool *pgxpool.Pool) *BlobStore {
	return &BlobStore{pool: pool}
}

type getResult struct {
	data []byte
	ok   bool
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		var raw []byte
		err := s.pool.QueryRow(ctx, `SELECT data FROM note_blobs WHERE key=$1`, key).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			return getResult{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load blob %s: %w", key, err)
		}
		return getResult{data: raw, ok: true}, nil
	})
	if err != nil {
		return nil, false, err
	}
	res := result.(getResult)
	if !res.ok {
		return nil, false, nil
	}
	return append([]byte(nil), res.data...), true, nil
}

// PutAll upserts every blob in one transaction.
func (s *BlobStore) PutAll(ctx context.Context, blobs map[string][]byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for key, data := range blobs {
		batch.Queue(`INSERT INTO note_blobs (key, data, updated_at) VALUES ($1, $2::jsonb, now())
			ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`, key, string(data))
	}
	results := tx.SendBatch(ctx, batch)
	for range blobs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("upsert blob: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("upsert blobs: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *BlobStore) Close() error {
	s.pool.Close()
	return nil
}
