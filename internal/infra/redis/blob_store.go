package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"smart-note-service/internal/platform/logger"
)

// BlobStore keeps each collection as one string key:
//
//	SET {prefix}{key} <json>
//
// PutAll writes every key inside a single MULTI/EXEC.
type BlobStore struct {
	client *redis.Client
	prefix string
	log    *logger.Logger
	sf     singleflight.Group
}

func NewBlobStore(client *redis.Client, prefix string, log *logger.Logger) *BlobStore {
	if log == nil {
		log = logger.Nop()
	}
	return &BlobStore{client: client, prefix: prefix, log: log}
}

type getResult struct {
	data []byte
	ok   bool
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		data, err := s.client.Get(ctx, s.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return getResult{}, nil
		}
		if err != nil {
			return nil, err
		}
		return getResult{data: data, ok: true}, nil
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

func (s *BlobStore) PutAll(ctx context.Context, blobs map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range blobs {
			pipe.Set(ctx, s.key(key), data, 0)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("redis blob write failed", "keys", len(blobs), "error", err)
	}
	return err
}

// Ping checks connectivity.
func (s *BlobStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *BlobStore) Close() error {
	return s.client.Close()
}

func (s *BlobStore) key(key string) string {
	return s.prefix + key
}
