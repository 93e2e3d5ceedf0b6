package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDocumentStore reads document hashes keyed "<table>:DOCUMENT:<id>".
// The client is owned by the caller.
type RedisDocumentStore struct {
	client *redis.Client
	table  string
}

// NewRedisDocumentStore creates a document store over table
func NewRedisDocumentStore(client *redis.Client, table string) *RedisDocumentStore {
	return &RedisDocumentStore{client: client, table: table}
}

func (s *RedisDocumentStore) key(id string) string {
	return s.table + ":" + DocumentCategory + ":" + id
}

// Document returns the document with the given unique id
func (s *RedisDocumentStore) Document(ctx context.Context, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, errors.New("redis client is nil")
	}

	attrs, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	return &Document{
		UniqueID:   id,
		Category:   DocumentCategory,
		Attributes: attrs,
	}, nil
}

// Put writes the attributes of doc
func (s *RedisDocumentStore) Put(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.client == nil {
		return errors.New("redis client is nil")
	}
	if doc.UniqueID == "" {
		return errors.New("document unique id is empty")
	}

	values := make(map[string]any, len(doc.Attributes))
	for k, v := range doc.Attributes {
		values[k] = v
	}
	values["unique_id"] = doc.UniqueID

	if err := s.client.HSet(ctx, s.key(doc.UniqueID), values).Err(); err != nil {
		return fmt.Errorf("put document %s: %w", doc.UniqueID, err)
	}
	return nil
}

// RedisObjectStore keeps objects as strings keyed "<bucket>/<key>"
type RedisObjectStore struct {
	client *redis.Client
}

// NewRedisObjectStore creates an object store. The client is owned by the
// caller.
func NewRedisObjectStore(client *redis.Client) *RedisObjectStore {
	return &RedisObjectStore{client: client}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

// Get returns the object stored under bucket and key
func (s *RedisObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, errors.New("redis client is nil")
	}

	data, err := s.client.Get(ctx, objectKey(bucket, key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("object %s: %w", objectKey(bucket, key), ErrNotFound)
		}
		return nil, fmt.Errorf("get object %s: %w", objectKey(bucket, key), err)
	}
	return data, nil
}

// Put stores data under bucket and key
func (s *RedisObjectStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.client == nil {
		return errors.New("redis client is nil")
	}

	if err := s.client.Set(ctx, objectKey(bucket, key), data, 0).Err(); err != nil {
		return fmt.Errorf("put object %s: %w", objectKey(bucket, key), err)
	}
	return nil
}
