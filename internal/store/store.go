// Package store provides the document metadata and object storage used by
// the lawlinks pipeline.
//
// Two backends exist: Redis, where documents are hashes keyed
// "<table>:DOCUMENT:<id>" and objects are strings keyed "<bucket>/<key>",
// and the local filesystem, which mirrors the same layout under a root
// directory.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/iurcrowd/lawlinks/internal/config"
)

// ErrNotFound is returned for missing documents and objects
var ErrNotFound = errors.New("not found")

// DocumentCategory is the category of decision documents
const DocumentCategory = "DOCUMENT"

// ReferenceAttribute names the attribute holding the lower-court reference
const ReferenceAttribute = "vorinstanzen_reference"

// Document is the metadata record of a decision
type Document struct {
	UniqueID   string
	Category   string
	Attributes map[string]string
}

// Reference returns the lower-court reference string, if the document has one
func (d *Document) Reference() (string, bool) {
	ref, ok := d.Attributes[ReferenceAttribute]
	return ref, ok
}

// DocumentStore looks up document metadata
type DocumentStore interface {
	Document(ctx context.Context, id string) (*Document, error)
}

// ObjectStore reads and writes blobs addressed by bucket and key
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte) error
}

// Stores bundles the stores selected by a configuration
type Stores struct {
	Documents DocumentStore
	Objects   ObjectStore

	closer io.Closer
}

// Close releases the backend connection, if any
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// FromConfig creates the stores for the configured backend
func FromConfig(cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return &Stores{
			Documents: NewRedisDocumentStore(client, cfg.DocumentTable),
			Objects:   NewRedisObjectStore(client),
			closer:    client,
		}, nil

	case config.BackendFS:
		return &Stores{
			Documents: NewFSDocumentStore(cfg.Storage.Root, cfg.DocumentTable),
			Objects:   NewFSObjectStore(cfg.Storage.Root),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
