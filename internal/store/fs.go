package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSObjectStore keeps objects as files under "<root>/<bucket>/<key>"
type FSObjectStore struct {
	root string
}

// NewFSObjectStore creates an object store rooted at root
func NewFSObjectStore(root string) *FSObjectStore {
	return &FSObjectStore{root: root}
}

// path maps bucket and key below the root. The bucket is a single path
// element and the key must stay inside it.
func (s *FSObjectStore) path(bucket, key string) (string, error) {
	if bucket == "" || bucket == "." || bucket == ".." ||
		strings.ContainsAny(bucket, `/\`) || key == "" {
		return "", fmt.Errorf("invalid object path %q/%q", bucket, key)
	}

	rel := filepath.Clean(filepath.FromSlash(key))
	if rel == "." || rel == ".." || filepath.IsAbs(rel) ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object path %q/%q", bucket, key)
	}
	return filepath.Join(s.root, bucket, rel), nil
}

// Get returns the object stored under bucket and key
func (s *FSObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(bucket, key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object %s/%s: %w", bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("read object %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Put stores data under bucket and key, creating directories as needed
func (s *FSObjectStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(bucket, key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create bucket directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// FSDocumentStore reads documents from JSON files at
// "<root>/<table>/DOCUMENT/<id>.json", each holding an object of string
// attributes
type FSDocumentStore struct {
	objects *FSObjectStore
	table   string
}

// NewFSDocumentStore creates a document store rooted at root
func NewFSDocumentStore(root, table string) *FSDocumentStore {
	return &FSDocumentStore{objects: NewFSObjectStore(root), table: table}
}

// Document returns the document with the given unique id
func (s *FSDocumentStore) Document(ctx context.Context, id string) (*Document, error) {
	data, err := s.objects.Get(ctx, s.table, DocumentCategory+"/"+id+".json")
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}

	var attrs map[string]string
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &Document{
		UniqueID:   id,
		Category:   DocumentCategory,
		Attributes: attrs,
	}, nil
}

// Put writes the attributes of doc
func (s *FSDocumentStore) Put(ctx context.Context, doc *Document) error {
	if doc.UniqueID == "" {
		return errors.New("document unique id is empty")
	}
	attrs := make(map[string]string, len(doc.Attributes)+1)
	for k, v := range doc.Attributes {
		attrs[k] = v
	}
	attrs["unique_id"] = doc.UniqueID

	data, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.UniqueID, err)
	}
	return s.objects.Put(ctx, s.table, DocumentCategory+"/"+doc.UniqueID+".json", data)
}
