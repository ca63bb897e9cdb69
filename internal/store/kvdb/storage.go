// Package kvdb persists site storage items in a bbolt file.
package kvdb

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const bucketStorage = "site_storage"

// Open opens (creating if needed) the bbolt file at path and returns a
// Storage backed by it. Close releases the file lock.
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", path, err)
	}
	s, err := NewStorage(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewStorage(db *bolt.DB) (*Storage, error) {
	return &Storage{db: db}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketStorage))
		return err
	})
}

type Storage struct {
	db *bolt.DB
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetItem", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketStorage)).Get([]byte(key))
		if v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", false, err
	}
	return value, found, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SetItem", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketStorage)).Put([]byte(key), []byte(value)); err != nil {
			err := fmt.Errorf("set item %q: %w", key, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		return nil
	})
}

func (s *Storage) Close() error {
	return s.db.Close()
}
