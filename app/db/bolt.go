package db

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const bucketSessions = "Sessions"

// BoltStorage implements storage interface for BoltDB
type BoltStorage struct {
	db *bolt.DB
}

// GetSession from database
func (b *BoltStorage) GetSession(id string) (Session, error) {
	var res Session
	if err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketSessions)).Get([]byte(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &res); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return nil
	}); err != nil {
		return Session{}, err
	}
	return res, nil
}

// SaveSession to database
func (b *BoltStorage) SaveSession(s Session) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		if err := tx.Bucket([]byte(bucketSessions)).Put([]byte(s.ID), jdata); err != nil {
			return fmt.Errorf("failed to put session: %w", err)
		}
		return nil
	})
}

// DeleteSession from database
func (b *BoltStorage) DeleteSession(id string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketSessions)).Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSessions))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
