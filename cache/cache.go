// Package cache stores fetched FASTA records in a bolt database, so
// repeated runs don't need network access.
package cache

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("cache")

// FASTA is the bucket name for all the records.
var FASTA = []byte("fasta")

// Entry is a cached FASTA record.
type Entry struct {
	Accession string    `json:"accession"`
	Fetched   time.Time `json:"fetched"`
	Fasta     []byte    `json:"fasta"`
}

// Store is a FASTA record cache. A nil *Store is valid and caches
// nothing.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the cache database.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	log.Debugf("Opened cache %s", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func key(accession string) []byte {
	return []byte(strings.ToUpper(accession))
}

// Put stores a FASTA record.
func (s *Store) Put(accession string, fasta []byte) error {
	if s == nil {
		return nil
	}
	dataB, err := json.Marshal(&Entry{
		Accession: accession,
		Fetched:   time.Now().UTC(),
		Fasta:     fasta,
	})
	if err != nil {
		log.Error("Error serializing cache entry", err)
		return err
	}
	err = SaveData(s.db, key(accession), dataB)
	if err != nil {
		log.Error("Error saving cache entry", err)
	}
	return err
}

// Get returns a cached record or nil if there is none.
func (s *Store) Get(accession string) (*Entry, error) {
	if s == nil {
		return nil, nil
	}
	b, err := LoadData(s.db, key(accession))
	if err != nil || b == nil {
		return nil, err
	}

	var e *Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	log.Debugf("Found cached %s (fetched %v)", e.Accession, e.Fetched)
	return e, nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(FASTA)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// LoadData loads data from bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(FASTA)
		if b == nil {
			return nil
		}
		// values are only valid during the transaction
		if v := b.Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
