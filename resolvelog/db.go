package resolvelog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names, mirroring the teacher's builddb bucket layout: one bucket
// of full records, one index bucket for fast "latest resolution touching
// this package" lookups.
const (
	BucketResolutions = "resolutions"
	BucketByPackage   = "by_package"
)

// ResolutionRecord captures the inputs, outcome, and timing of a single
// ResolveDepsThorough call, grounded on the teacher's BuildRecord.
type ResolutionRecord struct {
	ID            string    `json:"id"`
	AddNames      []string  `json:"add_names"`
	RemoveNames   []string  `json:"remove_names"`
	SolutionNames []string  `json:"solution_names"`
	ConflictCount int       `json:"conflict_count"`
	Success       bool      `json:"success"`
	FailureReason string    `json:"failure_reason,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// Duration returns how long the resolution took.
func (r *ResolutionRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// DB wraps a bbolt database used to persist ResolutionRecords across
// process invocations of the pmresolve CLI.
type DB struct {
	db *bolt.DB
}

// OpenDB opens or creates a bbolt database at path, initializing the
// resolutions and by_package buckets if absent.
func OpenDB(path string) (*DB, error) {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketResolutions)); err != nil {
			return &DatabaseError{Op: "create bucket", Bucket: BucketResolutions, Err: err}
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketByPackage)); err != nil {
			return &DatabaseError{Op: "create bucket", Bucket: BucketByPackage, Err: err}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}

	return &DB{db: bdb}, nil
}

// Close closes the database. Safe to call multiple times.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// NewID generates a fresh resolution ID.
func NewID() string {
	return uuid.NewString()
}

// SaveRecord stores rec under its ID, and updates the by-package index so
// every package named in AddNames resolves to this record as "most recent".
func (db *DB) SaveRecord(rec *ResolutionRecord) error {
	if rec.ID == "" {
		return &RecordError{Op: "save", ID: rec.ID, Err: ErrEmptyID}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return &RecordError{Op: "marshal", ID: rec.ID, Err: err}
	}

	err = db.db.Update(func(tx *bolt.Tx) error {
		resolutions := tx.Bucket([]byte(BucketResolutions))
		if resolutions == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketResolutions, Err: ErrBucketNotFound}
		}
		if err := resolutions.Put([]byte(rec.ID), data); err != nil {
			return err
		}

		byPackage := tx.Bucket([]byte(BucketByPackage))
		if byPackage == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketByPackage, Err: ErrBucketNotFound}
		}
		for _, name := range rec.AddNames {
			if err := byPackage.Put([]byte(name), []byte(rec.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &RecordError{Op: "save", ID: rec.ID, Err: err}
	}
	return nil
}

// GetRecord retrieves a ResolutionRecord by ID.
func (db *DB) GetRecord(id string) (*ResolutionRecord, error) {
	if id == "" {
		return nil, &RecordError{Op: "get", ID: id, Err: ErrEmptyID}
	}

	var rec ResolutionRecord
	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketResolutions))
		if bucket == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketResolutions, Err: ErrBucketNotFound}
		}
		data := bucket.Get([]byte(id))
		if data == nil {
			return &RecordError{Op: "get", ID: id, Err: ErrRecordNotFound}
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LatestFor returns the most recent resolution record that had name among
// its AddNames, or nil if none exists.
func (db *DB) LatestFor(name string) (*ResolutionRecord, error) {
	var rec *ResolutionRecord

	err := db.db.View(func(tx *bolt.Tx) error {
		byPackage := tx.Bucket([]byte(BucketByPackage))
		if byPackage == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketByPackage, Err: ErrBucketNotFound}
		}
		id := byPackage.Get([]byte(name))
		if id == nil {
			return nil
		}

		resolutions := tx.Bucket([]byte(BucketResolutions))
		if resolutions == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketResolutions, Err: ErrBucketNotFound}
		}
		data := resolutions.Get(id)
		if data == nil {
			return &RecordError{Op: "lookup", ID: string(id), Err: ErrRecordNotFound}
		}

		rec = &ResolutionRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
