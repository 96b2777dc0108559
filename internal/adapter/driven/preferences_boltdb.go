package driven

import (
	"context"
	"encoding/json"
	"errors"

	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-browser/internal/port/driven"
	"github.com/alorle/iptv-browser/internal/preferences"
)

const (
	preferencesBucket = "preferences"
)

// preferencesKey is the single record the bucket holds.
var preferencesKey = []byte("current")

// PreferencesBoltDBRepository implements the PreferencesRepository port using BoltDB.
type PreferencesBoltDBRepository struct {
	db *bbolt.DB
}

// NewPreferencesBoltDBRepository creates a new BoltDB-backed preferences repository.
// It initializes the required bucket if it doesn't exist.
func NewPreferencesBoltDBRepository(db *bbolt.DB) (*PreferencesBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(preferencesBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PreferencesBoltDBRepository{db: db}, nil
}

// preferencesDTO is used for JSON serialization.
type preferencesDTO struct {
	Country    string `json:"country"`
	Category   string `json:"category,omitempty"`
	SearchTerm string `json:"search_term,omitempty"`
}

func preferencesToDTO(p preferences.Preferences) preferencesDTO {
	return preferencesDTO{
		Country:    p.Country,
		Category:   p.Category,
		SearchTerm: p.SearchTerm,
	}
}

func dtoToPreferences(dto preferencesDTO) preferences.Preferences {
	return preferences.Preferences{
		Country:    dto.Country,
		Category:   dto.Category,
		SearchTerm: dto.SearchTerm,
	}
}

// Load retrieves the stored preferences from BoltDB.
func (r *PreferencesBoltDBRepository) Load(ctx context.Context) (preferences.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return preferences.Preferences{}, err
	}

	var p preferences.Preferences

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(preferencesBucket))
		if bucket == nil {
			return errors.New("preferences bucket not found")
		}

		data := bucket.Get(preferencesKey)
		if data == nil {
			return preferences.ErrNotFound
		}

		var dto preferencesDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return err
		}

		p = dtoToPreferences(dto)
		return nil
	})

	return p, err
}

// Save replaces the stored preferences in BoltDB.
func (r *PreferencesBoltDBRepository) Save(ctx context.Context, p preferences.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(preferencesBucket))
		if bucket == nil {
			return errors.New("preferences bucket not found")
		}

		data, err := json.Marshal(preferencesToDTO(p))
		if err != nil {
			return err
		}

		return bucket.Put(preferencesKey, data)
	})
}

// Ping checks if the BoltDB database is accessible and operational.
func (r *PreferencesBoltDBRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(preferencesBucket)) == nil {
			return errors.New("preferences bucket not found")
		}
		return nil
	})
}

// Ensure PreferencesBoltDBRepository implements the driven.PreferencesRepository interface
var _ driven.PreferencesRepository = (*PreferencesBoltDBRepository)(nil)
