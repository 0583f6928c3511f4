package models

import (
	"context"
	"errors"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
)

// Snapshot is a row of the snapshots table, one per namespace
type Snapshot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Namespace string    `json:"namespace" db:"namespace" validate:"required"`
	Data      string    `json:"data" db:"data" validate:"required,json"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (s *Snapshot) TableName() string {
	return "snapshots"
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate,
// pop.ValidateAndUpdate) method.
func (s *Snapshot) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(s), nil
}

// DBSnapshotStore is a SnapshotPersister backed by the snapshots table
type DBSnapshotStore struct {
	conn *pop.Connection
}

func NewDBSnapshotStore(conn *pop.Connection) *DBSnapshotStore {
	return &DBSnapshotStore{conn: conn}
}

// ConnectDBSnapshotStore connects to the database named by env in database.yml
func ConnectDBSnapshotStore(env string) (*DBSnapshotStore, error) {
	conn, err := pop.Connect(env)
	if err != nil {
		return nil, err
	}
	pop.Debug = env == domain.EnvDevelopment
	return NewDBSnapshotStore(conn), nil
}

func (d *DBSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := d.conn.WithContext(ctx).Where("namespace = ?", key).First(&snap)
	if err != nil {
		if !domain.IsOtherThanNoRows(err) {
			return nil, nil
		}
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return []byte(snap.Data), nil
}

func (d *DBSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	return d.conn.WithContext(ctx).Transaction(func(tx *pop.Connection) error {
		var snap Snapshot
		err := tx.Where("namespace = ?", key).First(&snap)
		if domain.IsOtherThanNoRows(err) {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}

		snap.Namespace = key
		snap.Data = string(data)

		var valErrs *validate.Errors
		if err != nil {
			snap.ID = domain.GetUUID()
			valErrs, err = tx.ValidateAndCreate(&snap)
		} else {
			valErrs, err = tx.ValidateAndUpdate(&snap)
		}
		if err != nil {
			return appErrorFromDB(err, api.ErrorSaveFailure)
		}
		if valErrs.HasAny() {
			return api.NewAppError(errors.New(flattenPopErrors(valErrs)), api.ErrorValidation, api.CategoryUser)
		}
		return nil
	})
}
