package storage

import (
	"fmt"
	"regexp"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/models"
)

// Each store in this package implements models.SnapshotPersister. Load returns nil data and a nil error when
// nothing has been saved under the key.

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// objectName turns a storage key into a file or object name
func objectName(key string) string {
	name := unsafeKeyChars.ReplaceAllString(key, "_")
	if name == "" {
		name = "_"
	}
	return name + ".json"
}

// NewPersister returns the snapshot store for the named backend: memory, file, s3 or db
func NewPersister(backend string) (models.SnapshotPersister, error) {
	switch backend {
	case domain.PersistenceMemory, "":
		return NewMemoryStore(), nil
	case domain.PersistenceFile:
		f, err := NewFileStore(domain.Env.StorageDir)
		if err != nil {
			return nil, err
		}
		return f, nil
	case domain.PersistenceS3:
		s, err := NewS3Store()
		if err != nil {
			return nil, err
		}
		return s, nil
	case domain.PersistenceDB:
		d, err := models.ConnectDBSnapshotStore(domain.Env.GoEnv)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown persistence backend '%s'", backend)
	}
}
