package job

import (
	"context"
	"errors"
	"time"

	"github.com/gobuffalo/buffalo/worker"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
)

// checkpointHandler is the Worker handler that retries a failed load or save of the claim store
func checkpointHandler(_ worker.Args) error {
	defer resubmitCheckpointJob()

	if claimStore == nil {
		return errors.New("checkpoint is not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := CheckpointIfDirty(ctx, claimStore)
	return err
}

// CheckpointIfDirty retries a failed load of the store, or else saves the store if its last save failed. It reports
// whether a retry was attempted.
func CheckpointIfDirty(ctx context.Context, store *models.ClaimStore) (bool, error) {
	if store.LoadError() != nil {
		log.Infof("retrying failed claim store load")
		if err := store.Load(ctx); err != nil {
			return true, err
		}
		return true, store.PersistenceError()
	}

	if store.PersistenceError() == nil {
		return false, nil
	}

	log.Infof("retrying failed claim store save")
	return true, store.Checkpoint(ctx)
}

func resubmitCheckpointJob() {
	if err := SubmitDelayed(Checkpoint, checkpointInterval(), map[string]any{}); err != nil {
		log.Errorf("error resubmitting checkpointHandler: %s", err)
	}
}

func checkpointInterval() time.Duration {
	return time.Duration(domain.Env.CheckpointMinutes) * time.Minute
}
