package job

import (
	"context"
	"errors"
	"time"

	"github.com/gobuffalo/buffalo/worker"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/intake"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
)

// StatusSource reports the status the claims desk holds for a claim
type StatusSource interface {
	ClaimStatus(ctx context.Context, reference string) (api.ClaimStatus, error)
}

// statusSyncHandler is the Worker handler that pulls claim statuses from the intake service
func statusSyncHandler(_ worker.Args) error {
	defer resubmitStatusSyncJob()

	if claimStore == nil || statusSource == nil {
		return errors.New("status sync is not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := SyncClaimStatuses(ctx, claimStore, statusSource)
	log.Infof("status sync updated %d claims", updated)
	return err
}

// SyncClaimStatuses copies the desk's status of every active claim into the store. Claims the desk does not know
// and statuses the store refuses are skipped. The first lookup error is returned after all
// claims are tried.
func SyncClaimStatuses(ctx context.Context, store *models.ClaimStore, source StatusSource) (int, error) {
	var firstErr error
	updated := 0

	for _, claim := range store.ActiveClaims() {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}

		status, err := source.ClaimStatus(ctx, claim.Reference)
		if errors.Is(err, intake.ErrClaimNotFound) {
			log.WithFields(log.Fields{"reference": claim.Reference}).Debug("claim unknown to the claims desk")
			continue
		}
		if err != nil {
			log.WithFields(log.Fields{"reference": claim.Reference}).Warningf("status lookup failed, %s", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if status == claim.Status {
			continue
		}
		if store.UpdateClaimStatus(ctx, claim.ID, status) {
			updated++
		}
	}
	return updated, firstErr
}

func resubmitStatusSyncJob() {
	if err := SubmitDelayed(StatusSync, statusSyncInterval(), map[string]any{}); err != nil {
		log.Errorf("error resubmitting statusSyncHandler: %s", err)
	}
}

func statusSyncInterval() time.Duration {
	return time.Duration(domain.Env.StatusSyncMinutes) * time.Minute
}
