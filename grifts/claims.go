package grifts

import (
	"context"
	"fmt"

	"github.com/gobuffalo/grift/grift"

	"github.com/silinternational/cover-agri/actions"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/job"
)

var _ = grift.Namespace("claims", func() {
	grift.Desc("list", "Lists the stored draft and submitted claims")
	_ = grift.Add("list", func(c *grift.Context) error {
		services, err := actions.ServicesFromEnv(context.Background())
		if err != nil {
			return err
		}
		store := services.Store

		if draft, ok := store.DraftClaim(); ok {
			fmt.Printf("draft %s: %s, %s\n", draft.ID, draft.EventType.Label(), draft.EventLocation.Summary())
		}

		claims := store.ActiveClaims()
		for _, claim := range claims {
			fmt.Printf("%s  %-20s %-30s submitted %s\n", claim.Reference, claim.Status.Label(),
				claim.EventType.Label(), claim.SubmittedAt.Time.Format(domain.DateFormat))
		}
		fmt.Printf("%d submitted claims\n", len(claims))
		return nil
	})

	grift.Desc("sync", "Pulls claim statuses from the intake desk once and saves the result")
	_ = grift.Add("sync", func(c *grift.Context) error {
		ctx := context.Background()
		services, err := actions.ServicesFromEnv(ctx)
		if err != nil {
			return err
		}

		updated, err := job.SyncClaimStatuses(ctx, services.Store, services.Intake)
		fmt.Printf("%d claims updated\n", updated)
		if err != nil {
			return err
		}
		return services.Store.Checkpoint(ctx)
	})
})
