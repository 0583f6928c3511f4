package intake

import (
	"context"
	"time"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
)

// DummyService submits to an in-process Desk after a simulated network delay
type DummyService struct {
	desk  *Desk
	delay time.Duration
}

func NewDummyService(desk *Desk, delayMilliseconds int) *DummyService {
	if desk == nil {
		desk = NewDesk()
	}
	return &DummyService{
		desk:  desk,
		delay: time.Duration(delayMilliseconds) * time.Millisecond,
	}
}

func (d *DummyService) SubmitClaim(ctx context.Context, claim models.Claim) (string, error) {
	if err := d.wait(ctx); err != nil {
		return "", err
	}

	received, err := d.desk.Receive(NewIntakeClaimInput(claim))
	if err != nil {
		return "", err
	}
	log.Infof("dummy intake received claim %s as %s", claim.ID, received.Reference)
	return received.Reference, nil
}

func (d *DummyService) ClaimStatus(ctx context.Context, reference string) (api.ClaimStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c, ok := d.desk.Get(reference)
	if !ok {
		return "", ErrClaimNotFound
	}
	return c.Status, nil
}

func (d *DummyService) wait(ctx context.Context) error {
	if d.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
