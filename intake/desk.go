package intake

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/models"
)

// Desk is an in-memory claims desk. It stands in for the insurer's claims processing backend.
type Desk struct {
	mu     sync.RWMutex
	claims map[string]api.IntakeClaim
	now    func() time.Time
}

func NewDesk() *Desk {
	return &Desk{
		claims: map[string]api.IntakeClaim{},
		now:    time.Now,
	}
}

// Receive records a claim. The claim keeps its reference unless it is empty or already taken.
func (d *Desk) Receive(input api.IntakeClaimInput) (api.IntakeClaim, error) {
	if err := models.ValidateInput(input); err != nil {
		return api.IntakeClaim{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ref := input.Reference
	for attempts := 0; ref == "" || d.taken(ref); attempts++ {
		if attempts >= 100 {
			return api.IntakeClaim{}, fmt.Errorf("failed to find unique claim reference after %d attempts", attempts)
		}
		ref = fmt.Sprintf("%s%06d", models.ClaimReferencePrefix, domain.RandomInsecureIntInRange(0, 999999))
	}

	now := d.now().UTC()
	claim := api.IntakeClaim{
		Reference:  ref,
		ClaimID:    input.ClaimID,
		PolicyID:   input.PolicyID,
		EventType:  input.EventType,
		Status:     api.ClaimStatusSubmitted,
		ReceivedAt: now,
		UpdatedAt:  now,
	}
	d.claims[ref] = claim
	return claim, nil
}

func (d *Desk) taken(ref string) bool {
	_, ok := d.claims[ref]
	return ok
}

func (d *Desk) Get(reference string) (api.IntakeClaim, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.claims[reference]
	return c, ok
}

// List returns all received claims, oldest first
func (d *Desk) List() api.IntakeClaims {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make(api.IntakeClaims, 0, len(d.claims))
	for _, c := range d.claims {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ReceivedAt.Equal(list[j].ReceivedAt) {
			return list[i].Reference < list[j].Reference
		}
		return list[i].ReceivedAt.Before(list[j].ReceivedAt)
	})
	return list
}

// SetStatus records a processing decision for a claim
func (d *Desk) SetStatus(reference string, status api.ClaimStatus) (api.IntakeClaim, error) {
	if err := models.ValidateInput(api.ClaimStatusInput{Status: status}); err != nil {
		return api.IntakeClaim{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.claims[reference]
	if !ok {
		return api.IntakeClaim{}, ErrClaimNotFound
	}
	c.Status = status
	c.UpdatedAt = d.now().UTC()
	d.claims[reference] = c
	return c, nil
}
