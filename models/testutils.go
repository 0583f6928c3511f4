package models

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
)

// TestBuffaloContext is a buffalo context used in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[any]any
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key any) any {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val any) {
	b.params[key] = val
}

// CreateTestContext puts the claim store into a TestBuffaloContext
func CreateTestContext(store *ClaimStore) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[any]any{},
	}
	ctx.Set(domain.ContextKeyClaimStore, store)
	return ctx
}

// TestPersister is an in-memory SnapshotPersister whose failures can be switched on
type TestPersister struct {
	mu        sync.Mutex
	data      map[string][]byte
	FailSave  bool
	FailLoad  bool
	SaveCount int
}

func NewTestPersister() *TestPersister {
	return &TestPersister{data: map[string][]byte{}}
}

func (p *TestPersister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailLoad {
		return nil, errors.New("test persister load failure")
	}
	return p.data[key], nil
}

func (p *TestPersister) Save(_ context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailSave {
		return errors.New("test persister save failure")
	}
	p.SaveCount++
	p.data[key] = append([]byte{}, data...)
	return nil
}

// Data returns what was last saved under key
func (p *TestPersister) Data(key string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data[key]
}

// TestSubmitter is a ClaimSubmitter that records the claims it receives
type TestSubmitter struct {
	mu        sync.Mutex
	Reference string
	Err       error
	Delay     time.Duration
	Claims    Claims
}

func (t *TestSubmitter) SubmitClaim(ctx context.Context, claim Claim) (string, error) {
	if t.Delay > 0 {
		select {
		case <-time.After(t.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return "", t.Err
	}
	t.Claims = append(t.Claims, claim)
	return t.Reference, nil
}

// Received returns the number of claims accepted so far
func (t *TestSubmitter) Received() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Claims)
}

// CreateSubmittableDraft initializes a draft and fills in everything needed for submission
func CreateSubmittableDraft(ctx context.Context, store *ClaimStore) Claim {
	store.InitDraftClaim(ctx)

	eventType := api.ClaimEventTypeTheft
	description := "Tractor stolen from the barn overnight"
	store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{
		EventType:     &eventType,
		Description:   &description,
		EventLocation: &api.EventLocation{Address: "Camino del Molino 4, Toledo"},
	})

	draft, _ := store.DraftClaim()
	return draft
}
