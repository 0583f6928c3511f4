package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/silinternational/cover-agri/api"
)

func (ms *ModelSuite) TestClaimStore_InitDraftClaim() {
	ctx := context.Background()
	store := newTestStore(nil, nil)

	draft := store.InitDraftClaim(ctx)
	ms.Equal("draft-1747042200000", draft.ID)
	ms.Equal("current-user", draft.UserID)
	ms.Equal("GA-123456789", draft.PolicyID)
	ms.Equal(api.ClaimStatusDraft, draft.Status)
	ms.Equal(api.ClaimEventTypeAgriculturalVehicleAccident, draft.EventType)
	ms.Equal(draft.CreatedAt, draft.EventDate)
	ms.False(draft.PoliceReport.Filed)
	ms.False(draft.IsSubmittable)
	ms.Empty(draft.Vehicles)

	description := "Hydraulic arm gave way"
	ms.True(store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{Description: &description}))

	store.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	again := store.InitDraftClaim(ctx)
	ms.Equal(draft.ID, again.ID, "a second init must not replace the draft")
	ms.Equal(description, again.Description)
}

func (ms *ModelSuite) TestClaimStore_MutationsWithoutDraft() {
	ctx := context.Background()
	persister := NewTestPersister()
	store := newTestStore(persister, nil)
	description := "a long enough description"

	ms.False(store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{Description: &description}))
	ms.False(store.AddVehicleToDraft(ctx, Vehicle{ID: "v1"}))
	ms.False(store.RemoveVehicleFromDraft(ctx, "v1"))
	ms.False(store.AddThirdPartyToDraft(ctx, ThirdParty{ID: "t1"}))
	ms.False(store.RemoveThirdPartyFromDraft(ctx, "t1"))
	ms.False(store.AddMediaToDraft(ctx, MediaItem{ID: "m1"}))
	ms.False(store.RemoveMediaFromDraft(ctx, "m1"))
	ms.False(store.AppendToDraftDescription(ctx, "more"))

	_, ok := store.DraftClaim()
	ms.False(ok)
	ms.Empty(store.ActiveClaims())
	ms.Equal(0, persister.SaveCount, "inert operations must not save")
}

func (ms *ModelSuite) TestClaimStore_IsSubmittableTracksValidity() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	store.InitDraftClaim(ctx)

	short := "too short"
	long := "The baler caught fire in the field"
	blank := "   "
	theft := api.ClaimEventTypeTheft

	tests := []struct {
		name  string
		input api.ClaimUpdateInput
		want  bool
	}{
		{
			name:  "description too short",
			input: api.ClaimUpdateInput{Description: &short, EventLocation: &api.EventLocation{Address: "Farm road 3"}},
			want:  false,
		},
		{
			name:  "long description and address",
			input: api.ClaimUpdateInput{Description: &long},
			want:  true,
		},
		{
			name:  "blank address",
			input: api.ClaimUpdateInput{EventLocation: &api.EventLocation{Address: blank}},
			want:  true,
		},
		{
			name:  "only latitude",
			input: api.ClaimUpdateInput{EventLocation: &api.EventLocation{Latitude: ptr(39.86)}},
			want:  false,
		},
		{
			name: "coordinates without address",
			input: api.ClaimUpdateInput{EventLocation: &api.EventLocation{
				Latitude:  ptr(39.86),
				Longitude: ptr(-4.02),
			}},
			want: true,
		},
		{
			name:  "zero coordinates count as present",
			input: api.ClaimUpdateInput{EventLocation: &api.EventLocation{Latitude: ptr(0.0), Longitude: ptr(0.0)}},
			want:  true,
		},
		{
			name:  "event type changed",
			input: api.ClaimUpdateInput{EventType: &theft},
			want:  true,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			ms.True(store.UpdateDraftClaim(ctx, tt.input))
			draft, ok := store.DraftClaim()
			ms.True(ok)
			ms.Equal(tt.want, draft.IsSubmittable)
			ms.Equal(IsSubmittable(draft), draft.IsSubmittable)
		})
	}
}

func (ms *ModelSuite) TestClaimStore_TheftScenario() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	store.InitDraftClaim(ctx)

	theft := api.ClaimEventTypeTheft
	description := "Tractor stolen overnight"
	ms.True(store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{
		EventType:     &theft,
		Description:   &description,
		EventLocation: &api.EventLocation{Address: "Farm road 3"},
	}))

	draft, _ := store.DraftClaim()
	ms.Equal(api.ClaimEventTypeTheft, draft.EventType)
	ms.True(draft.IsSubmittable)
}

func (ms *ModelSuite) TestClaimStore_AddRemoveRoundTrip() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	store.InitDraftClaim(ctx)
	before, _ := store.DraftClaim()

	ms.True(store.AddVehicleToDraft(ctx, Vehicle{ID: "v1", Make: "Fendt", Model: "724", Identifier: "E-1234-BCD"}))
	ms.True(store.AddVehicleToDraft(ctx, Vehicle{ID: "v2", Make: "Claas", Model: "Lexion"}))
	ms.True(store.AddThirdPartyToDraft(ctx, ThirdParty{ID: "t1", Name: "Ana", Contact: "600 000 000"}))
	ms.True(store.AddMediaToDraft(ctx, MediaItem{ID: "m1", URI: "file:///1.jpg", Type: api.MediaTypePhoto}))

	draft, _ := store.DraftClaim()
	ms.Len(draft.Vehicles, 2)
	ms.Equal("v1", draft.Vehicles[0].ID, "insertion order must be kept")
	ms.Equal("v2", draft.Vehicles[1].ID)

	ms.False(store.RemoveVehicleFromDraft(ctx, "unknown"))
	ms.False(store.RemoveVehicleFromDraft(ctx, ""))
	ms.True(store.RemoveVehicleFromDraft(ctx, "v1"))
	ms.True(store.RemoveVehicleFromDraft(ctx, "v2"))
	ms.True(store.RemoveThirdPartyFromDraft(ctx, "t1"))
	ms.True(store.RemoveMediaFromDraft(ctx, "m1"))

	after, _ := store.DraftClaim()
	ms.Equal(before.Vehicles, after.Vehicles)
	ms.Equal(before.ThirdParties, after.ThirdParties)
	ms.Equal(before.MediaItems, after.MediaItems)
}

func (ms *ModelSuite) TestClaimStore_DraftIsCopied() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	store.InitDraftClaim(ctx)
	store.AddVehicleToDraft(ctx, Vehicle{ID: "v1"})

	draft, _ := store.DraftClaim()
	draft.Vehicles[0].ID = "changed"
	draft.Description = "changed outside the store"

	again, _ := store.DraftClaim()
	ms.Equal("v1", again.Vehicles[0].ID)
	ms.Empty(again.Description)
}

func (ms *ModelSuite) TestClaimStore_AppendToDraftDescription() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	store.InitDraftClaim(ctx)

	ms.False(store.AppendToDraftDescription(ctx, "  "))
	ms.True(store.AppendToDraftDescription(ctx, "Front loader bent"))
	ms.True(store.AppendToDraftDescription(ctx, "Driver reports a loud crack"))

	draft, _ := store.DraftClaim()
	ms.Equal("Front loader bent\n\nDriver reports a loud crack", draft.Description)
}

var referencePattern = regexp.MustCompile(`^AXA-\d{6}$`)

func (ms *ModelSuite) TestClaimStore_SubmitClaim() {
	ctx := context.Background()
	persister := NewTestPersister()
	submitter := &TestSubmitter{}
	store := newTestStore(persister, submitter)
	draft := CreateSubmittableDraft(ctx, store)

	ref, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	ms.Regexp(referencePattern, ref)

	_, ok := store.DraftClaim()
	ms.False(ok, "draft slot must be cleared")

	active := store.ActiveClaims()
	ms.Len(active, 1)
	claim := active[0]
	ms.Equal("claim-1747042200000", claim.ID)
	ms.Equal(api.ClaimStatusSubmitted, claim.Status)
	ms.Equal(ref, claim.Reference)
	ms.True(claim.SubmittedAt.Valid)
	ms.Equal(draft.Description, claim.Description)
	ms.Equal(draft.CreatedAt, claim.CreatedAt)

	got, ok := store.GetClaim(claim.ID)
	ms.True(ok)
	ms.Equal(claim, got)

	byRef, ok := store.GetClaimByReference(ref)
	ms.True(ok)
	ms.Equal(claim.ID, byRef.ID)

	ms.Equal(1, submitter.Received())
	ms.NoError(store.PersistenceError())

	var saved map[string]any
	ms.NoError(json.Unmarshal(persister.Data("claim-storage"), &saved))
	state := saved["state"].(map[string]any)
	ms.Nil(state["draftClaim"])
	ms.Len(state["activeClaims"], 1)
	ms.EqualValues(0, saved["version"])

	draft = store.InitDraftClaim(ctx)
	ms.Equal(api.ClaimStatusDraft, draft.Status, "a new draft can be started after submission")
	ms.Empty(draft.Description)
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimNotSubmittable() {
	ctx := context.Background()
	store := newTestStore(nil, nil)

	_, err := store.SubmitClaim(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimNotSubmittable, Category: api.CategoryUser}, err)

	store.InitDraftClaim(ctx)
	short := "too short"
	store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{
		Description:   &short,
		EventLocation: &api.EventLocation{Address: "Farm road 3"},
	})
	before, _ := store.DraftClaim()

	_, err = store.SubmitClaim(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimNotSubmittable, Category: api.CategoryUser}, err)

	after, ok := store.DraftClaim()
	ms.True(ok)
	ms.Equal(before, after)
	ms.Empty(store.ActiveClaims())
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimValidatesClaim() {
	ctx := context.Background()
	submitter := &TestSubmitter{}

	tests := []struct {
		name   string
		mutate func(store *ClaimStore)
	}{
		{
			name:   "vehicle without id",
			mutate: func(store *ClaimStore) { store.AddVehicleToDraft(ctx, Vehicle{Make: "Deutz"}) },
		},
		{
			name: "media with unknown type",
			mutate: func(store *ClaimStore) {
				store.AddMediaToDraft(ctx, MediaItem{ID: "m1", URI: "file:///x", Type: "hologram"})
			},
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			persister := NewTestPersister()
			store := newTestStore(persister, submitter)
			CreateSubmittableDraft(ctx, store)
			tt.mutate(store)
			before, _ := store.DraftClaim()
			saveCount := persister.SaveCount

			_, err := store.SubmitClaim(ctx)
			ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)

			after, ok := store.DraftClaim()
			ms.True(ok)
			ms.Equal(before, after)
			ms.Empty(store.ActiveClaims())
			ms.Equal(saveCount, persister.SaveCount)
		})
	}
	ms.Zero(submitter.Received(), "invalid claims are never sent")
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimRemoteFailure() {
	ctx := context.Background()
	submitter := &TestSubmitter{Err: errors.New("intake unavailable")}
	store := newTestStore(NewTestPersister(), submitter)
	before := CreateSubmittableDraft(ctx, store)

	_, err := store.SubmitClaim(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimRemoteSubmission, Category: api.CategoryRemote}, err)

	after, ok := store.DraftClaim()
	ms.True(ok)
	ms.Equal(before, after)
	ms.Empty(store.ActiveClaims())
	ms.False(store.IsSubmitting())
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimTimeout() {
	ctx := context.Background()
	submitter := &TestSubmitter{Delay: time.Second}
	store := newTestStore(nil, submitter)
	store.config.SubmissionTimeout = 20 * time.Millisecond
	CreateSubmittableDraft(ctx, store)

	_, err := store.SubmitClaim(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimRemoteSubmission, Category: api.CategoryRemote}, err)
	ms.ErrorIs(err, context.DeadlineExceeded)

	_, ok := store.DraftClaim()
	ms.True(ok)
	ms.Empty(store.ActiveClaims())
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimUsesRemoteReference() {
	ctx := context.Background()
	store := newTestStore(nil, &TestSubmitter{Reference: "AXA-777777"})
	CreateSubmittableDraft(ctx, store)

	ref, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	ms.Equal("AXA-777777", ref)
	ms.Equal("AXA-777777", store.ActiveClaims()[0].Reference)
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimRemoteReferenceTaken() {
	ctx := context.Background()
	store := newTestStore(nil, &TestSubmitter{Reference: "AXA-777777"})
	store.newReference = func() string { return "AXA-000042" }

	CreateSubmittableDraft(ctx, store)
	first, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	ms.Equal("AXA-777777", first)

	store.now = func() time.Time { return time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC) }
	description := "Second claim about the seeder"
	CreateSubmittableDraft(ctx, store)
	store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{Description: &description})
	second, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	ms.Equal("AXA-000042", second, "a reference already in use is not taken from the intake desk")

	claim, ok := store.GetClaimByReference(second)
	ms.True(ok)
	ms.Equal(description, claim.Description)
	ms.Len(store.ActiveClaims(), 2)
}

func (ms *ModelSuite) TestClaimStore_SubmitClaimInProgress() {
	ctx := context.Background()
	submitter := &TestSubmitter{Delay: 200 * time.Millisecond}
	store := newTestStore(nil, submitter)
	CreateSubmittableDraft(ctx, store)

	var wg sync.WaitGroup
	var firstRef string
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstRef, firstErr = store.SubmitClaim(ctx)
	}()

	ms.Eventually(store.IsSubmitting, time.Second, 5*time.Millisecond)

	_, err := store.SubmitClaim(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimSubmissionInProgress, Category: api.CategoryConflict}, err)

	description := "changed while the submission is outstanding"
	ms.False(store.UpdateDraftClaim(ctx, api.ClaimUpdateInput{Description: &description}), "draft is frozen")
	ms.False(store.AddVehicleToDraft(ctx, Vehicle{ID: "late"}))

	wg.Wait()
	ms.NoError(firstErr)
	ms.Regexp(referencePattern, firstRef)

	active := store.ActiveClaims()
	ms.Len(active, 1)
	ms.NotEqual(description, active[0].Description)
	ms.Empty(active[0].Vehicles)
}

func (ms *ModelSuite) TestClaimStore_ReferenceCollision() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	refs := []string{"AXA-000001", "AXA-000001", "AXA-000001", "AXA-000002"}
	next := 0
	store.newReference = func() string {
		ref := refs[next]
		next++
		return ref
	}

	CreateSubmittableDraft(ctx, store)
	ref1, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	ms.Equal("AXA-000001", ref1)

	CreateSubmittableDraft(ctx, store)
	ref2, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	ms.Equal("AXA-000002", ref2)

	active := store.ActiveClaims()
	ms.Len(active, 2)
	ms.NotEqual(active[0].ID, active[1].ID, "claims submitted in the same millisecond need distinct ids")
}

func (ms *ModelSuite) TestClaimStore_ReferenceExhausted() {
	ctx := context.Background()
	store := newTestStore(nil, nil)
	store.newReference = func() string { return "AXA-000001" }

	CreateSubmittableDraft(ctx, store)
	_, err := store.SubmitClaim(ctx)
	ms.NoError(err)

	CreateSubmittableDraft(ctx, store)
	_, err = store.SubmitClaim(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorUnknown, Category: api.CategoryInternal}, err)
	_, ok := store.DraftClaim()
	ms.True(ok)
}

func (ms *ModelSuite) TestClaimStore_SaveFailureIsAWarning() {
	ctx := context.Background()
	persister := NewTestPersister()
	persister.FailSave = true
	store := newTestStore(persister, nil)
	CreateSubmittableDraft(ctx, store)

	ms.EqualAppError(api.AppError{Key: api.ErrorPersistenceSave, Category: api.CategoryDatabase},
		store.PersistenceError())

	ref, err := store.SubmitClaim(ctx)
	ms.NoError(err, "a failed save must not fail the submission")
	ms.Regexp(referencePattern, ref)
	ms.Len(store.ActiveClaims(), 1)
	ms.Error(store.PersistenceError())

	persister.FailSave = false
	ms.NoError(store.Checkpoint(ctx))
	ms.NoError(store.PersistenceError())
	ms.NotEmpty(persister.Data("claim-storage"))
}

func (ms *ModelSuite) TestClaimStore_UpdateClaimStatus() {
	ctx := context.Background()
	store := newTestStore(nil, nil)

	ms.False(store.UpdateClaimStatus(ctx, "claim-123", api.ClaimStatusApproved))
	ms.Empty(store.ActiveClaims())

	CreateSubmittableDraft(ctx, store)
	_, err := store.SubmitClaim(ctx)
	ms.NoError(err)
	id := store.ActiveClaims()[0].ID

	tests := []struct {
		name   string
		status api.ClaimStatus
		want   bool
		after  api.ClaimStatus
	}{
		{name: "forward", status: api.ClaimStatusUnderReview, want: true, after: api.ClaimStatusUnderReview},
		{name: "repeat", status: api.ClaimStatusUnderReview, want: true, after: api.ClaimStatusUnderReview},
		{name: "back to draft", status: api.ClaimStatusDraft, want: false, after: api.ClaimStatusUnderReview},
		{name: "unknown status", status: "lost", want: false, after: api.ClaimStatusUnderReview},
		{name: "approved", status: api.ClaimStatusApproved, want: true, after: api.ClaimStatusApproved},
		{name: "paid", status: api.ClaimStatusPaid, want: true, after: api.ClaimStatusPaid},
		{name: "overwritten backwards", status: api.ClaimStatusUnderReview, want: true, after: api.ClaimStatusUnderReview},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			ms.Equal(tt.want, store.UpdateClaimStatus(ctx, id, tt.status))
			claim, ok := store.GetClaim(id)
			ms.True(ok)
			ms.Equal(tt.after, claim.Status)
		})
	}

	ms.False(store.UpdateClaimStatus(ctx, "claim-123", api.ClaimStatusApproved))
	ms.Len(store.ActiveClaims(), 1)
}

func (ms *ModelSuite) TestClaimStore_Load() {
	ctx := context.Background()
	persister := NewTestPersister()

	first := newTestStore(persister, nil)
	CreateSubmittableDraft(ctx, first)
	_, err := first.SubmitClaim(ctx)
	ms.NoError(err)
	first.InitDraftClaim(ctx)
	first.AddVehicleToDraft(ctx, Vehicle{ID: "v1", Make: "Kubota"})

	second := newTestStore(persister, nil)
	ms.NoError(second.Load(ctx))
	ms.Equal(first.ActiveClaims(), second.ActiveClaims())

	draft1, _ := first.DraftClaim()
	draft2, ok := second.DraftClaim()
	ms.True(ok)
	ms.Equal(draft1, draft2)
}

func (ms *ModelSuite) TestClaimStore_LoadEmptyAndFailures() {
	ctx := context.Background()
	persister := NewTestPersister()
	store := newTestStore(persister, nil)

	ms.NoError(store.Load(ctx), "nothing saved yet")

	persister.FailLoad = true
	err := store.Load(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorPersistenceLoad, Category: api.CategoryDatabase}, err)
	ms.Equal(err, store.PersistenceError())

	persister.FailLoad = false
	ms.NoError(persister.Save(ctx, "claim-storage", []byte("{not json")))
	err = store.Load(ctx)
	ms.EqualAppError(api.AppError{Key: api.ErrorPersistenceLoad, Category: api.CategoryDatabase}, err)
	_, ok := store.DraftClaim()
	ms.False(ok)
}

func (ms *ModelSuite) TestClaimStore_FailedLoadKeepsSnapshot() {
	ctx := context.Background()
	persister := NewTestPersister()

	first := newTestStore(persister, nil)
	first.newReference = func() string { return "AXA-000001" }
	CreateSubmittableDraft(ctx, first)
	savedRef, err := first.SubmitClaim(ctx)
	ms.NoError(err)
	saved := persister.Data("claim-storage")
	saveCount := persister.SaveCount

	persister.FailLoad = true
	second := newTestStore(persister, nil)
	second.now = func() time.Time { return time.Date(2025, 5, 13, 8, 0, 0, 0, time.UTC) }
	second.newReference = func() string { return "AXA-000002" }
	ms.EqualAppError(api.AppError{Key: api.ErrorPersistenceLoad, Category: api.CategoryDatabase}, second.Load(ctx))
	persister.FailLoad = false

	ms.EqualAppError(api.AppError{Key: api.ErrorPersistenceLoad, Category: api.CategoryDatabase},
		second.Checkpoint(ctx))

	CreateSubmittableDraft(ctx, second)
	newRef, err := second.SubmitClaim(ctx)
	ms.NoError(err, "the store stays usable in memory")
	second.InitDraftClaim(ctx)

	ms.Equal(saved, persister.Data("claim-storage"), "the saved snapshot must not be overwritten")
	ms.Equal(saveCount, persister.SaveCount)

	ms.NoError(second.Load(ctx))
	ms.NoError(second.LoadError())
	ms.NoError(second.PersistenceError())

	active := second.ActiveClaims()
	ms.Len(active, 2)
	ms.Equal(savedRef, active[0].Reference)
	ms.Equal(newRef, active[1].Reference)
	_, ok := second.DraftClaim()
	ms.True(ok, "the draft started in memory is kept")

	third := newTestStore(persister, nil)
	ms.NoError(third.Load(ctx))
	ms.Equal(active, third.ActiveClaims())
}

func (ms *ModelSuite) TestClaimStore_LoadSanitizes() {
	ctx := context.Background()
	persister := NewTestPersister()
	data := `{"state":{"activeClaims":[` +
		`{"id":"claim-1","status":"teleported","mediaItems":[{"id":"m1","uri":"x","type":"hologram"}]},` +
		`{"id":""}],` +
		`"draftClaim":{"id":"draft-1","status":"submitted","eventType":"fire","eventDate":"2025-05-01T10:00:00Z",` +
		`"description":"Barn fire spread to the tractor","eventLocation":{"latitude":39.5,"longitude":-3.1},` +
		`"isSubmittable":false}},"version":0}`
	ms.NoError(persister.Save(ctx, "claim-storage", []byte(data)))

	store := newTestStore(persister, nil)
	ms.NoError(store.Load(ctx))

	active := store.ActiveClaims()
	ms.Len(active, 1)
	ms.Equal(api.ClaimStatusSubmitted, active[0].Status)
	ms.Equal(api.MediaTypeDocument, active[0].MediaItems[0].Type)
	ms.NotNil(active[0].Vehicles)

	draft, ok := store.DraftClaim()
	ms.True(ok)
	ms.Equal(api.ClaimStatusDraft, draft.Status)
	ms.True(draft.IsSubmittable, "derived flag is recomputed on load")
}

func (ms *ModelSuite) TestClaimStore_ConcurrentMutations() {
	ctx := context.Background()
	store := newTestStore(NewTestPersister(), nil)
	store.InitDraftClaim(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.AddVehicleToDraft(ctx, Vehicle{ID: fmt.Sprintf("v%d", i)})
		}(i)
	}
	wg.Wait()

	draft, _ := store.DraftClaim()
	ms.Len(draft.Vehicles, 50)
}
