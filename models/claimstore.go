package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
)

const (
	ClaimReferencePrefix = "AXA-"
	maxReferenceAttempts = 100
)

type ClaimStoreConfig struct {
	// storage key of the snapshot
	Namespace string

	DefaultUserID   string
	DefaultPolicyID string

	// zero means the caller's context alone bounds a remote submission
	SubmissionTimeout time.Duration
}

// DefaultClaimStoreConfig builds a config from the environment
func DefaultClaimStoreConfig() ClaimStoreConfig {
	return ClaimStoreConfig{
		Namespace:         domain.Env.StorageNamespace,
		DefaultUserID:     domain.Env.DefaultUserID,
		DefaultPolicyID:   domain.Env.DefaultPolicyID,
		SubmissionTimeout: domain.SubmissionTimeout(),
	}
}

// ClaimStore owns the single draft claim and the claims already submitted. All methods are safe for concurrent use.
// Draft mutations on a missing draft, or while a submission is outstanding, do nothing and return false.
type ClaimStore struct {
	mu         sync.Mutex
	persister  SnapshotPersister
	submitter  ClaimSubmitter
	config     ClaimStoreConfig
	draft      *Claim
	active     Claims
	submitting bool
	persistErr error

	// set while the saved snapshot could not be read; nothing is written over it until a Load succeeds
	loadErr error

	now          func() time.Time
	newReference func() string
}

// NewClaimStore returns an empty store. Call Load to restore a saved snapshot. A nil persister disables
// persistence and a nil submitter accepts every claim locally.
func NewClaimStore(persister SnapshotPersister, submitter ClaimSubmitter, config ClaimStoreConfig) *ClaimStore {
	if submitter == nil {
		submitter = localSubmitter{}
	}
	if config.Namespace == "" {
		config.Namespace = domain.Env.StorageNamespace
	}
	return &ClaimStore{
		persister:    persister,
		submitter:    submitter,
		config:       config,
		now:          time.Now,
		newReference: randomClaimReference,
	}
}

type localSubmitter struct{}

func (localSubmitter) SubmitClaim(context.Context, Claim) (string, error) {
	return "", nil
}

func randomClaimReference() string {
	return fmt.Sprintf("%s%06d", ClaimReferencePrefix, domain.RandomInsecureIntInRange(0, 999999))
}

// InitDraftClaim creates a draft with default values unless one already exists, and returns the draft
func (s *ClaimStore) InitDraftClaim(ctx context.Context) Claim {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft != nil {
		return s.draft.clone()
	}

	now := s.now().UTC()
	s.draft = &Claim{
		ID:           fmt.Sprintf("draft-%d", now.UnixMilli()),
		UserID:       s.config.DefaultUserID,
		PolicyID:     s.config.DefaultPolicyID,
		CreatedAt:    now,
		Status:       api.ClaimStatusDraft,
		EventType:    api.ClaimEventTypeAgriculturalVehicleAccident,
		EventDate:    now,
		Vehicles:     []Vehicle{},
		ThirdParties: []ThirdParty{},
		MediaItems:   []MediaItem{},
	}
	s.draft.recompute()
	s.save(ctx)

	return s.draft.clone()
}

// UpdateDraftClaim merges the non-nil fields of the input into the draft
func (s *ClaimStore) UpdateDraftClaim(ctx context.Context, input api.ClaimUpdateInput) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		c.applyUpdate(input)
		return true
	})
}

func (s *ClaimStore) AddMediaToDraft(ctx context.Context, item MediaItem) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		c.MediaItems = append(c.MediaItems, item)
		return true
	})
}

func (s *ClaimStore) RemoveMediaFromDraft(ctx context.Context, id string) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		var removed bool
		c.MediaItems, removed = removeByID(c.MediaItems, id, func(m MediaItem) string { return m.ID })
		return removed
	})
}

func (s *ClaimStore) AddVehicleToDraft(ctx context.Context, v Vehicle) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		c.Vehicles = append(c.Vehicles, v)
		return true
	})
}

func (s *ClaimStore) RemoveVehicleFromDraft(ctx context.Context, id string) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		var removed bool
		c.Vehicles, removed = removeByID(c.Vehicles, id, func(v Vehicle) string { return v.ID })
		return removed
	})
}

func (s *ClaimStore) AddThirdPartyToDraft(ctx context.Context, tp ThirdParty) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		c.ThirdParties = append(c.ThirdParties, tp)
		return true
	})
}

func (s *ClaimStore) RemoveThirdPartyFromDraft(ctx context.Context, id string) bool {
	return s.mutateDraft(ctx, func(c *Claim) bool {
		var removed bool
		c.ThirdParties, removed = removeByID(c.ThirdParties, id, func(tp ThirdParty) string { return tp.ID })
		return removed
	})
}

// AppendToDraftDescription adds text to the end of the draft description, separated by a blank line
func (s *ClaimStore) AppendToDraftDescription(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return s.mutateDraft(ctx, func(c *Claim) bool {
		if strings.TrimSpace(c.Description) == "" {
			c.Description = text
		} else {
			c.Description = strings.TrimRight(c.Description, "\n ") + "\n\n" + text
		}
		return true
	})
}

func (s *ClaimStore) mutateDraft(ctx context.Context, fn func(c *Claim) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil || s.submitting {
		return false
	}

	if !fn(s.draft) {
		return false
	}
	s.draft.recompute()
	s.save(ctx)
	return true
}

func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	if id == "" {
		return list, false
	}
	kept := make([]T, 0, len(list))
	for _, item := range list {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept, len(kept) != len(list)
}

// SubmitClaim moves the draft into the active claims and returns its reference. Either the claim is moved and a
// reference returned, or nothing changes and an *api.AppError is returned. The claim's vehicles, media and
// coordinates are validated before it is sent.
func (s *ClaimStore) SubmitClaim(ctx context.Context) (string, error) {
	s.mu.Lock()

	if s.submitting {
		s.mu.Unlock()
		err := errors.New("a claim submission is already in progress")
		return "", api.NewAppError(err, api.ErrorClaimSubmissionInProgress, api.CategoryConflict)
	}

	if s.draft == nil || !IsSubmittable(*s.draft) {
		s.mu.Unlock()
		err := errors.New("claim is not ready for submission")
		return "", api.NewAppError(err, api.ErrorClaimNotSubmittable, api.CategoryUser)
	}

	ref, err := s.uniqueClaimReference()
	if err != nil {
		s.mu.Unlock()
		return "", api.NewAppError(err, api.ErrorUnknown, api.CategoryInternal)
	}

	now := s.now().UTC()
	claim := s.draft.clone()
	claim.ID = s.uniqueClaimID(now)
	claim.Status = api.ClaimStatusSubmitted
	claim.SubmittedAt = nulls.NewTime(now)
	claim.Reference = ref
	claim.recompute()

	if vErrs := validateModel(claim); vErrs.HasAny() {
		s.mu.Unlock()
		err := errors.New(flattenPopErrors(vErrs))
		return "", api.NewAppError(err, api.ErrorValidation, api.CategoryUser)
	}

	s.submitting = true
	s.mu.Unlock()

	remoteRef, err := s.submitRemote(ctx, claim)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.mu.Unlock()
		log.WithFields(log.Fields{"draft_id": claim.ID}).Warningf("claim submission failed: %s", err)
		return "", api.NewAppError(fmt.Errorf("claim submission failed: %w", err),
			api.ErrorClaimRemoteSubmission, api.CategoryRemote)
	}

	if remoteRef != "" && remoteRef != claim.Reference {
		if s.findByReference(remoteRef) >= 0 {
			log.WithFields(log.Fields{"claim_id": claim.ID, "reference": remoteRef}).
				Warningf("intake reference already belongs to another claim, keeping %s", claim.Reference)
		} else {
			claim.Reference = remoteRef
		}
	}
	s.active = append(s.active, claim)
	s.draft = nil
	s.save(ctx)
	s.mu.Unlock()

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimSubmitted,
		Message: "claim submitted: " + claim.Reference,
		Payload: events.Payload{
			domain.EventPayloadID:        claim.ID,
			domain.EventPayloadReference: claim.Reference,
			domain.EventPayloadClaim:     claim.clone(),
		},
	})

	return claim.Reference, nil
}

func (s *ClaimStore) submitRemote(ctx context.Context, claim Claim) (string, error) {
	if s.config.SubmissionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SubmissionTimeout)
		defer cancel()
	}
	return s.submitter.SubmitClaim(ctx, claim)
}

// uniqueClaimReference must be called with the lock held
func (s *ClaimStore) uniqueClaimReference() (string, error) {
	for attempts := 0; attempts < maxReferenceAttempts; attempts++ {
		ref := s.newReference()
		if s.findByReference(ref) < 0 {
			return ref, nil
		}
	}
	return "", fmt.Errorf("failed to find unique claim reference after %d attempts", maxReferenceAttempts)
}

// uniqueClaimID must be called with the lock held
func (s *ClaimStore) uniqueClaimID(now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := fmt.Sprintf("claim-%d", ms)
		if s.findByID(id) < 0 {
			return id
		}
		ms++
	}
}

func (s *ClaimStore) findByID(id string) int {
	for i := range s.active {
		if s.active[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ClaimStore) findByReference(ref string) int {
	for i := range s.active {
		if s.active[i].Reference == ref {
			return i
		}
	}
	return -1
}

// GetClaim looks up an active (submitted) claim by id
func (s *ClaimStore) GetClaim(id string) (Claim, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findByID(id)
	if i < 0 {
		return Claim{}, false
	}
	return s.active[i].clone(), true
}

// GetClaimByReference looks up an active claim by its reference
func (s *ClaimStore) GetClaimByReference(ref string) (Claim, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findByReference(ref)
	if i < 0 {
		return Claim{}, false
	}
	return s.active[i].clone(), true
}

// UpdateClaimStatus overwrites the status of an active claim. It returns false, changing nothing, if the claim does
// not exist or the status is unknown or draft. Repeating the current status is accepted and changes nothing.
func (s *ClaimStore) UpdateClaimStatus(ctx context.Context, id string, status api.ClaimStatus) bool {
	if _, ok := ValidClaimStatus[status]; !ok || status == api.ClaimStatusDraft {
		log.WithFields(log.Fields{"claim_id": id, "to": status}).Warningf("ignoring claim status update")
		return false
	}

	s.mu.Lock()

	i := s.findByID(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	claim := &s.active[i]
	if claim.Status == status {
		s.mu.Unlock()
		return true
	}

	from := claim.Status
	if valid, _ := isClaimTransitionValid(from, status); !valid {
		log.WithFields(log.Fields{"claim_id": id, "from": from, "to": status}).
			Warningf("claim status moved outside the usual lifecycle")
	}

	claim.Status = status
	reference := claim.Reference
	updated := claim.clone()
	s.save(ctx)
	s.mu.Unlock()

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimStatusUpdated,
		Message: fmt.Sprintf("claim %s is now %s", reference, status),
		Payload: events.Payload{
			domain.EventPayloadID:        id,
			domain.EventPayloadReference: reference,
			domain.EventPayloadStatus:    status,
			domain.EventPayloadClaim:     updated,
		},
	})
	return true
}

// DraftClaim returns a copy of the draft. The second return value is false if there is no draft.
func (s *ClaimStore) DraftClaim() (Claim, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return Claim{}, false
	}
	return s.draft.clone(), true
}

// ActiveClaims returns copies of the submitted claims in submission order
func (s *ClaimStore) ActiveClaims() Claims {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims := make(Claims, len(s.active))
	for i := range s.active {
		claims[i] = s.active[i].clone()
	}
	return claims
}

// IsSubmitting is true while a remote submission is outstanding
func (s *ClaimStore) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// PersistenceError returns the error of a failed load that has not been retried successfully, or else the error of
// the most recent failed save. It is nil if persistence is healthy.
func (s *ClaimStore) PersistenceError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	return s.persistErr
}

// LoadError returns the error of the last Load if it failed. Saves are suspended while it is set.
func (s *ClaimStore) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Load replaces the store's state with the saved snapshot, if there is one. A failure leaves the state unchanged
// and suspends saving until a later Load succeeds. When that happens, claims submitted and any draft started in
// the meantime are kept alongside the loaded ones and the merged state is saved.
func (s *ClaimStore) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	data, err := s.persister.Load(ctx, s.config.Namespace)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return s.loadFailed(err)
	}

	var state snapshotState
	if len(data) > 0 {
		state, err = decodeSnapshot(data)
		if err != nil {
			return s.loadFailed(err)
		}
	}

	active := make(Claims, 0, len(state.ActiveClaims))
	for _, c := range state.ActiveClaims {
		if c.ID == "" {
			log.Warningf("%s: skipping saved claim without an id", api.ErrorCollaboratorData)
			continue
		}
		active = append(active, sanitizeClaim(c))
	}

	var draft *Claim
	if state.DraftClaim != nil {
		d := sanitizeClaim(*state.DraftClaim)
		d.Status = api.ClaimStatusDraft
		d.recompute()
		draft = &d
	}

	recovering := s.loadErr != nil
	s.loadErr = nil

	if !recovering {
		if len(data) > 0 {
			s.active = active
			s.draft = draft
			s.persistErr = nil
		}
		return nil
	}

	s.active, s.draft = s.keepUnsaved(active, draft)
	s.save(ctx)
	return nil
}

// keepUnsaved merges the in-memory state built while the snapshot could not be loaded into the loaded state. It
// must be called with the lock held.
func (s *ClaimStore) keepUnsaved(loaded Claims, loadedDraft *Claim) (Claims, *Claim) {
	merged := loaded
	for _, c := range s.active {
		if i := findClaim(merged, func(m Claim) bool { return m.ID == c.ID }); i >= 0 {
			log.WithFields(log.Fields{"claim_id": c.ID, "reference": c.Reference}).
				Warningf("claim submitted while the snapshot was unavailable has a saved id, keeping the saved claim")
			continue
		}
		merged = append(merged, c)
	}

	if s.draft != nil {
		return merged, s.draft
	}
	return merged, loadedDraft
}

func findClaim(claims Claims, match func(Claim) bool) int {
	for i := range claims {
		if match(claims[i]) {
			return i
		}
	}
	return -1
}

func (s *ClaimStore) loadFailed(err error) error {
	appErr := api.NewAppError(fmt.Errorf("failed to load claim snapshot: %w", err),
		api.ErrorPersistenceLoad, api.CategoryDatabase)
	s.loadErr = appErr
	log.WithFields(log.Fields{"namespace": s.config.Namespace}).Warningf("%s", appErr)
	return appErr
}

// sanitizeClaim replaces malformed values in saved data with defaults
func sanitizeClaim(c Claim) Claim {
	if c.Vehicles == nil {
		c.Vehicles = []Vehicle{}
	}
	if c.ThirdParties == nil {
		c.ThirdParties = []ThirdParty{}
	}
	if c.MediaItems == nil {
		c.MediaItems = []MediaItem{}
	}
	for i := range c.MediaItems {
		if _, ok := ValidMediaTypes[c.MediaItems[i].Type]; !ok {
			log.WithFields(log.Fields{"claim_id": c.ID, "media_type": c.MediaItems[i].Type}).
				Warningf("%s: unknown media type, using %s", api.ErrorCollaboratorData, api.MediaTypeDocument)
			c.MediaItems[i].Type = api.MediaTypeDocument
		}
	}
	if _, ok := ValidClaimStatus[c.Status]; !ok {
		log.WithFields(log.Fields{"claim_id": c.ID, "status": c.Status}).
			Warningf("%s: unknown claim status, using %s", api.ErrorCollaboratorData, api.ClaimStatusSubmitted)
		c.Status = api.ClaimStatusSubmitted
	}
	return c
}

// Checkpoint saves the current state, returning the error if the save fails. While the last Load has failed it
// writes nothing and returns the load error.
func (s *ClaimStore) Checkpoint(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return s.loadErr
	}
	s.save(ctx)
	return s.persistErr
}

// save writes a snapshot. It must be called with the lock held. Failures are recorded and logged, never returned.
func (s *ClaimStore) save(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if s.loadErr != nil {
		log.WithFields(log.Fields{"namespace": s.config.Namespace}).
			Debugf("claim snapshot not loaded, keeping changes in memory")
		return
	}

	data, err := encodeSnapshot(s.active, s.draft)
	if err == nil {
		err = s.persister.Save(ctx, s.config.Namespace, data)
	}
	if err != nil {
		s.persistErr = api.NewAppError(fmt.Errorf("failed to save claim snapshot: %w", err),
			api.ErrorPersistenceSave, api.CategoryDatabase)
		log.WithFields(log.Fields{"namespace": s.config.Namespace}).Warningf("%s", s.persistErr)
		return
	}
	s.persistErr = nil
}
