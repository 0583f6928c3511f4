package models

import (
	"context"
	"encoding/json"
)

// SnapshotVersion is written into every snapshot envelope
const SnapshotVersion = 0

// SnapshotPersister is durable key-value storage for store snapshots. Load returns nil data and a nil error
// when nothing has been saved under the key yet.
type SnapshotPersister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// ClaimSubmitter hands a claim to the remote intake service. A non-empty returned reference replaces the one
// generated locally.
type ClaimSubmitter interface {
	SubmitClaim(ctx context.Context, claim Claim) (string, error)
}

type snapshot struct {
	State   snapshotState `json:"state"`
	Version int           `json:"version"`
}

type snapshotState struct {
	ActiveClaims Claims `json:"activeClaims"`
	DraftClaim   *Claim `json:"draftClaim"`
}

func encodeSnapshot(active Claims, draft *Claim) ([]byte, error) {
	if active == nil {
		active = Claims{}
	}
	return json.Marshal(snapshot{
		State: snapshotState{
			ActiveClaims: active,
			DraftClaim:   draft,
		},
		Version: SnapshotVersion,
	})
}

func decodeSnapshot(data []byte) (snapshotState, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshotState{}, err
	}
	return snap.State, nil
}
