package api

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// IntakeClaimInput is the payload sent to the claims intake desk
type IntakeClaimInput struct {
	ClaimID      string            `json:"claim_id" validate:"required"`
	UserID       string            `json:"user_id"`
	PolicyID     string            `json:"policy_id" validate:"required"`
	Reference    string            `json:"reference"`
	EventType    ClaimEventType    `json:"event_type" validate:"required,claimEventType"`
	EventDate    time.Time         `json:"event_date" validate:"required"`
	Description  string            `json:"description"`
	Address      string            `json:"address,omitempty"`
	Location     *geojson.Geometry `json:"location,omitempty"`
	Vehicles     []Vehicle         `json:"vehicles"`
	ThirdParties []ThirdParty      `json:"third_parties"`
	MediaCount   int               `json:"media_count"`
	PoliceReport PoliceReport      `json:"police_report"`
}

// IntakeClaim is a claim as recorded by the claims intake desk
type IntakeClaim struct {
	Reference  string         `json:"reference"`
	ClaimID    string         `json:"claim_id"`
	PolicyID   string         `json:"policy_id"`
	EventType  ClaimEventType `json:"event_type"`
	Status     ClaimStatus    `json:"status"`
	ReceivedAt time.Time      `json:"received_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type IntakeClaims []IntakeClaim
