package api

import (
	"time"
)

type (
	ClaimEventType string
	ClaimStatus    string
	MediaType      string
	ClaimStep      string
)

const (
	ClaimEventTypeAgriculturalVehicleAccident = ClaimEventType("agricultural_vehicle_accident")
	ClaimEventTypeTheft                       = ClaimEventType("theft")
	ClaimEventTypeFire                        = ClaimEventType("fire")
	ClaimEventTypeNaturalEvents               = ClaimEventType("natural_events")
	ClaimEventTypeMaterialDamages             = ClaimEventType("material_damages")
	ClaimEventTypeHydraulicMechanismFailure   = ClaimEventType("hydraulic_mechanism_failure")
	ClaimEventTypeLiabilityCoverage           = ClaimEventType("liability_coverage")
	ClaimEventTypeOther                       = ClaimEventType("other")

	ClaimStatusDraft             = ClaimStatus("draft")
	ClaimStatusSubmitted         = ClaimStatus("submitted")
	ClaimStatusUnderReview       = ClaimStatus("under_review")
	ClaimStatusInformationNeeded = ClaimStatus("information_needed")
	ClaimStatusApproved          = ClaimStatus("approved")
	ClaimStatusRejected          = ClaimStatus("rejected")
	ClaimStatusPaid              = ClaimStatus("paid")

	MediaTypePhoto    = MediaType("photo")
	MediaTypeVideo    = MediaType("video")
	MediaTypeDocument = MediaType("document")
)

// The wizard steps, in the order they are presented
const (
	ClaimStepEventType    = ClaimStep("event_type")
	ClaimStepDateTime     = ClaimStep("date_time")
	ClaimStepLocation     = ClaimStep("location")
	ClaimStepDescription  = ClaimStep("description")
	ClaimStepVehicles     = ClaimStep("vehicles")
	ClaimStepThirdParties = ClaimStep("third_parties")
	ClaimStepPoliceReport = ClaimStep("police_report")
	ClaimStepAttachments  = ClaimStep("attachments")
	ClaimStepPolicy       = ClaimStep("policy")
	ClaimStepDeclaration  = ClaimStep("declaration")
	ClaimStepReview       = ClaimStep("review")
)

var ClaimSteps = []ClaimStep{
	ClaimStepEventType,
	ClaimStepDateTime,
	ClaimStepLocation,
	ClaimStepDescription,
	ClaimStepVehicles,
	ClaimStepThirdParties,
	ClaimStepPoliceReport,
	ClaimStepAttachments,
	ClaimStepPolicy,
	ClaimStepDeclaration,
	ClaimStepReview,
}

// Label is the display name of the event type. Unknown values read as "Other".
func (c ClaimEventType) Label() string {
	switch c {
	case ClaimEventTypeAgriculturalVehicleAccident:
		return "Vehicle Accident"
	case ClaimEventTypeTheft:
		return "Theft"
	case ClaimEventTypeFire:
		return "Fire"
	case ClaimEventTypeNaturalEvents:
		return "Natural Event"
	case ClaimEventTypeMaterialDamages:
		return "Material Damages"
	case ClaimEventTypeHydraulicMechanismFailure:
		return "Hydraulic Mechanism Failure"
	case ClaimEventTypeLiabilityCoverage:
		return "Liability Coverage"
	default:
		return "Other"
	}
}

// Label is the display name of the status. Unknown values read as "Draft".
func (c ClaimStatus) Label() string {
	switch c {
	case ClaimStatusSubmitted:
		return "Submitted"
	case ClaimStatusUnderReview:
		return "Under Review"
	case ClaimStatusInformationNeeded:
		return "Information Needed"
	case ClaimStatusApproved:
		return "Approved"
	case ClaimStatusRejected:
		return "Rejected"
	case ClaimStatusPaid:
		return "Paid"
	default:
		return "Draft"
	}
}

type Claims []Claim

// Claim is a draft or submitted claim as presented to clients
//
// swagger:model
type Claim struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	PolicyID    string      `json:"policy_id"`
	CreatedAt   time.Time   `json:"created_at"`
	SubmittedAt *time.Time  `json:"submitted_at,omitempty"`
	Status      ClaimStatus `json:"status"`
	StatusLabel string      `json:"status_label"`

	// reference number assigned at submission, e.g. AXA-004217
	Reference string `json:"reference,omitempty"`

	EventType      ClaimEventType `json:"event_type"`
	EventTypeLabel string         `json:"event_type_label"`
	EventDate      time.Time      `json:"event_date"`
	EventLocation  EventLocation  `json:"event_location"`

	// human readable location, e.g. "Lat: 40.4168, Long: -3.7038"
	LocationSummary string `json:"location_summary"`

	Description  string       `json:"description"`
	Vehicles     []Vehicle    `json:"vehicles"`
	ThirdParties []ThirdParty `json:"third_parties"`
	MediaItems   []MediaItem  `json:"media_items"`
	PoliceReport PoliceReport `json:"police_report"`

	IsSubmittable bool `json:"is_submittable"`

	// the last day to report the incident, seven days after the event
	ReportDeadline     time.Time `json:"report_deadline"`
	PastReportDeadline bool      `json:"past_report_deadline"`
}

type EventLocation struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Address   string   `json:"address,omitempty"`
}

type PoliceReport struct {
	Filed         bool   `json:"filed"`
	ReportNumber  string `json:"report_number,omitempty"`
	PoliceStation string `json:"police_station,omitempty"`
}

type Vehicle struct {
	ID         string `json:"id"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

type ThirdParty struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Contact       string `json:"contact"`
	InsuranceInfo string `json:"insurance_info,omitempty"`
}

type MediaItem struct {
	ID       string    `json:"id"`
	URI      string    `json:"uri"`
	Type     MediaType `json:"type"`
	FileName string    `json:"file_name,omitempty"`
}

// ClaimUpdateInput is a partial update of the draft claim. Only non-nil fields are applied.
//
// swagger:model
type ClaimUpdateInput struct {
	PolicyID      *string         `json:"policy_id,omitempty" validate:"omitempty,min=1"`
	EventType     *ClaimEventType `json:"event_type,omitempty" validate:"omitempty,claimEventType"`
	EventDate     *time.Time      `json:"event_date,omitempty"`
	EventLocation *EventLocation  `json:"event_location,omitempty"`
	Description   *string         `json:"description,omitempty"`
	PoliceReport  *PoliceReport   `json:"police_report,omitempty"`
}

type VehicleInput struct {
	ID         string `json:"id"`
	Make       string `json:"make" validate:"required"`
	Model      string `json:"model" validate:"required"`
	Identifier string `json:"identifier" validate:"required"`
	Type       string `json:"type"`
}

type ThirdPartyInput struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"required"`
	Contact       string `json:"contact" validate:"required"`
	InsuranceInfo string `json:"insurance_info"`
}

type MediaItemInput struct {
	ID       string    `json:"id"`
	URI      string    `json:"uri" validate:"required"`
	Type     MediaType `json:"type" validate:"required,mediaType"`
	FileName string    `json:"file_name"`
}

type ClaimStatusInput struct {
	Status ClaimStatus `json:"status" validate:"required,claimStatus"`
}

// Declaration reports the two acceptance checkboxes of the declaration step
type Declaration struct {
	Truthful bool `json:"truthful"`
	Terms    bool `json:"terms"`
}

// Accepted is true only when both checkboxes are ticked
func (d Declaration) Accepted() bool {
	return d.Truthful && d.Terms
}

type StepStatus struct {
	Step     ClaimStep `json:"step"`
	Complete bool      `json:"complete"`
}

// StepsReport is the completion state of every wizard step for the current draft
type StepsReport struct {
	Steps         []StepStatus `json:"steps"`
	IsSubmittable bool         `json:"is_submittable"`
	CanSubmit     bool         `json:"can_submit"`
}

type SubmitResult struct {
	Reference string `json:"reference"`
	Claim     Claim  `json:"claim"`
}
