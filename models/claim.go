package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/paulmach/orb"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
)

// ClaimReportDeadline is how long after the event an incident should be reported
const ClaimReportDeadline = domain.DurationWeek

var ValidClaimEventTypes = map[api.ClaimEventType]struct{}{
	api.ClaimEventTypeAgriculturalVehicleAccident: {},
	api.ClaimEventTypeTheft:                       {},
	api.ClaimEventTypeFire:                        {},
	api.ClaimEventTypeNaturalEvents:               {},
	api.ClaimEventTypeMaterialDamages:             {},
	api.ClaimEventTypeHydraulicMechanismFailure:   {},
	api.ClaimEventTypeLiabilityCoverage:           {},
	api.ClaimEventTypeOther:                       {},
}

var ValidClaimStatus = map[api.ClaimStatus]struct{}{
	api.ClaimStatusDraft:             {},
	api.ClaimStatusSubmitted:         {},
	api.ClaimStatusUnderReview:       {},
	api.ClaimStatusInformationNeeded: {},
	api.ClaimStatusApproved:          {},
	api.ClaimStatusRejected:          {},
	api.ClaimStatusPaid:              {},
}

var ValidMediaTypes = map[api.MediaType]struct{}{
	api.MediaTypePhoto:    {},
	api.MediaTypeVideo:    {},
	api.MediaTypeDocument: {},
}

type Claims []Claim

// Claim is a draft or submitted claim. The JSON form is the persisted snapshot format.
type Claim struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	PolicyID      string             `json:"policyId"`
	CreatedAt     time.Time          `json:"createdAt"`
	SubmittedAt   nulls.Time         `json:"submittedAt"`
	Status        api.ClaimStatus    `json:"status" validate:"claimStatus"`
	Reference     string             `json:"reference,omitempty"`
	EventType     api.ClaimEventType `json:"eventType"`
	EventDate     time.Time          `json:"eventDate"`
	EventLocation EventLocation      `json:"eventLocation"`
	Description   string             `json:"description"`
	Vehicles      []Vehicle          `json:"vehicles" validate:"dive"`
	ThirdParties  []ThirdParty       `json:"thirdParties"`
	MediaItems    []MediaItem        `json:"mediaItems" validate:"dive"`
	PoliceReport  PoliceReport       `json:"policeReport"`
	IsSubmittable bool               `json:"isSubmittable"`
}

type EventLocation struct {
	Latitude  nulls.Float64 `json:"latitude"`
	Longitude nulls.Float64 `json:"longitude"`
	Address   string        `json:"address,omitempty"`
}

type PoliceReport struct {
	Filed         bool         `json:"filed"`
	ReportNumber  nulls.String `json:"reportNumber"`
	PoliceStation nulls.String `json:"policeStation"`
}

type Vehicle struct {
	ID         string `json:"id" validate:"required"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

type ThirdParty struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Contact       string       `json:"contact"`
	InsuranceInfo nulls.String `json:"insuranceInfo"`
}

type MediaItem struct {
	ID       string        `json:"id" validate:"required"`
	URI      string        `json:"uri"`
	Type     api.MediaType `json:"type" validate:"mediaType"`
	FileName nulls.String  `json:"fileName"`
}

// HasCoordinates is true when both latitude and longitude are present
func (e EventLocation) HasCoordinates() bool {
	return e.Latitude.Valid && e.Longitude.Valid
}

// Point returns the location as an orb.Point (longitude, latitude). The second return value is false if either
// coordinate is missing.
func (e EventLocation) Point() (orb.Point, bool) {
	if !e.HasCoordinates() {
		return orb.Point{}, false
	}
	return orb.Point{e.Longitude.Float64, e.Latitude.Float64}, true
}

// Summary renders the location for display: coordinates if known, otherwise the address
func (e EventLocation) Summary() string {
	if e.HasCoordinates() {
		return fmt.Sprintf("Lat: %.4f, Long: %.4f", e.Latitude.Float64, e.Longitude.Float64)
	}
	if address := strings.TrimSpace(e.Address); address != "" {
		return address
	}
	return "Not specified"
}

// ReportDeadline is the last moment the incident should be reported to the insurer
func (c *Claim) ReportDeadline() time.Time {
	return c.EventDate.Add(ClaimReportDeadline)
}

// IsPastReportDeadline is true if a draft is still unsubmitted after the report deadline
func (c *Claim) IsPastReportDeadline(now time.Time) bool {
	if c.Status != api.ClaimStatusDraft || c.EventDate.IsZero() {
		return false
	}
	return now.After(c.ReportDeadline())
}

// recompute refreshes the derived fields. It must be called after every change to a draft.
func (c *Claim) recompute() {
	c.IsSubmittable = IsSubmittable(*c)
}

// applyUpdate merges the non-nil fields of the input into the claim
func (c *Claim) applyUpdate(input api.ClaimUpdateInput) {
	if input.PolicyID != nil {
		c.PolicyID = *input.PolicyID
	}
	if input.EventType != nil {
		c.EventType = *input.EventType
	}
	if input.EventDate != nil {
		c.EventDate = input.EventDate.UTC()
	}
	if input.EventLocation != nil {
		c.EventLocation = ConvertEventLocationInput(*input.EventLocation)
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.PoliceReport != nil {
		c.PoliceReport = ConvertPoliceReportInput(*input.PoliceReport)
	}
	c.recompute()
}

// clone returns a deep copy so callers never share slices with the store
func (c Claim) clone() Claim {
	c.Vehicles = append([]Vehicle{}, c.Vehicles...)
	c.ThirdParties = append([]ThirdParty{}, c.ThirdParties...)
	c.MediaItems = append([]MediaItem{}, c.MediaItems...)
	return c
}

func claimStatusTransitions() map[api.ClaimStatus][]api.ClaimStatus {
	return map[api.ClaimStatus][]api.ClaimStatus{
		api.ClaimStatusDraft: {
			api.ClaimStatusSubmitted,
		},
		api.ClaimStatusSubmitted: {
			api.ClaimStatusUnderReview,
			api.ClaimStatusInformationNeeded,
			api.ClaimStatusApproved,
			api.ClaimStatusRejected,
		},
		api.ClaimStatusUnderReview: {
			api.ClaimStatusInformationNeeded,
			api.ClaimStatusApproved,
			api.ClaimStatusRejected,
		},
		api.ClaimStatusInformationNeeded: {
			api.ClaimStatusUnderReview,
			api.ClaimStatusApproved,
			api.ClaimStatusRejected,
		},
		api.ClaimStatusApproved: {
			api.ClaimStatusPaid,
		},
		api.ClaimStatusRejected: {},
		api.ClaimStatusPaid:     {},
	}
}

func isClaimTransitionValid(status1, status2 api.ClaimStatus) (bool, error) {
	if status1 == status2 {
		return true, nil
	}
	targets, ok := claimStatusTransitions()[status1]
	if !ok {
		return false, errors.New("unexpected initial status - " + string(status1))
	}

	for _, target := range targets {
		if status2 == target {
			return true, nil
		}
	}

	return false, nil
}

func ConvertClaim(c Claim, now time.Time) api.Claim {
	claim := api.Claim{
		ID:                 c.ID,
		UserID:             c.UserID,
		PolicyID:           c.PolicyID,
		CreatedAt:          c.CreatedAt,
		Status:             c.Status,
		StatusLabel:        c.Status.Label(),
		Reference:          c.Reference,
		EventType:          c.EventType,
		EventTypeLabel:     c.EventType.Label(),
		EventDate:          c.EventDate,
		EventLocation:      ConvertEventLocation(c.EventLocation),
		LocationSummary:    c.EventLocation.Summary(),
		Description:        c.Description,
		Vehicles:           make([]api.Vehicle, len(c.Vehicles)),
		ThirdParties:       make([]api.ThirdParty, len(c.ThirdParties)),
		MediaItems:         make([]api.MediaItem, len(c.MediaItems)),
		PoliceReport:       ConvertPoliceReport(c.PoliceReport),
		IsSubmittable:      c.IsSubmittable,
		ReportDeadline:     c.ReportDeadline(),
		PastReportDeadline: c.IsPastReportDeadline(now),
	}
	if c.SubmittedAt.Valid {
		t := c.SubmittedAt.Time
		claim.SubmittedAt = &t
	}
	for i, v := range c.Vehicles {
		claim.Vehicles[i] = api.Vehicle(v)
	}
	for i, tp := range c.ThirdParties {
		claim.ThirdParties[i] = api.ThirdParty{
			ID:            tp.ID,
			Name:          tp.Name,
			Contact:       tp.Contact,
			InsuranceInfo: tp.InsuranceInfo.String,
		}
	}
	for i, m := range c.MediaItems {
		claim.MediaItems[i] = api.MediaItem{
			ID:       m.ID,
			URI:      m.URI,
			Type:     m.Type,
			FileName: m.FileName.String,
		}
	}
	return claim
}

func ConvertClaims(cs Claims, now time.Time) api.Claims {
	claims := make(api.Claims, len(cs))
	for i, c := range cs {
		claims[i] = ConvertClaim(c, now)
	}
	return claims
}

func ConvertEventLocation(e EventLocation) api.EventLocation {
	loc := api.EventLocation{Address: e.Address}
	if e.Latitude.Valid {
		lat := e.Latitude.Float64
		loc.Latitude = &lat
	}
	if e.Longitude.Valid {
		long := e.Longitude.Float64
		loc.Longitude = &long
	}
	return loc
}

func ConvertEventLocationInput(input api.EventLocation) EventLocation {
	loc := EventLocation{Address: input.Address}
	if input.Latitude != nil {
		loc.Latitude = nulls.NewFloat64(*input.Latitude)
	}
	if input.Longitude != nil {
		loc.Longitude = nulls.NewFloat64(*input.Longitude)
	}
	return loc
}

func ConvertPoliceReport(p PoliceReport) api.PoliceReport {
	return api.PoliceReport{
		Filed:         p.Filed,
		ReportNumber:  p.ReportNumber.String,
		PoliceStation: p.PoliceStation.String,
	}
}

func ConvertPoliceReportInput(input api.PoliceReport) PoliceReport {
	return PoliceReport{
		Filed:         input.Filed,
		ReportNumber:  optionalString(input.ReportNumber),
		PoliceStation: optionalString(input.PoliceStation),
	}
}

func ConvertVehicleInput(input api.VehicleInput) Vehicle {
	return Vehicle{
		ID:         idOrNew(input.ID),
		Make:       input.Make,
		Model:      input.Model,
		Identifier: input.Identifier,
		Type:       input.Type,
	}
}

func ConvertThirdPartyInput(input api.ThirdPartyInput) ThirdParty {
	return ThirdParty{
		ID:            idOrNew(input.ID),
		Name:          input.Name,
		Contact:       input.Contact,
		InsuranceInfo: optionalString(input.InsuranceInfo),
	}
}

func ConvertMediaItemInput(input api.MediaItemInput) MediaItem {
	return MediaItem{
		ID:       idOrNew(input.ID),
		URI:      input.URI,
		Type:     input.Type,
		FileName: optionalString(input.FileName),
	}
}

func optionalString(s string) nulls.String {
	if s == "" {
		return nulls.String{}
	}
	return nulls.NewString(s)
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return domain.GetUUID().String()
}
