package messages

import (
	"strings"
	"time"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/models"
	"github.com/silinternational/cover-agri/notifications"
)

// ClaimSubmittedMessage tells the claims desk about a newly submitted claim
func ClaimSubmittedMessage(claim models.Claim, now time.Time) notifications.Message {
	msg := notifications.NewEmailMessage().AddToClaimsDesk()
	addMessageClaimData(&msg, claim)

	msg.Subject = "New " + strings.ToLower(claim.EventType.Label()) + " claim " + claim.Reference
	msg.Template = MessageTemplateClaimSubmittedDesk

	submittedAgo := "just now"
	if claim.SubmittedAt.Valid {
		submittedAgo = domain.TimeBetween(claim.SubmittedAt.Time, now)
	}
	msg.Data["submittedAgo"] = submittedAgo

	msg.Data["location"] = claim.EventLocation.Summary()
	msg.Data["description"] = claim.Description
	msg.Data["vehicleCount"] = len(claim.Vehicles)
	msg.Data["thirdPartyCount"] = len(claim.ThirdParties)
	msg.Data["mediaCount"] = len(claim.MediaItems)
	msg.Data["policeReport"] = policeReportSummary(claim.PoliceReport)

	return msg
}

// ClaimStatusMessage tells the claims desk that a claim moved to a new status
func ClaimStatusMessage(claim models.Claim) notifications.Message {
	msg := notifications.NewEmailMessage().AddToClaimsDesk()
	addMessageClaimData(&msg, claim)

	msg.Subject = "Claim " + claim.Reference + " is now " + claim.Status.Label()
	msg.Template = MessageTemplateClaimStatusDesk
	msg.Data["status"] = claim.Status.Label()

	return msg
}

func policeReportSummary(p models.PoliceReport) string {
	if !p.Filed {
		return "not filed"
	}

	parts := []string{"filed"}
	if p.ReportNumber.Valid && p.ReportNumber.String != "" {
		parts = append(parts, "number "+p.ReportNumber.String)
	}
	if p.PoliceStation.Valid && p.PoliceStation.String != "" {
		parts = append(parts, "at "+p.PoliceStation.String)
	}
	return strings.Join(parts, ", ")
}
