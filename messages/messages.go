package messages

import (
	"fmt"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/models"
	"github.com/silinternational/cover-agri/notifications"
)

// Email templates
const (
	MessageTemplateClaimSubmittedDesk = "mail/claim_submitted_desk.plush.html"
	MessageTemplateClaimStatusDesk    = "mail/claim_status_desk.plush.html"
)

func addMessageClaimData(msg *notifications.Message, claim models.Claim) {
	msg.Data["claimURL"] = fmt.Sprintf("%s/claims/%s", domain.Env.UIURL, claim.ID)
	msg.Data["reference"] = claim.Reference
	msg.Data["policyID"] = claim.PolicyID
	msg.Data["eventType"] = claim.EventType.Label()
	msg.Data["eventDate"] = claim.EventDate.Format(domain.LocalizedDate)
}
