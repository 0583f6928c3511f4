package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/messages"
	"github.com/silinternational/cover-agri/notifications"
)

func claimSubmitted(e events.Event) {
	if e.Kind != domain.EventApiClaimSubmitted {
		return
	}

	defer panicRecover(e.Kind)

	claim, err := getClaim(e.Payload)
	if err != nil {
		log.Errorf("%s: %s", e.Kind, err)
		return
	}

	log.WithFields(log.Fields{
		"claim_id":   claim.ID,
		"reference":  claim.Reference,
		"event_type": claim.EventType,
	}).Info("claim submitted")

	msg := messages.ClaimSubmittedMessage(claim, now())
	if err := notifications.Send(msg, getNotifiersFromEventPayload(e.Payload)...); err != nil {
		log.Errorf("error sending claim submitted notification for %s, %s", claim.Reference, err)
	}
}

func claimStatusUpdated(e events.Event) {
	if e.Kind != domain.EventApiClaimStatusUpdated {
		return
	}

	defer panicRecover(e.Kind)

	claim, err := getClaim(e.Payload)
	if err != nil {
		log.Errorf("%s: %s", e.Kind, err)
		return
	}

	log.WithFields(log.Fields{
		"claim_id":  claim.ID,
		"reference": claim.Reference,
		"status":    claim.Status,
	}).Info("claim status updated")

	msg := messages.ClaimStatusMessage(claim)
	if err := notifications.Send(msg, getNotifiersFromEventPayload(e.Payload)...); err != nil {
		log.Errorf("error sending claim status notification for %s, %s", claim.Reference, err)
	}
}
