package listeners

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/events"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
	"github.com/silinternational/cover-agri/notifications"
)

// EventPayloadNotifier is the payload key of an optional notifications.Notifier to use instead of the default
const EventPayloadNotifier = "notifier"

type apiListener struct {
	name     string
	listener func(events.Event)
}

// Register new listener functions here. The listeners themselves still need to verify the event kind.
var apiListeners = map[string][]apiListener{
	domain.EventApiClaimSubmitted: {
		{
			name:     "claim-submitted-notify-desk",
			listener: claimSubmitted,
		},
	},
	domain.EventApiClaimStatusUpdated: {
		{
			name:     "claim-status-notify-desk",
			listener: claimStatusUpdated,
		},
	},
}

var now = time.Now

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for _, listeners := range apiListeners {
		for _, l := range listeners {
			_, err := events.NamedListen(l.name, l.listener)
			if err != nil {
				log.Errorf("Failed registering listener: %s, err: %s", l.name, err)
			}
		}
	}
}

func getClaim(p events.Payload) (models.Claim, error) {
	c, ok := p[domain.EventPayloadClaim]
	if !ok {
		return models.Claim{}, errors.New("claim not in event payload")
	}

	switch claim := c.(type) {
	case models.Claim:
		return claim, nil
	case *models.Claim:
		if claim == nil {
			return models.Claim{}, errors.New("nil claim in event payload")
		}
		return *claim, nil
	default:
		return models.Claim{}, fmt.Errorf("claim not a valid type: %T", c)
	}
}

func getNotifiersFromEventPayload(p events.Payload) []notifications.Notifier {
	var notifiers []notifications.Notifier
	if n, ok := p[EventPayloadNotifier].(notifications.Notifier); ok {
		notifiers = append(notifiers, n)
	}
	return notifiers
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		log.Errorf("panic occurred in %s: %s", name, err)
	}
}
