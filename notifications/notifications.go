package notifications

import (
	"fmt"

	"github.com/silinternational/cover-agri/log"
)

// Send passes the message to each notifier, or to an EmailNotifier if none are given
func Send(msg Message, notifiers ...Notifier) error {
	if len(notifiers) == 0 {
		notifiers = []Notifier{&EmailNotifier{}}
	}

	for _, n := range notifiers {
		if err := n.Send(msg); err != nil {
			return fmt.Errorf("%T failed to send '%s': %w", n, msg.Subject, err)
		}
		log.Infof("%T: '%s' message sent to '%s'", n, msg.Subject, msg.ToEmail)
	}

	return nil
}
