package notifications

import (
	"github.com/silinternational/cover-agri/domain"
)

// Notifier is an abstraction layer for multiple types of notifications. Only email exists so far.
type Notifier interface {
	Send(msg Message) error
}

// EmailNotifier is an email notifier that conforms to the Notifier interface.
type EmailNotifier struct {
	// Service overrides the service chosen by domain.Env.EmailService
	Service EmailService
}

// Send a notification using an email notifier.
func (e *EmailNotifier) Send(msg Message) error {
	emailService := e.Service
	if emailService == nil {
		emailService = emailServiceFromEnv()
	}
	return emailService.Send(msg)
}

func emailServiceFromEnv() EmailService {
	switch domain.Env.EmailService {
	case domain.EmailServiceSES:
		return &SES{}
	default:
		return TestEmailService
	}
}
