package notifications

import (
	"github.com/silinternational/cover-agri/domain"
)

type Message struct {
	Template  string
	Data      map[string]any
	Body      string
	FromName  string
	FromEmail string
	ToName    string
	ToEmail   string
	Subject   string
}

// NewEmailMessage returns a message with the FromEmail, the Data.appName and Data.uiURL already set
func NewEmailMessage() Message {
	msg := Message{
		FromEmail: domain.EmailFromAddress(nil),
		Data: map[string]any{
			"appName": domain.Env.AppName,
			"uiURL":   domain.Env.UIURL,
		},
	}
	return msg
}

// AddToClaimsDesk addresses the message to the claims desk
func (m Message) AddToClaimsDesk() Message {
	m.ToName = "Claims Desk"
	m.ToEmail = domain.Env.ClaimsDeskEmail
	return m
}
