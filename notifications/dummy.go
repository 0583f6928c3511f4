package notifications

import (
	"sync"

	"github.com/silinternational/cover-agri/log"
)

// DummyEmailService keeps the messages it is given instead of sending them
type DummyEmailService struct {
	mu       sync.Mutex
	messages []dummyMessage
}

func NewDummyEmailService() *DummyEmailService {
	return &DummyEmailService{}
}

var TestEmailService = NewDummyEmailService()

type dummyMessage struct {
	subject, body, fromName, fromEmail, toName, toEmail string
}

type DummyMessageInfo struct {
	Subject, ToName, ToEmail string
}

func (t *DummyEmailService) Send(msg Message) error {
	body, err := renderBody(msg)
	if err != nil {
		log.Error(err)
		return err
	}

	log.Debugf("dummy message subject: %s, recipient: %s", msg.Subject, msg.ToName)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, dummyMessage{
		subject:   msg.Subject,
		body:      body,
		fromName:  msg.FromName,
		fromEmail: msg.FromEmail,
		toName:    msg.ToName,
		toEmail:   msg.ToEmail,
	})
	return nil
}

// GetNumberOfMessagesSent returns the number of messages sent since initialization or the last call to
// DeleteSentMessages
func (t *DummyEmailService) GetNumberOfMessagesSent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// DeleteSentMessages erases the store of sent messages
func (t *DummyEmailService) DeleteSentMessages() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
}

func (t *DummyEmailService) GetLastToEmail() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) == 0 {
		return ""
	}
	return t.messages[len(t.messages)-1].toEmail
}

func (t *DummyEmailService) GetLastBody() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) == 0 {
		return ""
	}
	return t.messages[len(t.messages)-1].body
}

func (t *DummyEmailService) GetSentMessages() []DummyMessageInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	messages := make([]DummyMessageInfo, len(t.messages))
	for i, m := range t.messages {
		messages[i] = DummyMessageInfo{
			Subject: m.subject,
			ToName:  m.toName,
			ToEmail: m.toEmail,
		}
	}
	return messages
}
