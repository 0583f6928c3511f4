package notifications

import (
	"bytes"
	"fmt"

	"github.com/gobuffalo/buffalo/render"

	"github.com/silinternational/cover-agri/templates"
)

var EmailRenderer = render.New(render.Options{
	HTMLLayout:  "mail/layout.plush.html",
	TemplatesFS: templates.FS(),
	Helpers:     render.Helpers{},
})

type EmailService interface {
	Send(msg Message) error
}

// renderBody returns msg.Body, rendering msg.Template into it first if it is empty
func renderBody(msg Message) (string, error) {
	if msg.Body != "" {
		return msg.Body, nil
	}

	data := render.Data{}
	for k, v := range msg.Data {
		data[k] = v
	}

	bodyBuf := &bytes.Buffer{}
	if err := EmailRenderer.HTML(msg.Template).Render(bodyBuf, data); err != nil {
		return "", fmt.Errorf("error rendering message body for %s: %w", msg.Template, err)
	}
	return bodyBuf.String(), nil
}
