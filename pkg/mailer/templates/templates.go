package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Render returns the subject, text body and HTML body for a named
// template. Unknown template names are an error so bad jobs are
// rejected instead of sending empty mail.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	text, err = renderText(t.text, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderHTML(t.html, data)
	if err != nil {
		return "", "", "", err
	}
	return t.subject, text, html, nil
}

type emailTemplate struct {
	subject string
	text    string
	html    string
}

var registry = map[string]emailTemplate{
	"verify_email": {
		subject: "Verify your email address",
		text: `Hi {{.Name}},

Please confirm your email address by opening the link below:

{{.VerifyURL}}

If you did not create this account, you can ignore this message.`,
		html: `<p>Hi {{.Name}},</p>
<p>Please confirm your email address by clicking the link below:</p>
<p><a href="{{.VerifyURL}}">Verify email</a></p>
<p>If you did not create this account, you can ignore this message.</p>`,
	},
	"welcome": {
		subject: "Welcome aboard",
		text: `Hi {{.Name}},

Your account is ready. Happy shopping!`,
		html: `<p>Hi {{.Name}},</p>
<p>Your account is ready. Happy shopping!</p>`,
	},
}

func renderText(tpl string, data map[string]any) (string, error) {
	t, err := texttpl.New("text").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(tpl string, data map[string]any) (string, error) {
	t, err := htmpl.New("html").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
