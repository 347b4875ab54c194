package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateWelcome greets a newly registered account.
const TemplateWelcome = "welcome"

var welcomeHTML = template.Must(template.New(TemplateWelcome).Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome to {{.AppName}}</h2>
  <p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
  <p>Your {{.UserType}} account is ready. Log in to browse courses and get started.</p>
  <p>— The {{.AppName}} team</p>
</body>
</html>
`))

// Render returns subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("Welcome to %v", data["AppName"])
		text = fmt.Sprintf("Your %v account is ready.", data["UserType"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
