package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = template.Must(template.New("emails").Parse(`
{{define "welcome"}}
<h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
<p>Your account has been created with the email address {{.Email}}.</p>
<p>Happy shopping!</p>
{{end}}

{{define "password_changed"}}
<h2>Your password was changed</h2>
<p>Hi {{.Name}},</p>
<p>The password for your {{.AppName}} account was just changed. If this was
not you, reset your password immediately using your security answer.</p>
{{end}}

{{define "order_status"}}
<h2>Order update</h2>
<p>Hi {{.Name}},</p>
<p>Your order <strong>{{.OrderID}}</strong> is now <strong>{{.Status}}</strong>.</p>
<p>Total: {{.Total}}</p>
{{end}}
`))

var subjects = map[string]string{
	TemplateWelcome:         "Welcome aboard",
	TemplatePasswordChanged: "Your password was changed",
	TemplateOrderStatus:     "Your order status has changed",
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
