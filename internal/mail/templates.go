package mail

import (
	"bytes"
	"html/template"
)

var (
	verifyTmpl = template.Must(template.New("verify").Parse(
		`<h1>Verify your Email</h1><p>Please click this <a href="{{.}}">link</a> to verify your email</p>`))
	resetTmpl = template.Must(template.New("reset").Parse(
		`<h1>Reset Your Password</h1><p>Please click this <a href="{{.}}">link</a> to Reset Your Password</p>`))
)

const welcomeHTML = `<h1>Welcome to the app</h1>`

func VerificationMessage(to, link string) Message {
	return Message{To: []string{to}, Subject: "Verify your email", HTML: render(verifyTmpl, link)}
}

func PasswordResetMessage(to, link string) Message {
	return Message{To: []string{to}, Subject: "Reset Your Password", HTML: render(resetTmpl, link)}
}

func WelcomeMessage(to []string) Message {
	return Message{To: to, Subject: "Welcome to our app", HTML: welcomeHTML}
}

func render(t *template.Template, link string) string {
	var buf bytes.Buffer
	// Execute cannot fail for a string argument
	_ = t.Execute(&buf, link)
	return buf.String()
}
