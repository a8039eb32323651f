package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const activationSubject = "Account activation"

var activationTemplate = template.Must(template.New("activation").Parse(`<div>
  <h1>Activate your account</h1>
  <p>Follow the link below to confirm your email address:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
</div>`))

// ActivationLinkPath is the route that consumes activation links
const ActivationLinkPath = "/api/v1/user/activate/"

// ActivationURL joins the public API base URL with an activation identifier
func ActivationURL(apiURL, link string) string {
	return strings.TrimRight(apiURL, "/") + ActivationLinkPath + link
}

// ActivationMessage renders the subject and HTML body of an activation email
func ActivationMessage(apiURL, link string) (string, string, error) {
	var body bytes.Buffer
	if err := activationTemplate.Execute(&body, struct{ Link string }{ActivationURL(apiURL, link)}); err != nil {
		return "", "", fmt.Errorf("failed to render activation email: %w", err)
	}
	return activationSubject, body.String(), nil
}
