package fakesendmail

import "strings"

// NotifyTemplate is the default operator-alert message. Placeholders:
// {fromaddr}, {toaddr}, {error} and {origmsgpath}.
const NotifyTemplate string = `From: {fromaddr}
To: {toaddr}
Subject: Email delivery problem detected

Problem detected with a delivery on the server. The error was:
{error}.

The original message can be found at the path:
{origmsgpath}
`

// NotifyConfig is the operator notification bundle. When nil on the
// Config, problem notification is a no-op.
type NotifyConfig struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Template string `yaml:"template"`
}

// Render fills every placeholder of the template.
func (n *NotifyConfig) Render(errText, msgPath string) string {
	tmpl := n.Template
	if tmpl == "" {
		tmpl = NotifyTemplate
	}
	return strings.NewReplacer(
		"{fromaddr}", n.From,
		"{toaddr}", n.To,
		"{error}", errText,
		"{origmsgpath}", msgPath,
	).Replace(tmpl)
}

// notifyProblem sends the rendered alert through the same transport,
// fire and forget: its own delivery outcome is only logged.
func (f *Filter) notifyProblem(errText, msgPath string) {
	n := f.Config.Notify
	if n == nil {
		return
	}

	if _, err := f.Transport.Run(nil, []byte(n.Render(errText, msgPath))); err != nil {
		f.Logger.Printf("[%s] problem notification error: %s", f.id, err)
	}
}
