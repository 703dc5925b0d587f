package notification

import (
	"bytes"
	"html/template"
)

var adminNewRequestTmpl = template.Must(template.New("admin_new_request").Parse(`<html>
<body>
<h2>New Venue Booking Request</h2>
<p>A new booking request is waiting for review.</p>
<table>
<tr><td><b>Reference:</b></td><td>{{.Reference}}</td></tr>
<tr><td><b>Requested by:</b></td><td>{{.UserName}} ({{.UserEmail}})</td></tr>
<tr><td><b>Venue:</b></td><td>{{.VenueName}}</td></tr>
<tr><td><b>Date:</b></td><td>{{.EventDate}}</td></tr>
<tr><td><b>Time:</b></td><td>{{.StartTime}} - {{.EndTime}}</td></tr>
<tr><td><b>Event:</b></td><td>{{.EventTitle}}</td></tr>
</table>
<p><a href="{{.ReviewURL}}">Review this request</a></p>
</body>
</html>`))

var userDecisionTmpl = template.Must(template.New("user_decision").Parse(`<html>
<body>
<h2>Your Booking Request Has Been {{.StatusTitle}}</h2>
<p>Dear {{.UserName}},</p>
<p>Your booking request <b>{{.Reference}}</b> for <b>{{.VenueName}}</b> on
{{.EventDate}} from {{.StartTime}} to {{.EndTime}} has been <b>{{.Status}}</b>.</p>
{{if .AdminResponse}}<p>Message from the administrator: {{.AdminResponse}}</p>{{end}}
{{if .Approved}}<p>You can add the event to your Google Calendar from the booking status page.</p>{{end}}
</body>
</html>`))

type adminNewRequestData struct {
	Reference  string
	UserName   string
	UserEmail  string
	VenueName  string
	EventDate  string
	StartTime  string
	EndTime    string
	EventTitle string
	ReviewURL  string
}

type userDecisionData struct {
	UserName      string
	Reference     string
	VenueName     string
	EventDate     string
	StartTime     string
	EndTime       string
	Status        string
	StatusTitle   string
	AdminResponse string
	Approved      bool
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
