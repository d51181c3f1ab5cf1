package email

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

type TemplateName string

const (
	TplClassEnrollment     TemplateName = "classEnrollment"
	TplPaymentConfirmation TemplateName = "paymentConfirmation"
	TplClassReminder       TemplateName = "classReminder"
	TplAttendanceUpdate    TemplateName = "attendanceUpdate"
	TplClassUpdate         TemplateName = "classUpdate"
	TplRentalUpdate        TemplateName = "rentalUpdate"
)

type tmplSet struct {
	subject *texttmpl.Template
	text    *texttmpl.Template
	html    *htmltmpl.Template
}

var templates = map[TemplateName]tmplSet{
	TplClassEnrollment: mustSet(
		`Welcome to {{.ClassName}}!`,
		`You have successfully enrolled in {{.ClassName}}. We look forward to seeing you in class!`,
		`<h1>Welcome to {{.ClassName}}!</h1>
<p>You have successfully enrolled in {{.ClassName}}. We look forward to seeing you in class!</p>
<p>Please make sure to arrive 10 minutes before the class starts.</p>`,
	),
	TplPaymentConfirmation: mustSet(
		`Payment Confirmation: {{.ClassName}}`,
		`We received your payment of {{.Amount}} for {{.ClassName}}. Reference: {{.PaymentID}}.`,
		`<h1>Payment Confirmation</h1>
<p>We received your payment of <strong>{{.Amount}}</strong> for <strong>{{.ClassName}}</strong>.</p>
<p>Reference: {{.PaymentID}}</p>`,
	),
	TplClassReminder: mustSet(
		`Reminder: {{.ClassName}} Tomorrow`,
		`This is a reminder that your {{.ClassName}} class is scheduled for tomorrow, {{.Date}} at {{.Time}}.`,
		`<h1>Class Reminder</h1>
<p>This is a reminder that your <strong>{{.ClassName}}</strong> class is scheduled for tomorrow.</p>
<p>Date: {{.Date}}</p>
<p>Time: {{.Time}}</p>
<p>Please arrive 10 minutes before the class starts.</p>`,
	),
	TplAttendanceUpdate: mustSet(
		`Attendance Record: {{.ClassName}}`,
		`Your attendance for {{.ClassName}} on {{.Date}} has been marked as {{.Status}}.`,
		`<h1>Attendance Record</h1>
<p>Your attendance for <strong>{{.ClassName}}</strong> on {{.Date}} has been marked as <strong>{{.Status}}</strong>.</p>
{{if eq .Status "absent"}}<p>If you believe this is incorrect, please contact your instructor.</p>{{end}}`,
	),
	TplClassUpdate: mustSet(
		`Class Update: {{.ClassName}}`,
		`Important update regarding your {{.ClassName}} class: {{.UpdateType}}. {{.Details}}`,
		`<h1>Class Update: {{.ClassName}}</h1>
<h2>{{.UpdateType}}</h2>
<p>{{.Details}}</p>`,
	),
	TplRentalUpdate: mustSet(
		`Studio Booking {{.Status}}: {{.Date}}`,
		`Your studio booking on {{.Date}} at {{.Time}} is now {{.Status}}.`,
		`<h1>Studio Booking</h1>
<p>Your studio booking on <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong> is now <strong>{{.Status}}</strong>.</p>`,
	),
}

func mustSet(subject, text, html string) tmplSet {
	return tmplSet{
		subject: texttmpl.Must(texttmpl.New("subject").Option("missingkey=zero").Parse(subject)),
		text:    texttmpl.Must(texttmpl.New("text").Option("missingkey=zero").Parse(text)),
		html:    htmltmpl.Must(htmltmpl.New("html").Option("missingkey=zero").Parse(html)),
	}
}

// TemplateData dipakai semua template; field yang tidak relevan dibiarkan kosong.
type TemplateData struct {
	ClassName  string
	Amount     string
	PaymentID  string
	Date       string
	Time       string
	Status     string
	UpdateType string
	Details    string
}

// Render builds a Message from a named template.
func Render(name TemplateName, to mail.Address, data TemplateData) (Message, error) {
	set, ok := templates[name]
	if !ok {
		return Message{}, errors.Errorf("unknown email template %q", name)
	}

	var subj, text, html bytes.Buffer
	if err := set.subject.Execute(&subj, data); err != nil {
		return Message{}, errors.Wrap(err, "rendering subject")
	}
	if err := set.text.Execute(&text, data); err != nil {
		return Message{}, errors.Wrap(err, "rendering text")
	}
	if err := set.html.Execute(&html, data); err != nil {
		return Message{}, errors.Wrap(err, "rendering html")
	}
	return Message{
		To:      to,
		Subject: subj.String(),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
