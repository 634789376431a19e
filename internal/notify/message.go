// Package notify emails leave owners when their request is decided.
package notify

import (
	"bytes"                        // Template output buffer
	"fmt"                          // Message formatting
	"html/template"                // HTML email body
	"leave_system/internal/domain" // Importing domain models
	"strings"                      // String manipulation
)

// displayDate is how dates appear in emails
const displayDate = "Jan 2, 2006"

// Message is a composed email
type Message struct {
	To      string // Recipient address
	Subject string // Subject line
	Text    string // Plain text body
	HTML    string // HTML body, optional
}

type decisionView struct {
	Name      string
	LeaveType string
	StartDate string
	EndDate   string
	Days      int
	Status    string
	Color     string
	Comment   string
}

var decisionHTML = template.Must(template.New("decision").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Leave Request {{.Status}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="margin: 0 0 20px;">Leave Request Update</h1>
  <p>Hello <strong>{{.Name}}</strong>,</p>
  <p style="font-weight: bold; color: {{.Color}};">Your leave request has been {{.Status}}.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="font-weight: bold; width: 30%;">Leave Type:</td><td>{{.LeaveType}}</td></tr>
    <tr><td style="font-weight: bold;">Start Date:</td><td>{{.StartDate}}</td></tr>
    <tr><td style="font-weight: bold;">End Date:</td><td>{{.EndDate}}</td></tr>
    <tr><td style="font-weight: bold;">Duration:</td><td>{{.Days}} day(s)</td></tr>
    <tr><td style="font-weight: bold;">Status:</td><td>{{.Status}}</td></tr>
  </table>
  {{if .Comment}}<h4>Admin Comment:</h4><p style="font-style: italic;">"{{.Comment}}"</p>{{end}}
  <p style="color: #6c757d; font-size: 14px;">If you have any questions about this decision, please contact your HR department or supervisor.</p>
  <p style="color: #6c757d; font-size: 12px;">This is an automated message from the Employee Leave Management System. Please do not reply to this email.</p>
</body>
</html>
`))

// ComposeDecision builds the email telling the owner of leave about status
func ComposeDecision(leave domain.LeaveWithOwner, status domain.Status, comment *string) (Message, error) {
	view := decisionView{
		Name:      leave.OwnerName(),
		LeaveType: leave.LeaveType,
		StartDate: leave.StartDate.Format(displayDate),
		EndDate:   leave.EndDate.Format(displayDate),
		Days:      leave.DurationDays(),
		Status:    string(status),
		Color:     "#EF4444", // Red for rejected
	}
	if status == domain.StatusApproved {
		view.Color = "#10B981" // Green for approved
	}
	if comment != nil {
		view.Comment = *comment
	}

	var html bytes.Buffer
	if err := decisionHTML.Execute(&html, view); err != nil {
		return Message{}, fmt.Errorf("render decision email: %w", err)
	}

	upper := strings.ToUpper(view.Status)
	var text strings.Builder
	fmt.Fprintf(&text, "Leave Request %s\n\n", upper)
	fmt.Fprintf(&text, "Hello %s,\n\n", view.Name)
	fmt.Fprintf(&text, "Your leave request has been %s.\n\n", view.Status)
	text.WriteString("Leave Details:\n")
	fmt.Fprintf(&text, "- Leave Type: %s\n", view.LeaveType)
	fmt.Fprintf(&text, "- Start Date: %s\n", view.StartDate)
	fmt.Fprintf(&text, "- End Date: %s\n", view.EndDate)
	fmt.Fprintf(&text, "- Duration: %d day(s)\n", view.Days)
	fmt.Fprintf(&text, "- Status: %s\n\n", upper)
	if view.Comment != "" {
		fmt.Fprintf(&text, "Admin Comment: %q\n\n", view.Comment)
	}
	text.WriteString("If you have any questions about this decision, please contact your HR department or supervisor.\n\n")
	text.WriteString("This is an automated message from the Employee Leave Management System.\n")

	return Message{
		To:      leave.Email,
		Subject: "Leave Request " + strings.ToUpper(view.Status[:1]) + view.Status[1:],
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
