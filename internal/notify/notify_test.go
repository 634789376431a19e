package notify

import (
	"context"
	"errors"
	"testing"

	"leave_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sampleLeave(t *testing.T) domain.LeaveWithOwner {
	t.Helper()
	start, err := domain.ParseDate("2024-06-01")
	require.NoError(t, err)
	end, err := domain.ParseDate("2024-06-03")
	require.NoError(t, err)
	return domain.LeaveWithOwner{
		LeaveRequest: domain.LeaveRequest{ID: 9, LeaveType: "Annual", StartDate: start, EndDate: end, Reason: "Family trip abroad"},
		FirstName:    "Ann",
		LastName:     "Lee",
		Email:        "ann@example.com",
	}
}

func TestComposeDecisionApproved(t *testing.T) {
	comment := "Enjoy!"
	msg, err := ComposeDecision(sampleLeave(t), domain.StatusApproved, &comment)
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", msg.To)
	assert.Equal(t, "Leave Request Approved", msg.Subject)
	assert.Contains(t, msg.Text, "Hello Ann Lee,")
	assert.Contains(t, msg.Text, "- Leave Type: Annual")
	assert.Contains(t, msg.Text, "- Start Date: Jun 1, 2024")
	assert.Contains(t, msg.Text, "- End Date: Jun 3, 2024")
	assert.Contains(t, msg.Text, "- Duration: 3 day(s)")
	assert.Contains(t, msg.Text, "- Status: APPROVED")
	assert.Contains(t, msg.Text, `Admin Comment: "Enjoy!"`)
	assert.Contains(t, msg.HTML, "#10B981")
}

func TestComposeDecisionRejectedWithoutComment(t *testing.T) {
	msg, err := ComposeDecision(sampleLeave(t), domain.StatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, "Leave Request Rejected", msg.Subject)
	assert.NotContains(t, msg.Text, "Admin Comment")
	assert.NotContains(t, msg.HTML, "Admin Comment")
}

func TestComposeDecisionEscapesHTML(t *testing.T) {
	comment := "<script>alert(1)</script>"
	msg, err := ComposeDecision(sampleLeave(t), domain.StatusRejected, &comment)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestDispatcherSkipsWithoutMailer(t *testing.T) {
	d := NewDispatcher(nil, nil)
	assert.NoError(t, d.NotifyDecision(context.Background(), sampleLeave(t), domain.StatusApproved, nil))
}

func TestDispatcherSendsAndReportsFailures(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, nil)
	require.NoError(t, d.NotifyDecision(context.Background(), sampleLeave(t), domain.StatusApproved, nil))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ann@example.com", mailer.sent[0].To)

	mailer.err = errors.New("connection refused")
	err := d.NotifyDecision(context.Background(), sampleLeave(t), domain.StatusApproved, nil)
	assert.EqualError(t, err, "connection refused")
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, Username: "hr@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", m.from)

	m, err = NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 25, From: "noreply@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", m.from)
}
