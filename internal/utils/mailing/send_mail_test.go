package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageHeaders(t *testing.T) {
	config := MailConfig{SMTPEmail: "noreply@bloodbank.com", SMTPSender: "Blood Bank"}

	msg := BuildMessage(config, "admin@bloodbank.com", "New Blood Request", "O- needed at DMCH")

	assert.Equal(t, []string{"admin@bloodbank.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"New Blood Request"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("From"), 1)
	assert.Contains(t, msg.GetHeader("From")[0], "noreply@bloodbank.com")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "O- needed")
}

func TestBuildMessageSendsPlainText(t *testing.T) {
	config := MailConfig{SMTPEmail: "noreply@bloodbank.com"}
	reason := "<b>expired</b> kit"

	msg := BuildMessage(config, "john@example.com", "Donation Rejected", "Reason: "+reason)

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Content-Type: text/plain")
	assert.NotContains(t, buf.String(), "text/html")
	assert.Contains(t, buf.String(), reason)
}

func TestSendMailRejectsInvalidPort(t *testing.T) {
	mailer := NewMailer(MailConfig{SMTPHost: "localhost", SMTPPort: "not-a-port"})

	err := mailer.SendMail("john@example.com", "subject", "body")
	assert.Error(t, err)
}
