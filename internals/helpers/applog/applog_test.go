package applog

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return buf
}

func TestInfoMasksSensitiveFields(t *testing.T) {
	buf := captureOutput(t)

	Info("webhook received", "payment_id", "pay_1", "signature", "abc123", "email", "jane@example.com")

	out := buf.String()
	assert.Contains(t, out, "[INFO] webhook received")
	assert.Contains(t, out, "payment_id=pay_1")
	assert.Contains(t, out, "signature=********")
	assert.Contains(t, out, "email=j***@example.com")
	assert.NotContains(t, out, "abc123")
	assert.NotContains(t, out, "jane@example.com")
}

func TestErrorIncludesErrorText(t *testing.T) {
	buf := captureOutput(t)

	Error("transaction failed", errors.New("boom"), "error_id", "c0ffee")

	out := buf.String()
	assert.True(t, strings.Contains(out, "[ERROR] transaction failed"))
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "error_id=c0ffee")
}

func TestDanglingKey(t *testing.T) {
	buf := captureOutput(t)

	Warn("odd", "lonely")

	assert.Contains(t, buf.String(), "lonely=(MISSING)")
}

func TestQuotedValues(t *testing.T) {
	buf := captureOutput(t)

	Info("x", "note", "two words")

	assert.Contains(t, buf.String(), `note="two words"`)
}

func TestErrorMasksEmailsInErrorText(t *testing.T) {
	buf := captureOutput(t)

	Error("email failed", errors.New("jane.doe@example.com"))
	Error("email failed", errors.New("smtp: 550 rejected jane.doe@example.com"), "to", "jane.doe@example.com")

	out := buf.String()
	assert.NotContains(t, out, "jane.doe@example.com")
	assert.Contains(t, out, "error=j***@example.com")
	assert.Contains(t, out, `error="smtp: 550 rejected j***@example.com"`)
	assert.Contains(t, out, "to=j***@example.com")
}

func TestErrorMasksSecretsInErrorText(t *testing.T) {
	buf := captureOutput(t)

	Error("gateway call failed", errors.New("401 for Authorization: Bearer sk_live_abc123 api_key=xyz789"))

	out := buf.String()
	assert.NotContains(t, out, "sk_live_abc123")
	assert.NotContains(t, out, "xyz789")
}

func TestScrubErrorKeepsStack(t *testing.T) {
	err := scrubError(pkgerrors.New("rejected jane.doe@example.com"))

	assert.Equal(t, "rejected j***@example.com", err.Error())
	var st stackTracer
	assert.True(t, errors.As(err, &st))
	assert.NotEmpty(t, st.StackTrace())

	plain := scrubError(errors.New("boom"))
	assert.Equal(t, "boom", plain.Error())
	assert.False(t, errors.As(plain, &st))
}
