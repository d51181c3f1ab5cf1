package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentService "danceflow_backend/internals/features/finance/payments/service"
)

func TestSignCommand(t *testing.T) {
	body := `{"externalId":"intro-ballet","userId":"u1","paymentId":"p1","amount":50,"paymentMethod":"card","timestamp":1772359200000}`

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(body))
	cmd.SetArgs([]string{"sign", "--secret", "whsec_cli"})
	require.NoError(t, cmd.Execute())

	signed := bytes.TrimSpace(out.Bytes())
	var m map[string]any
	require.NoError(t, sonic.Unmarshal(signed, &m))
	sig, ok := m["signature"].(string)
	require.True(t, ok)
	assert.Len(t, sig, 64)

	assert.NoError(t, paymentService.VerifySignature("whsec_cli", signed, 1772359200000, sig))
	assert.Error(t, paymentService.VerifySignature("other", signed, 1772359200000, sig))
}

func TestSignCommandRequiresSecret(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(`{}`))
	cmd.SetArgs([]string{"sign"})
	assert.Error(t, cmd.Execute())
}
