package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitive(t *testing.T) {
	in := map[string]any{
		"paymentId": "pay_1",
		"apiKey":    "sk_live",
		"nested": map[string]any{
			"card_token":    "tok_123",
			"customerEmail": "jane.doe@example.com",
			"items":         []any{map[string]any{"privateNote": "x"}, "plain"},
		},
	}

	out, ok := MaskSensitive(in).(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "pay_1", out["paymentId"])
	assert.Equal(t, Masked, out["apiKey"])

	nested := out["nested"].(map[string]any)
	assert.Equal(t, Masked, nested["card_token"])
	assert.Equal(t, "j***@example.com", nested["customerEmail"])

	items := nested["items"].([]any)
	assert.Equal(t, Masked, items[0].(map[string]any)["privateNote"])
	assert.Equal(t, "plain", items[1])

	// input tidak boleh berubah
	assert.Equal(t, "sk_live", in["apiKey"])
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"a@b.co":          "a***@b.co",
		"someone@mail.io": "s***@mail.io",
		"not-an-email":    "not-an-email",
		"@nouser.com":     "@nouser.com",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in), in)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	for _, k := range []string{"Password", "refresh_token", "SERVER_KEY", "clientSecret", "credentials", "private_key", "signature"} {
		assert.True(t, IsSensitiveKey(k), k)
	}
	for _, k := range []string{"amount", "userId", "paymentMethod"} {
		assert.False(t, IsSensitiveKey(k), k)
	}
}

func TestScrubText(t *testing.T) {
	cases := map[string]string{
		"smtp: 550 rejected jane.doe@example.com":   "smtp: 550 rejected j***@example.com",
		"a@b.co and c.d@e.org":                      "a***@b.co and c***@e.org",
		"Authorization: Bearer eyJhbGciOi.x.y":       "Authorization: Bearer ********",
		"request failed: password=hunter2&user=ana": "request failed: password=********&user=ana",
		`{"client_secret": "abc"}`:                  `{"client_secret=********}`,
		"nothing to hide":                           "nothing to hide",
	}
	for in, want := range cases {
		assert.Equal(t, want, ScrubText(in), in)
	}
}

func TestMaskSensitiveScrubsNestedText(t *testing.T) {
	out := MaskSensitive(map[string]any{"note": "contact jane.doe@example.com"}).(map[string]any)
	assert.Equal(t, "contact j***@example.com", out["note"])
}
