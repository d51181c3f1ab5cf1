package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvLists(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12,")
	t.Setenv("GOOGLE_CLIENT_IDS", "web.apps.googleusercontent.com")

	c := FromEnv()
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, c.TrustedProxies)
	assert.Equal(t, []string{"web.apps.googleusercontent.com"}, c.GoogleClientIDs)
}

func TestTrustedProxiesDefaultEmpty(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	assert.Empty(t, FromEnv().TrustedProxies)
}

func validConfig() *Config {
	return &Config{
		AppEnv:               "development",
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		PaymentWebhookSecret: "whsec",
		DB:                   DBConfig{User: "app", Name: "danceflow"},
		Email:                EmailConfig{Provider: "console"},
	}
}

func TestValidate(t *testing.T) {
	assert.Empty(t, validConfig().Validate())

	c := validConfig()
	c.JWTSecret = "short"
	c.Email.Provider = "pigeon"
	missing := c.Validate()
	assert.Contains(t, missing, "JWT_SECRET (min 32 chars)")
	assert.Contains(t, missing, "EMAIL_PROVIDER (sendgrid|smtp|console)")
}

func TestValidateProduction(t *testing.T) {
	c := validConfig()
	c.AppEnv = "Production"
	c.CorsOrigins = []string{"*"}
	assert.True(t, c.IsProduction())

	missing := c.Validate()
	assert.Contains(t, missing, "ROLLBAR_TOKEN (required in production)")
	assert.Contains(t, missing, "CORS_ORIGINS (wildcard not allowed in production)")

	c.RollbarToken = "tok"
	c.CorsOrigins = []string{"https://studio.example.com"}
	assert.Empty(t, c.Validate())
}
