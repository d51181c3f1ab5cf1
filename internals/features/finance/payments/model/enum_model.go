package model

type PaymentStatus string
type PaymentGatewayProvider string
type GatewayEventStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const (
	// callback bertanda tangan (HMAC) dari gateway
	GatewayProviderWebhook  PaymentGatewayProvider = "webhook"
	GatewayProviderMidtrans PaymentGatewayProvider = "midtrans"
)

const (
	GatewayEventStatusReceived   GatewayEventStatus = "received"
	GatewayEventStatusProcessing GatewayEventStatus = "processing"
	GatewayEventStatusSuccess    GatewayEventStatus = "success"
	GatewayEventStatusFailed     GatewayEventStatus = "failed"
)
