package dto

import "strings"

// MidtransNotification = HTTP notification dari Midtrans.
// gross_amount dikirim sebagai string ("45.00").
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, refund, partial_refund, failure
	StatusCode        string `json:"status_code" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	OrderID           string `json:"order_id" validate:"required,max=128"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}

func (n *MidtransNotification) Normalize() {
	n.OrderID = strings.TrimSpace(n.OrderID)
	n.StatusCode = strings.TrimSpace(n.StatusCode)
	n.GrossAmount = strings.TrimSpace(n.GrossAmount)
	n.SignatureKey = strings.ToLower(strings.TrimSpace(n.SignatureKey))
	n.TransactionStatus = strings.ToLower(strings.TrimSpace(n.TransactionStatus))
	n.FraudStatus = strings.ToLower(strings.TrimSpace(n.FraudStatus))
}

// MidtransOutcome = status internal hasil mapping transaction_status.
type MidtransOutcome string

const (
	MidtransPaid     MidtransOutcome = "paid"
	MidtransAwaiting MidtransOutcome = "awaiting"
	MidtransPending  MidtransOutcome = "pending"
	MidtransFailed   MidtransOutcome = "failed"
	MidtransCanceled MidtransOutcome = "canceled"
	MidtransExpired  MidtransOutcome = "expired"
	MidtransRefunded MidtransOutcome = "refunded"
	MidtransIgnored  MidtransOutcome = "ignored"
)

type MidtransNotificationResult struct {
	OrderID           string          `json:"order_id"`
	TransactionStatus string          `json:"transaction_status"`
	FraudStatus       string          `json:"fraud_status,omitempty"`
	Outcome           MidtransOutcome `json:"outcome"`
	// kode error enrollment kalau pembayaran lunas tapi tidak bisa diproses (class penuh, dsb)
	RejectedCode string          `json:"rejected_code,omitempty"`
	Enrollment   *CallbackResult `json:"enrollment,omitempty"`
}
