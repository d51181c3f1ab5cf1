package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/features/finance/payments/dto"
	"danceflow_backend/internals/features/finance/payments/model"
)

const testServerKey = "SB-Mid-server-test"

func midtransBody(t *testing.T, orderID, status, fraud, gross string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"order_id":           orderID,
		"status_code":        "200",
		"gross_amount":       gross,
		"transaction_status": status,
		"fraud_status":       fraud,
		"payment_type":       "credit_card",
		"transaction_id":     "trx-1",
		"signature_key":      MidtransSignature(orderID, "200", gross, testServerKey),
	})
	require.NoError(t, err)
	return raw
}

func newMidtransFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.svc.opts.MidtransServerKey = testServerKey
	f.addClass(t, "ballet", 10, 5000)
	f.addUser(t, "u1")
	return f
}

func TestMidtransSignature(t *testing.T) {
	sig := MidtransSignature("order-1", "200", "50.00", "key")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, MidtransSignature("order-1", "200", "50.00", "key"))
	assert.NotEqual(t, sig, MidtransSignature("order-1", "200", "50.01", "key"))
}

func TestParseOrderID(t *testing.T) {
	classID, userID, err := ParseOrderID(OrderID("ballet-101", "u1", "abc123def456"))
	require.NoError(t, err)
	assert.Equal(t, "ballet-101", classID)
	assert.Equal(t, "u1", userID)

	classID, userID, err = ParseOrderID("class_hip_hop_user_uid_with_underscore_abc")
	require.NoError(t, err)
	assert.Equal(t, "hip_hop", classID)
	assert.Equal(t, "uid_with_underscore", userID)

	for _, bad := range []string{"", "order-1", "class_ballet", "class__user_u1_x", "class_ballet_user_u1", "class_ballet_user_u1_"} {
		_, _, err := ParseOrderID(bad)
		assert.ErrorIs(t, err, ErrInvalidOrderID, bad)
	}
}

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		status, fraud string
		want          dto.MidtransOutcome
	}{
		{"capture", "accept", dto.MidtransPaid},
		{"capture", "challenge", dto.MidtransAwaiting},
		{"capture", "deny", dto.MidtransFailed},
		{"settlement", "", dto.MidtransPaid},
		{"pending", "", dto.MidtransPending},
		{"deny", "", dto.MidtransFailed},
		{"failure", "", dto.MidtransFailed},
		{"cancel", "", dto.MidtransCanceled},
		{"expire", "", dto.MidtransExpired},
		{"refund", "", dto.MidtransRefunded},
		{"partial_refund", "", dto.MidtransRefunded},
		{"authorize", "", dto.MidtransIgnored},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MapMidtransStatus(c.status, c.fraud), c.status+"/"+c.fraud)
	}
}

func TestMidtransSettlementEnrolls(t *testing.T) {
	f := newMidtransFixture(t)
	orderID := OrderID("ballet", "u1", "abc123")
	before := f.snap(t, "ballet")

	res, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, "settlement", "", "50.00"))
	require.NoError(t, err)
	assert.Equal(t, dto.MidtransPaid, res.Outcome)
	require.NotNil(t, res.Enrollment)
	assert.Equal(t, orderID, res.Enrollment.TransactionID)
	assert.Equal(t, IdempotencyKey("u1", "ballet", orderID), res.Enrollment.EnrollmentID)

	after := f.snap(t, "ballet")
	assert.Equal(t, before.Enrolled+1, after.Enrolled)
	assert.Equal(t, before.Version+1, after.Version)
	assert.Contains(t, after.Students, "u1")
	assert.Equal(t, int64(1), after.Payments)

	var pay model.PaymentModel
	require.NoError(t, f.db.Where("payment_id = ?", orderID).Take(&pay).Error)
	assert.Equal(t, int64(5000), pay.PaymentAmountCents)
	assert.Equal(t, "credit_card", pay.PaymentMethod)
	assert.Contains(t, string(pay.PaymentTransactionDetails), "trx-1")
	assert.Equal(t, 2, f.mail.count())

	var ev model.PaymentGatewayEventModel
	require.NoError(t, f.db.Where("gateway_event_provider = ? AND gateway_event_external_id = ?",
		model.GatewayProviderMidtrans, orderID).Take(&ev).Error)
	assert.Equal(t, model.GatewayEventStatusSuccess, ev.GatewayEventStatus)

	// notifikasi ulang tidak menambah kursi
	again, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, "settlement", "", "50.00"))
	require.NoError(t, err)
	require.NotNil(t, again.Enrollment)
	assert.True(t, again.Enrollment.Replayed)
	assert.Equal(t, after, f.snap(t, "ballet"))
}

func TestMidtransCaptureNeedsFraudAccept(t *testing.T) {
	f := newMidtransFixture(t)
	orderID := OrderID("ballet", "u1", "cap1")

	res, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, "capture", "challenge", "50.00"))
	require.NoError(t, err)
	assert.Equal(t, dto.MidtransAwaiting, res.Outcome)
	assert.Nil(t, res.Enrollment)
	assert.Equal(t, 0, f.snap(t, "ballet").Enrolled)

	res, err = f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, "capture", "accept", "50.00"))
	require.NoError(t, err)
	assert.Equal(t, dto.MidtransPaid, res.Outcome)
	assert.Equal(t, 1, f.snap(t, "ballet").Enrolled)
}

func TestMidtransNonPaidStatusesDoNotEnroll(t *testing.T) {
	f := newMidtransFixture(t)

	for _, status := range []string{"pending", "deny", "cancel", "expire", "failure"} {
		orderID := OrderID("ballet", "u1", status)
		_, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, status, "", "50.00"))
		require.NoError(t, err, status)
	}
	assert.Equal(t, 0, f.snap(t, "ballet").Enrolled)

	var ev model.PaymentGatewayEventModel
	require.NoError(t, f.db.Where("gateway_event_external_id = ?", OrderID("ballet", "u1", "expire")).Take(&ev).Error)
	assert.Equal(t, model.GatewayEventStatusFailed, ev.GatewayEventStatus)
	require.NotNil(t, ev.GatewayEventError)
	assert.Equal(t, "midtrans/expire", *ev.GatewayEventError)
}

func TestMidtransPaidButClassFullIsAcknowledged(t *testing.T) {
	f := newMidtransFixture(t)
	f.addClass(t, "tiny", 1, 2000)
	f.addUser(t, "u2")
	_, err := f.svc.ProcessCallback(context.Background(), signed(t, f.payload("u2", "tiny", "pay_first", 20)))
	require.NoError(t, err)

	res, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, OrderID("tiny", "u1", "x1"), "settlement", "", "20.00"))
	require.NoError(t, err)
	assert.Equal(t, CodeClassFull, res.RejectedCode)
	assert.Nil(t, res.Enrollment)
	assert.Equal(t, 1, f.snap(t, "tiny").Enrolled)
}

func TestMidtransRejectsBadSignature(t *testing.T) {
	f := newMidtransFixture(t)
	orderID := OrderID("ballet", "u1", "sig1")

	_, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, "settlement", "", "50.00"))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(midtransBody(t, orderID, "cancel", "", "50.00"), &m))
	m["signature_key"] = MidtransSignature(orderID, "200", "50.00", "wrong-key")
	forged, err := json.Marshal(m)
	require.NoError(t, err)

	_, err = f.svc.ProcessMidtransNotification(context.Background(), forged)
	assert.Equal(t, CodeInvalidSignature, codeOf(t, err))

	var genuine model.PaymentGatewayEventModel
	require.NoError(t, f.db.Where("gateway_event_external_id = ?", orderID).Take(&genuine).Error)
	assert.Equal(t, model.GatewayEventStatusSuccess, genuine.GatewayEventStatus)

	var rejected model.PaymentGatewayEventModel
	require.NoError(t, f.db.Where("gateway_event_external_id = ?", orderID+UnverifiedSuffix).Take(&rejected).Error)
	assert.Equal(t, model.GatewayEventStatusFailed, rejected.GatewayEventStatus)

	// server key kosong = selalu ditolak
	f.svc.opts.MidtransServerKey = ""
	_, err = f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, orderID, "settlement", "", "50.00"))
	assert.Equal(t, CodeInvalidSignature, codeOf(t, err))
	assert.Equal(t, 1, f.snap(t, "ballet").Enrolled)
}

func TestMidtransUnknownOrderIsIgnored(t *testing.T) {
	f := newMidtransFixture(t)

	res, err := f.svc.ProcessMidtransNotification(context.Background(), midtransBody(t, "INV-2026-001", "settlement", "", "50.00"))
	require.NoError(t, err)
	assert.Equal(t, dto.MidtransIgnored, res.Outcome)
	assert.Equal(t, 0, f.snap(t, "ballet").Enrolled)
}

func TestMidtransInvalidPayload(t *testing.T) {
	f := newMidtransFixture(t)

	_, err := f.svc.ProcessMidtransNotification(context.Background(), []byte(`[]`))
	assert.Equal(t, CodeInvalidPayload, codeOf(t, err))

	_, err = f.svc.ProcessMidtransNotification(context.Background(), []byte(`{"order_id":"x"}`))
	assert.Equal(t, CodeInvalidPayload, codeOf(t, err))
}
