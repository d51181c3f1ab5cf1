package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"danceflow_backend/internals/features/finance/payments/dto"
	"danceflow_backend/internals/features/finance/payments/model"
	"danceflow_backend/internals/helpers/applog"
)

var ErrInvalidOrderID = errors.New("order_id is not a class checkout order")

// MidtransSignature = hex(SHA512(order_id + status_code + gross_amount + serverKey)).
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func verifyMidtrans(serverKey string, n *dto.MidtransNotification) error {
	if serverKey == "" {
		return ErrMissingSecret
	}
	want := MidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	if !hmac.Equal([]byte(want), []byte(n.SignatureKey)) {
		return ErrSignatureInvalid
	}
	return nil
}

// ParseOrderID membalik OrderID: class_<classId>_user_<userId>_<suffix>.
func ParseOrderID(orderID string) (classID, userID string, err error) {
	rest, ok := strings.CutPrefix(orderID, "class_")
	if !ok {
		return "", "", ErrInvalidOrderID
	}
	classID, tail, ok := strings.Cut(rest, "_user_")
	if !ok {
		return "", "", ErrInvalidOrderID
	}
	i := strings.LastIndex(tail, "_")
	if i <= 0 || i == len(tail)-1 || classID == "" {
		return "", "", ErrInvalidOrderID
	}
	return classID, tail[:i], nil
}

// MapMidtransStatus: capture butuh fraud_status=accept supaya dianggap lunas.
func MapMidtransStatus(transactionStatus, fraudStatus string) dto.MidtransOutcome {
	switch transactionStatus {
	case "capture":
		switch fraudStatus {
		case "accept":
			return dto.MidtransPaid
		case "challenge":
			return dto.MidtransAwaiting
		}
		return dto.MidtransFailed
	case "settlement":
		return dto.MidtransPaid
	case "pending":
		return dto.MidtransPending
	case "deny", "failure":
		return dto.MidtransFailed
	case "cancel":
		return dto.MidtransCanceled
	case "expire":
		return dto.MidtransExpired
	case "refund", "partial_refund":
		return dto.MidtransRefunded
	}
	return dto.MidtransIgnored
}

// ProcessMidtransNotification menerima notifikasi Midtrans untuk order checkout.
// Status lunas menjalankan transaksi enrollment yang sama dengan callback webhook.
// Penolakan bisnis (class penuh, jumlah beda) tetap dijawab sukses supaya Midtrans
// tidak mengirim ulang; hanya error sementara yang dikembalikan sebagai error.
func (s *PaymentService) ProcessMidtransNotification(ctx context.Context, raw []byte) (*dto.MidtransNotificationResult, error) {
	var n dto.MidtransNotification
	if err := sonic.Unmarshal(raw, &n); err != nil {
		return nil, errInvalidPayload("body must be a JSON object")
	}
	n.Normalize()
	if err := s.validate.Struct(n); err != nil {
		return nil, errInvalidPayload(validationDetails(err))
	}

	classID, userID, perr := ParseOrderID(n.OrderID)
	if err := verifyMidtrans(s.opts.MidtransServerKey, &n); err != nil {
		if errors.Is(err, ErrMissingSecret) {
			applog.Error("midtrans server key missing", err)
		} else {
			applog.Warn("midtrans signature rejected", "order_id", n.OrderID)
		}
		pe := errInvalidSignature()
		ev := s.recordMidtrans(ctx, raw, &n, n.OrderID+UnverifiedSuffix, classID, userID)
		s.finishEvent(ctx, ev, pe)
		return nil, pe
	}

	out := &dto.MidtransNotificationResult{
		OrderID:           n.OrderID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		Outcome:           MapMidtransStatus(n.TransactionStatus, n.FraudStatus),
	}
	if perr != nil {
		// order bukan dari checkout kelas; dicatat lalu diabaikan
		applog.Warn("midtrans notification for unknown order", "order_id", n.OrderID)
		ev := s.recordMidtrans(ctx, raw, &n, n.OrderID, "", "")
		s.finishEvent(ctx, ev, errInvalidPayload("unknown order_id"))
		out.Outcome = dto.MidtransIgnored
		return out, nil
	}

	ev := s.recordMidtrans(ctx, raw, &n, n.OrderID, classID, userID)
	switch out.Outcome {
	case dto.MidtransPaid:
		amount, err := strconv.ParseFloat(n.GrossAmount, 64)
		if err != nil {
			pe := errInvalidPayload(map[string]string{"gross_amount": "number"})
			s.finishEvent(ctx, ev, pe)
			return nil, pe
		}
		method := n.PaymentType
		if method == "" {
			method = string(model.GatewayProviderMidtrans)
		}
		res, err := s.enroll(ctx, &dto.PaymentCallbackRequest{
			ExternalID:    classID,
			UserID:        userID,
			PaymentID:     n.OrderID,
			Amount:        amount,
			PaymentMethod: method,
			TransactionDetails: map[string]any{
				"transaction_id":     n.TransactionID,
				"transaction_status": n.TransactionStatus,
				"fraud_status":       n.FraudStatus,
				"payment_type":       n.PaymentType,
				"settlement_time":    n.SettlementTime,
			},
		})
		s.finishEvent(ctx, ev, err)
		if err != nil {
			var pe *PaymentError
			if errors.As(err, &pe) && pe.Status < 500 {
				applog.Error("paid midtrans order could not be enrolled", pe,
					"order_id", n.OrderID, "class_id", classID, "user_id", userID)
				out.RejectedCode = pe.Code
				return out, nil
			}
			return nil, err
		}
		out.Enrollment = res

	case dto.MidtransPending, dto.MidtransAwaiting:
		// belum final; event tetap "processing" sampai notifikasi berikutnya

	case dto.MidtransRefunded:
		applog.Warn("midtrans order refunded", "order_id", n.OrderID, "transaction_status", n.TransactionStatus)
		s.finishEvent(ctx, ev, nil)

	default:
		s.finishEvent(ctx, ev, &PaymentError{Code: "midtrans/" + n.TransactionStatus})
	}
	return out, nil
}

func (s *PaymentService) recordMidtrans(ctx context.Context, raw []byte, n *dto.MidtransNotification, externalID, classID, userID string) *model.PaymentGatewayEventModel {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil
	}
	ev, err := s.Events.Record(ctx, GatewayEventInput{
		Provider:   model.GatewayProviderMidtrans,
		ExternalID: externalID,
		ClassID:    classID,
		UserID:     userID,
		Payload:    fields,
		Signature:  n.SignatureKey,
	})
	if err != nil {
		applog.Warn("gateway event not recorded", "order_id", n.OrderID, "error", err.Error())
		return nil
	}
	return ev
}
