package service

import (
	"fmt"
	"net/http"
)

const (
	CodeInvalidPayload    = "payment/invalid-payload"
	CodeInvalidSignature  = "payment/invalid-signature"
	CodeInvalidTimestamp  = "payment/invalid-timestamp"
	CodeClassNotFound     = "payment/class-not-found"
	CodeUserNotFound      = "payment/user-not-found"
	CodeDuplicatePayment  = "payment/duplicate-payment"
	CodeClassFull         = "payment/class-full"
	CodeAlreadyEnrolled   = "payment/already-enrolled"
	CodeInvalidAmount     = "payment/invalid-amount"
	CodeTimeout           = "payment/timeout"
	CodeTransactionFailed = "payment/transaction-failed"
)

// PaymentError dibawa sampai ke controller dan dirender apa adanya.
type PaymentError struct {
	Code    string
	Message string
	Status  int
	Details any
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *PaymentError) Unwrap() error { return e.Err }

func newPaymentError(code string, status int, msg string) *PaymentError {
	return &PaymentError{Code: code, Message: msg, Status: status}
}

func errInvalidPayload(details any) *PaymentError {
	e := newPaymentError(CodeInvalidPayload, http.StatusBadRequest, "Invalid payment payload")
	e.Details = details
	return e
}

func errInvalidSignature() *PaymentError {
	return newPaymentError(CodeInvalidSignature, http.StatusBadRequest, "Invalid signature")
}

func errInvalidTimestamp() *PaymentError {
	return newPaymentError(CodeInvalidTimestamp, http.StatusBadRequest, "Payment timestamp is outside the accepted window")
}

func errClassNotFound() *PaymentError {
	return newPaymentError(CodeClassNotFound, http.StatusBadRequest, "Class not found")
}

func errUserNotFound() *PaymentError {
	return newPaymentError(CodeUserNotFound, http.StatusBadRequest, "User not found")
}

func errDuplicatePayment() *PaymentError {
	return newPaymentError(CodeDuplicatePayment, http.StatusBadRequest, "Payment has already been processed")
}

func errClassFull() *PaymentError {
	return newPaymentError(CodeClassFull, http.StatusBadRequest, "Class is full")
}

func errAlreadyEnrolled() *PaymentError {
	return newPaymentError(CodeAlreadyEnrolled, http.StatusBadRequest, "User is already enrolled in this class")
}

func errInvalidAmount(expected, got float64) *PaymentError {
	e := newPaymentError(CodeInvalidAmount, http.StatusBadRequest, "Payment amount does not match class price")
	e.Details = map[string]float64{"expected": expected, "received": got}
	return e
}

func errTimeout(err error) *PaymentError {
	e := newPaymentError(CodeTimeout, http.StatusServiceUnavailable, "Payment processing timed out, please retry")
	e.Err = err
	return e
}

func errTransactionFailed(errorID string, err error) *PaymentError {
	e := newPaymentError(CodeTransactionFailed, http.StatusInternalServerError, "Failed to process payment")
	e.Details = map[string]string{"errorId": errorID}
	e.Err = err
	return e
}
