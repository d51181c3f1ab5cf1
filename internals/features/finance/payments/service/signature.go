package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

const signatureField = "signature"

var (
	ErrMissingSecret    = errors.New("webhook secret is not configured")
	ErrSignatureInvalid = errors.New("signature mismatch")
)

// CanonicalPayload: objek JSON tanpa field "signature", key terurut, tanpa spasi.
// Angka dipertahankan persis seperti yang dikirim.
func CanonicalPayload(raw []byte) ([]byte, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	delete(fields, signatureField)
	return json.Marshal(fields)
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}
	if fields == nil {
		return nil, errors.New("payload must be a JSON object")
	}
	return fields, nil
}

// ComputeSignature = hex(HMAC-SHA256(secret, "<timestamp>." + canonical)).
func ComputeSignature(secret string, timestamp int64, canonical []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature gagal tertutup: secret kosong selalu ditolak.
func VerifySignature(secret string, raw []byte, timestamp int64, signature string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	canonical, err := CanonicalPayload(raw)
	if err != nil {
		return err
	}
	expected := ComputeSignature(secret, timestamp, canonical)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureInvalid
	}
	return nil
}

// SignBody menambahkan field "signature" ke body JSON. Dipakai studioctl sign & test.
func SignBody(secret string, raw []byte) ([]byte, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	delete(fields, signatureField)

	num, ok := fields["timestamp"].(json.Number)
	if !ok {
		return nil, errors.New("payload needs a numeric timestamp")
	}
	ts, err := num.Int64()
	if err != nil {
		return nil, errors.Wrap(err, "parsing timestamp")
	}

	canonical, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	fields[signatureField] = ComputeSignature(secret, ts, canonical)
	return json.Marshal(fields)
}
