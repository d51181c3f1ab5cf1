package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/mail"
	"reflect"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "danceflow_backend/internals/databases"
	"danceflow_backend/internals/features/finance/payments/dto"
	"danceflow_backend/internals/features/finance/payments/model"
	"danceflow_backend/internals/features/notifications/email"
	classDTO "danceflow_backend/internals/features/studio/classes/dto"
	classModel "danceflow_backend/internals/features/studio/classes/model"
	enrollmentModel "danceflow_backend/internals/features/studio/enrollments/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

const (
	DefaultMaxSkew   = 5 * time.Minute
	DefaultTxTimeout = 5 * time.Second
)

type CallbackOptions struct {
	Secret    string
	// server key Midtrans, dipakai untuk verify signature_key notifikasi
	MidtransServerKey string
	MaxSkew   time.Duration
	TxTimeout time.Duration
	Attempts  int
}

// PaymentService memproses callback pembayaran: verifikasi, lalu satu transaksi
// class + enrollment + payment.
type PaymentService struct {
	DB     *gorm.DB
	Events *GatewayEventRecorder
	Mailer email.Enqueuer

	opts     CallbackOptions
	validate *validator.Validate
	now      func() time.Time
}

func NewPaymentService(db *gorm.DB, mailer email.Enqueuer, opts CallbackOptions) *PaymentService {
	if opts.MaxSkew <= 0 {
		opts.MaxSkew = DefaultMaxSkew
	}
	if opts.TxTimeout <= 0 {
		opts.TxTimeout = DefaultTxTimeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = database.DefaultTxAttempts
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PaymentService{
		DB:       db,
		Events:   NewGatewayEventRecorder(db),
		Mailer:   mailer,
		opts:     opts,
		validate: v,
		now:      time.Now,
	}
}

// IdempotencyKey = hex(sha256("userId_classId_paymentId")).
func IdempotencyKey(userID, classID, paymentID string) string {
	sum := sha256.Sum256([]byte(userID + "_" + classID + "_" + paymentID))
	return hex.EncodeToString(sum[:])
}

// UnverifiedSuffix dipakai sebagai external id event yang gagal verifikasi,
// supaya body palsu tidak menimpa event asli dengan paymentId yang sama.
const UnverifiedSuffix = ":unverified"

func (s *PaymentService) ProcessCallback(ctx context.Context, raw []byte) (*dto.CallbackResult, error) {
	var req dto.PaymentCallbackRequest
	if err := sonic.Unmarshal(raw, &req); err != nil {
		return nil, errInvalidPayload("body must be a JSON object")
	}
	req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, errInvalidPayload(validationDetails(err))
	}

	if err := s.verify(raw, &req); err != nil {
		ev := s.recordEvent(ctx, raw, &req, req.PaymentID+UnverifiedSuffix)
		s.finishEvent(ctx, ev, err)
		return nil, err
	}

	ev := s.recordEvent(ctx, raw, &req, req.PaymentID)
	res, err := s.enroll(ctx, &req)
	s.finishEvent(ctx, ev, err)
	return res, err
}

func (s *PaymentService) finishEvent(ctx context.Context, ev *model.PaymentGatewayEventModel, err error) {
	if ev == nil {
		return
	}
	code := ""
	var pe *PaymentError
	if errors.As(err, &pe) {
		code = pe.Code
	}
	if ferr := s.Events.Finish(context.WithoutCancel(ctx), ev.GatewayEventID, code); ferr != nil {
		applog.Warn("gateway event finish failed", "event_id", ev.GatewayEventID.String(), "error", ferr.Error())
	}
}

// verify: signature dulu, baru jarak timestamp.
func (s *PaymentService) verify(raw []byte, req *dto.PaymentCallbackRequest) error {
	if err := VerifySignature(s.opts.Secret, raw, req.Timestamp, req.Signature); err != nil {
		if errors.Is(err, ErrMissingSecret) {
			applog.Error("payment webhook secret missing", err)
		} else {
			applog.Warn("payment signature rejected", "payment_id", req.PaymentID)
		}
		return errInvalidSignature()
	}

	skew := s.now().UnixMilli() - req.Timestamp
	if skew < 0 {
		skew = -skew
	}
	if skew > s.opts.MaxSkew.Milliseconds() {
		return errInvalidTimestamp()
	}
	return nil
}

// enroll menjalankan transaksi class + enrollment + payment untuk pembayaran
// yang sudah terverifikasi (webhook internal maupun notifikasi Midtrans).
func (s *PaymentService) enroll(ctx context.Context, req *dto.PaymentCallbackRequest) (*dto.CallbackResult, error) {
	// jumlah dengan >2 desimal tidak mungkin sama dengan harga
	amountCents, err := helper.ToCents(req.Amount)
	if err != nil {
		amountCents = -1
	}
	key := IdempotencyKey(req.UserID, req.ExternalID, req.PaymentID)

	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var (
		result   dto.CallbackResult
		cls      classModel.ClassModel
		usr      userModel.UserModel
		replayed bool
	)
	err = database.WithTxRetry(txCtx, s.DB, s.opts.Attempts, func(tx *gorm.DB) error {
		var c classModel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("class_id = ?", req.ExternalID).Take(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errClassNotFound()
			}
			return err
		}

		var u userModel.UserModel
		if err := tx.Where("id = ?", req.UserID).Take(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound()
			}
			return err
		}

		var existing model.PaymentModel
		err := tx.Where("payment_id = ?", req.PaymentID).Take(&existing).Error
		switch {
		case err == nil:
			if existing.PaymentIdempotencyKey != key {
				return errDuplicatePayment()
			}
			cls, usr, replayed = c, u, true
			result = dto.CallbackResult{
				TransactionID: existing.PaymentID,
				EnrollmentID:  existing.PaymentEnrollmentID,
				ClassDetails:  classDTO.FromModel(&c, false),
				Amount:        helper.CentsToAmount(existing.PaymentAmountCents),
				Replayed:      true,
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if c.IsFull() {
			return errClassFull()
		}

		var active int64
		if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
			Where("enrollment_user_id = ? AND enrollment_class_id = ? AND enrollment_status = ?",
				req.UserID, req.ExternalID, enrollmentModel.EnrollmentStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 || c.HasStudent(req.UserID) {
			return errAlreadyEnrolled()
		}

		if amountCents != c.ClassPriceCents {
			return errInvalidAmount(helper.CentsToAmount(c.ClassPriceCents), req.Amount)
		}

		now := s.now()
		students := c.WithStudent(req.UserID)
		upd := tx.Model(&classModel.ClassModel{}).
			Where("class_id = ? AND class_version = ? AND class_enrolled < class_capacity", c.ClassID, c.ClassVersion).
			Updates(map[string]any{
				"class_enrolled":          len(students),
				"class_enrolled_students": datatypes.JSONSlice[string](students),
				"class_version":           c.ClassVersion + 1,
				"class_updated_at":        now,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return database.ErrTxConflict
		}

		enr := enrollmentModel.EnrollmentModel{
			EnrollmentID:          key,
			EnrollmentUserID:      req.UserID,
			EnrollmentClassID:     c.ClassID,
			EnrollmentPaymentID:   req.PaymentID,
			EnrollmentAmountCents: amountCents,
			EnrollmentStatus:      enrollmentModel.EnrollmentStatusActive,
			EnrollmentEnrolledAt:  now,
		}
		if err := tx.Create(&enr).Error; err != nil {
			return err
		}

		details, err := maskedJSON(req.TransactionDetails)
		if err != nil {
			return err
		}
		pay := model.PaymentModel{
			PaymentID:                 req.PaymentID,
			PaymentUserID:             req.UserID,
			PaymentClassID:            c.ClassID,
			PaymentStudioID:           c.ClassStudioID,
			PaymentAmountCents:        amountCents,
			PaymentMethod:             req.PaymentMethod,
			PaymentStatus:             model.PaymentStatusCompleted,
			PaymentTransactionDetails: details,
			PaymentIdempotencyKey:     key,
			PaymentEnrollmentID:       key,
			PaymentProcessedAt:        now,
		}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		c.ClassEnrolled = len(students)
		c.ClassEnrolledStudents = students
		c.ClassVersion++
		cls, usr, replayed = c, u, false
		result = dto.CallbackResult{
			TransactionID: pay.PaymentID,
			EnrollmentID:  enr.EnrollmentID,
			ClassDetails:  classDTO.FromModel(&c, false),
			Amount:        helper.CentsToAmount(amountCents),
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(txCtx, err, req)
	}

	if replayed {
		applog.Info("payment callback replayed", "payment_id", req.PaymentID, "class_id", req.ExternalID)
		return &result, nil
	}
	applog.Info("payment processed",
		"payment_id", req.PaymentID,
		"class_id", req.ExternalID,
		"user_id", req.UserID,
		"amount", helper.FormatCents(amountCents),
	)
	s.notify(&usr, &cls, req, amountCents)
	return &result, nil
}

func (s *PaymentService) classify(txCtx context.Context, err error, req *dto.PaymentCallbackRequest) error {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(txCtx.Err(), context.DeadlineExceeded) {
		applog.Warn("payment transaction timed out", "payment_id", req.PaymentID)
		return errTimeout(err)
	}
	if errors.Is(err, database.ErrTxRetriesExhausted) {
		applog.Warn("payment transaction kept conflicting", "payment_id", req.PaymentID)
		return errTimeout(err)
	}
	errorID := applog.NewCorrelationID()
	wrapped := errors.WithStack(err)
	applog.Error("payment transaction failed", wrapped,
		"error_id", errorID,
		"payment_id", req.PaymentID,
		"class_id", req.ExternalID,
	)
	return errTransactionFailed(errorID, wrapped)
}

// notify: best effort, antrean tidak pernah menahan response.
func (s *PaymentService) notify(u *userModel.UserModel, c *classModel.ClassModel, req *dto.PaymentCallbackRequest, amountCents int64) {
	if s.Mailer == nil || u.Email == "" {
		return
	}
	to := mail.Address{Name: u.UserName, Address: u.Email}
	data := email.TemplateData{
		ClassName: c.ClassName,
		Amount:    helper.FormatCents(amountCents),
		PaymentID: req.PaymentID,
	}

	msgs := make([]email.Message, 0, 2)
	for _, tpl := range []email.TemplateName{email.TplPaymentConfirmation, email.TplClassEnrollment} {
		m, err := email.Render(tpl, to, data)
		if err != nil {
			applog.Error("render email failed", err, "template", string(tpl))
			continue
		}
		msgs = append(msgs, m)
	}
	if n := s.Mailer.Enqueue(msgs...); n < len(msgs) {
		applog.Warn("email queue full, notifications dropped", "payment_id", req.PaymentID, "dropped", len(msgs)-n)
	}
}

func (s *PaymentService) recordEvent(ctx context.Context, raw []byte, req *dto.PaymentCallbackRequest, externalID string) *model.PaymentGatewayEventModel {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil
	}
	ev, err := s.Events.Record(ctx, GatewayEventInput{
		Provider:   model.GatewayProviderWebhook,
		ExternalID: externalID,
		ClassID:    req.ExternalID,
		UserID:     req.UserID,
		Payload:    fields,
		Signature:  req.Signature,
	})
	if err != nil {
		applog.Warn("gateway event not recorded", "payment_id", req.PaymentID, "error", err.Error())
		return nil
	}
	return ev
}

func validationDetails(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return out
	}
	out["body"] = err.Error()
	return out
}
