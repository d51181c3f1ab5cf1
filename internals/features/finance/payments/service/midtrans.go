package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"danceflow_backend/internals/configs"
	"danceflow_backend/internals/features/finance/payments/dto"
	"danceflow_backend/internals/features/finance/payments/model"
	classModel "danceflow_backend/internals/features/studio/classes/model"
	enrollmentModel "danceflow_backend/internals/features/studio/enrollments/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

/* =========================================================
   Midtrans Client
========================================================= */

// SnapCreator = bagian snap.Client yang dipakai checkout (bisa diganti di test).
type SnapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// InitMidtrans mengembalikan nil kalau server key kosong (checkout dimatikan).
func InitMidtrans(cfg configs.MidtransConfig) SnapCreator {
	if cfg.ServerKey == "" {
		return nil
	}
	var c snap.Client
	if cfg.UseProd {
		c.New(cfg.ServerKey, midtrans.Production)
	} else {
		c.New(cfg.ServerKey, midtrans.Sandbox)
	}
	return &c
}

var (
	ErrGatewayDisabled   = errors.New("payment gateway is not configured")
	ErrCheckoutNoClass   = errors.New("class not found")
	ErrCheckoutNoUser    = errors.New("user not found")
	ErrCheckoutFull      = errors.New("class is full")
	ErrCheckoutEnrolled  = errors.New("already enrolled in this class")
	ErrCheckoutFraction  = errors.New("class price cannot be charged in whole currency units")
	ErrCheckoutGatewayUp = errors.New("payment gateway rejected the transaction")
)

type CheckoutService struct {
	DB     *gorm.DB
	Snap   SnapCreator
	Events *GatewayEventRecorder

	suffix func() string
}

func NewCheckoutService(db *gorm.DB, snapClient SnapCreator) *CheckoutService {
	return &CheckoutService{
		DB:     db,
		Snap:   snapClient,
		Events: NewGatewayEventRecorder(db),
		suffix: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
}

// OrderID: class_<classId>_user_<userId>_<suffix>
func OrderID(classID, userID, suffix string) string {
	return "class_" + classID + "_user_" + userID + "_" + suffix
}

// Checkout membuat transaksi Snap; enrollment baru terjadi saat callback masuk.
func (s *CheckoutService) Checkout(ctx context.Context, userID, classID string) (*dto.CheckoutResponse, error) {
	if s.Snap == nil {
		return nil, ErrGatewayDisabled
	}

	db := s.DB.WithContext(ctx)
	var cls classModel.ClassModel
	if err := db.Where("class_id = ?", classID).Take(&cls).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckoutNoClass
		}
		return nil, err
	}
	var usr userModel.UserModel
	if err := db.Where("id = ?", userID).Take(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckoutNoUser
		}
		return nil, err
	}
	if cls.IsFull() {
		return nil, ErrCheckoutFull
	}
	var active int64
	if err := db.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_user_id = ? AND enrollment_class_id = ? AND enrollment_status = ?",
			userID, classID, enrollmentModel.EnrollmentStatusActive).
		Count(&active).Error; err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrCheckoutEnrolled
	}
	if cls.ClassPriceCents%100 != 0 {
		return nil, ErrCheckoutFraction
	}

	orderID := OrderID(classID, userID, s.suffix())
	gross := cls.ClassPriceCents / 100
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: usr.UserName,
			Email: usr.Email,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    cls.ClassID,
			Name:  truncate(cls.ClassName, 50),
			Price: gross,
			Qty:   1,
		}},
	}

	resp, gerr := s.Snap.CreateTransaction(req)
	if gerr != nil {
		applog.Error("midtrans create transaction failed", gerr, "order_id", orderID)
		return nil, errors.Wrap(ErrCheckoutGatewayUp, gerr.GetMessage())
	}

	if _, err := s.Events.Record(ctx, GatewayEventInput{
		Provider:   model.GatewayProviderMidtrans,
		ExternalID: orderID,
		ClassID:    classID,
		UserID:     userID,
		Status:     model.GatewayEventStatusReceived,
		Payload: map[string]any{
			"order_id":     orderID,
			"gross_amount": gross,
			"redirect_url": resp.RedirectURL,
		},
	}); err != nil {
		applog.Warn("checkout event not recorded", "order_id", orderID, "error", err.Error())
	}

	return &dto.CheckoutResponse{
		OrderID:     orderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		Amount:      helper.CentsToAmount(cls.ClassPriceCents),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
