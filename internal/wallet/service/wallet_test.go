package service

import (
	"context"
	"testing"
	"time"

	walleterrors "aerovoyage/internal/wallet/errors"
	"aerovoyage/pkg/config"
	apperrors "aerovoyage/pkg/errors"
	"aerovoyage/pkg/logger"
	"aerovoyage/pkg/model"
)

type mockWalletRepository struct {
	findByUserFunc func(ctx context.Context, userID string) (*model.Wallet, error)
	creditFunc     func(ctx context.Context, userID string, amount int64) error
	debitFunc      func(ctx context.Context, userID string, amount int64) error
}

func (m *mockWalletRepository) FindByUser(ctx context.Context, userID string) (*model.Wallet, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return nil, walleterrors.ErrNotFound
}

func (m *mockWalletRepository) Credit(ctx context.Context, userID string, amount int64) error {
	if m.creditFunc != nil {
		return m.creditFunc(ctx, userID, amount)
	}
	return nil
}

func (m *mockWalletRepository) Debit(ctx context.Context, userID string, amount int64) error {
	if m.debitFunc != nil {
		return m.debitFunc(ctx, userID, amount)
	}
	return nil
}

func newTestService(repo *mockWalletRepository) WalletService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewWalletService(repo, &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	})
}

func TestGet_UnknownUserHasZeroBalance(t *testing.T) {
	svc := newTestService(&mockWalletRepository{})

	wallet, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.UserID != "u1" || wallet.Balance != 0 {
		t.Errorf("expected empty wallet for new user, got %+v", wallet)
	}
}

func TestTopUp_RejectsBadAmounts(t *testing.T) {
	svc := newTestService(&mockWalletRepository{})

	for _, amount := range []int64{0, -5} {
		if _, err := svc.TopUp(context.Background(), "u1", amount); err == nil {
			t.Errorf("expected error for amount %d", amount)
		}
	}
}

func TestDebit_MapsRepositoryErrors(t *testing.T) {
	tests := []struct {
		name         string
		repoErr      error
		expectedCode string
	}{
		{"missing wallet", walleterrors.ErrNotFound, apperrors.CodeNotFound},
		{"insufficient funds", walleterrors.ErrInsufficientFunds, apperrors.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockWalletRepository{
				debitFunc: func(ctx context.Context, userID string, amount int64) error {
					return tt.repoErr
				},
			})

			err := svc.Debit(context.Background(), "u1", 100)
			appErr := apperrors.AsAppError(err)
			if appErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, appErr.Code)
			}
		})
	}
}

func TestDebit_Success(t *testing.T) {
	var debited int64
	svc := newTestService(&mockWalletRepository{
		debitFunc: func(ctx context.Context, userID string, amount int64) error {
			debited = amount
			return nil
		},
	})

	if err := svc.Debit(context.Background(), "u1", 220); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if debited != 220 {
		t.Errorf("expected debit of 220, got %d", debited)
	}
}
