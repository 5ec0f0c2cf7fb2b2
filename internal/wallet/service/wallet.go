package service

import (
	"context"
	"errors"

	walleterrors "aerovoyage/internal/wallet/errors"
	"aerovoyage/internal/wallet/repository"
	"aerovoyage/pkg/config"
	apperrors "aerovoyage/pkg/errors"
	"aerovoyage/pkg/model"
)

type WalletService interface {
	Get(ctx context.Context, userID string) (*model.Wallet, error)
	TopUp(ctx context.Context, userID string, amount int64) (*model.Wallet, error)
	// Debit charges the wallet. It is transaction-aware: callers inside a
	// mongo session pass the session context through unchanged.
	Debit(ctx context.Context, userID string, amount int64) error
	Credit(ctx context.Context, userID string, amount int64) error
}

type walletService struct {
	repo repository.WalletRepository
	cfg  *config.Config
}

func NewWalletService(repo repository.WalletRepository, cfg *config.Config) WalletService {
	return &walletService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *walletService) Get(ctx context.Context, userID string) (*model.Wallet, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	wallet, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, walleterrors.ErrNotFound) {
			// An account that never topped up simply has a zero balance.
			return &model.Wallet{UserID: userID, Balance: 0}, nil
		}
		s.cfg.Log.Error("Failed to get wallet",
			"user_id", userID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve wallet", err)
	}

	return wallet, nil
}

func (s *walletService) TopUp(ctx context.Context, userID string, amount int64) (*model.Wallet, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	if amount <= 0 {
		return nil, apperrors.InvalidInput("Top-up amount must be positive")
	}

	if err := s.repo.Credit(ctx, userID, amount); err != nil {
		s.cfg.Log.Error("Failed to top up wallet",
			"user_id", userID,
			"amount", amount,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to top up wallet", err)
	}

	wallet, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to read wallet after top-up",
			"user_id", userID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve wallet", err)
	}

	s.cfg.Log.Info("Wallet topped up",
		"user_id", userID,
		"amount", amount,
		"balance", wallet.Balance,
	)
	return wallet, nil
}

func (s *walletService) Debit(ctx context.Context, userID string, amount int64) error {
	if userID == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}
	if amount <= 0 {
		return apperrors.InvalidInput("Debit amount must be positive")
	}

	if err := s.repo.Debit(ctx, userID, amount); err != nil {
		if errors.Is(err, walleterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Wallet", userID)
		}
		if errors.Is(err, walleterrors.ErrInsufficientFunds) {
			return apperrors.Conflict("Insufficient wallet balance")
		}
		s.cfg.Log.Error("Failed to debit wallet",
			"user_id", userID,
			"amount", amount,
			"error", err,
		)
		return apperrors.Internal("Failed to debit wallet", err)
	}

	return nil
}

func (s *walletService) Credit(ctx context.Context, userID string, amount int64) error {
	if userID == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}
	if amount <= 0 {
		return apperrors.InvalidInput("Credit amount must be positive")
	}

	if err := s.repo.Credit(ctx, userID, amount); err != nil {
		s.cfg.Log.Error("Failed to credit wallet",
			"user_id", userID,
			"amount", amount,
			"error", err,
		)
		return apperrors.Internal("Failed to credit wallet", err)
	}

	return nil
}
