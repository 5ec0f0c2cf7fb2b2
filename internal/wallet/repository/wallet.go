package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	walleterrors "aerovoyage/internal/wallet/errors"
	"aerovoyage/pkg/config"
	"aerovoyage/pkg/model"
)

const (
	CollectionName = "Wallets"
)

type mongoWalletRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type WalletRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Wallet, error)
	Credit(ctx context.Context, userID string, amount int64) error
	Debit(ctx context.Context, userID string, amount int64) error
}

func NewMongoWalletRepository(cfg *config.Config) WalletRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWalletRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoWalletRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoWalletRepository) FindByUser(ctx context.Context, userID string) (*model.Wallet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var wallet model.Wallet
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wallet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, walleterrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	return &wallet, nil
}

// Credit adds funds, creating the wallet on first top-up.
func (r *mongoWalletRepository) Credit(ctx context.Context, userID string, amount int64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$inc":         bson.M{"balance": amount},
		"$set":         bson.M{"updated_at": time.Now().UTC()},
		"$setOnInsert": bson.M{"user_id": userID},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	return nil
}

// Debit withdraws funds atomically. The balance guard lives in the filter so
// two concurrent debits can never take the balance negative.
func (r *mongoWalletRepository) Debit(ctx context.Context, userID string, amount int64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"balance": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"balance": -amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
		if err != nil {
			return fmt.Errorf("failed to check wallet existence: %w", err)
		}
		if count == 0 {
			return walleterrors.ErrNotFound
		}
		return walleterrors.ErrInsufficientFunds
	}

	return nil
}
