package service

import (
	"context"
	"errors"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/config"
	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"go.uber.org/zap"
)

const statementTxLimit = 50

// LedgerService owns every mutation of a customer's coin balance. Nothing
// else writes coins_balance; debit and credit always append a
// CoinTransaction in the same database transaction as the balance change.
type LedgerService interface {
	Debit(ctx context.Context, cmd DebitCoinsCommand) (*model.CoinTransaction, error)
	Credit(ctx context.Context, cmd CreditCoinsCommand) (*model.CoinTransaction, error)
	ResetIfDue(ctx context.Context, customerID int64) error
	Statement(ctx context.Context, customerID int64) (*CoinStatement, error)
}

type ledger struct {
	customerRepo repository.CustomerRepository
	coinTxRepo   repository.CoinTransactionRepository
	txManager    repository.TxManager
	maxCoins     int64
	logger       *zap.Logger
}

func NewLedgerService(customerRepo repository.CustomerRepository, coinTxRepo repository.CoinTransactionRepository,
	txManager repository.TxManager, cfg *config.Config, logger *zap.Logger) LedgerService {
	return &ledger{customerRepo: customerRepo, coinTxRepo: coinTxRepo, txManager: txManager,
		maxCoins: cfg.Coins.MaxCoins, logger: logger}
}

// Debit locks the customer row, re-reads the balance under the lock, and
// fails without side effects when the balance is short. Callers invoke it
// inside a TxManager transaction shared with the booking write.
func (l *ledger) Debit(ctx context.Context, cmd DebitCoinsCommand) (*model.CoinTransaction, error) {
	customer, err := l.customerRepo.GetByIDForUpdate(ctx, cmd.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, NewServiceError(constants.ErrCodeCustomerNotFound, ErrCustomerNotFound)
		}
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	if customer.CoinsBalance < cmd.Amount {
		l.logger.Info("Debit rejected, balance too low",
			zap.Int64("customerID", cmd.CustomerID),
			zap.Int64("available", customer.CoinsBalance),
			zap.Int64("required", cmd.Amount))

		return nil, NewServiceError(constants.ErrCodeInsufficientCoins, InsufficientBalanceError{
			Available: customer.CoinsBalance,
			Required:  cmd.Amount,
			Shortfall: cmd.Amount - customer.CoinsBalance,
		})
	}

	remaining := customer.CoinsBalance - cmd.Amount

	if err := l.customerRepo.UpdateBalance(ctx, cmd.CustomerID, remaining); err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	coinTx := &model.CoinTransaction{
		CustomerID:      cmd.CustomerID,
		Amount:          -cmd.Amount,
		TransactionType: model.CoinTxTypeDebit,
		BalanceAfter:    remaining,
		BookingID:       cmd.BookingID,
		Description:     cmd.Description,
		CreatedAt:       time.Now(),
	}

	if err := l.coinTxRepo.Create(ctx, coinTx); err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	l.logger.Info("Coins debited",
		zap.Int64("customerID", cmd.CustomerID),
		zap.Int64("amount", cmd.Amount),
		zap.Int64("remaining", remaining))

	return coinTx, nil
}

func (l *ledger) Credit(ctx context.Context, cmd CreditCoinsCommand) (*model.CoinTransaction, error) {
	customer, err := l.customerRepo.GetByIDForUpdate(ctx, cmd.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, NewServiceError(constants.ErrCodeCustomerNotFound, ErrCustomerNotFound)
		}
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	balance := customer.CoinsBalance + cmd.Amount

	if err := l.customerRepo.UpdateBalance(ctx, cmd.CustomerID, balance); err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	coinTx := &model.CoinTransaction{
		CustomerID:      cmd.CustomerID,
		Amount:          cmd.Amount,
		TransactionType: model.CoinTxTypeCredit,
		BalanceAfter:    balance,
		BookingID:       cmd.BookingID,
		Description:     cmd.Description,
		CreatedAt:       time.Now(),
	}

	if err := l.coinTxRepo.Create(ctx, coinTx); err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	l.logger.Info("Coins credited",
		zap.Int64("customerID", cmd.CustomerID),
		zap.Int64("amount", cmd.Amount))

	return coinTx, nil
}

// ResetIfDue resets the balance to the configured maximum when the last
// reset happened in a different calendar month. Runs before any balance
// check that gates a booking.
func (l *ledger) ResetIfDue(ctx context.Context, customerID int64) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		customer, err := l.customerRepo.GetByIDForUpdate(ctx, customerID)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return NewServiceError(constants.ErrCodeCustomerNotFound, ErrCustomerNotFound)
			}
			return NewServiceError(ErrCodeDatabase, err)
		}

		now := time.Now()
		if sameCalendarMonth(customer.CoinsLastReset, now) {
			return nil
		}

		if err := l.customerRepo.ResetBalance(ctx, customerID, l.maxCoins, now); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		coinTx := &model.CoinTransaction{
			CustomerID:      customerID,
			Amount:          l.maxCoins - customer.CoinsBalance,
			TransactionType: model.CoinTxTypeReset,
			BalanceAfter:    l.maxCoins,
			Description:     "monthly coin reset",
			CreatedAt:       now,
		}

		if err := l.coinTxRepo.Create(ctx, coinTx); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		l.logger.Info("Monthly coin reset applied",
			zap.Int64("customerID", customerID),
			zap.Int64("balance", l.maxCoins))

		return nil
	})
}

func (l *ledger) Statement(ctx context.Context, customerID int64) (*CoinStatement, error) {
	customer, err := l.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, NewServiceError(constants.ErrCodeCustomerNotFound, ErrCustomerNotFound)
		}
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	transactions, err := l.coinTxRepo.ListByCustomerID(ctx, customerID, statementTxLimit)
	if err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return &CoinStatement{
		Balance:      customer.CoinsBalance,
		LastReset:    customer.CoinsLastReset.Format(time.RFC3339),
		MaxCoins:     l.maxCoins,
		Transactions: transactions,
	}, nil
}

func sameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
