package service

import (
	"fmt"

	"github.com/hance08/treasury/internal/ledger"
)

type MoneyService struct {
	lg Ledger
}

func NewMoneyService(lg Ledger) *MoneyService {
	return &MoneyService{lg: lg}
}

func (ms *MoneyService) Transfer(authorID, sourceID, destinationID string, amount int64) error {
	accounts, err := resolveAs(ms.lg, authorID, sourceID, destinationID)
	if err != nil {
		return err
	}
	return ms.lg.Transfer(accounts[0], accounts[1], accounts[2], amount)
}

// CanTransfer reports whether a transfer would succeed on balances and
// freeze state alone, without checking who asks.
func (ms *MoneyService) CanTransfer(sourceID, destinationID string, amount int64) (bool, error) {
	accounts, err := resolve(ms.lg, sourceID, destinationID)
	if err != nil {
		return false, err
	}
	return ms.lg.CanTransfer(accounts[0], accounts[1], amount), nil
}

// Mint adds amount to targetID's balance, growing the money supply.
func (ms *MoneyService) Mint(authorID, targetID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("mint amount must be positive: %w", ledger.ErrInvalidAmount)
	}
	return ms.addBalance(authorID, targetID, amount)
}

// Burn removes amount from targetID's balance. It fails rather than take a
// balance below zero.
func (ms *MoneyService) Burn(authorID, targetID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("burn amount must be positive: %w", ledger.ErrInvalidAmount)
	}
	return ms.addBalance(authorID, targetID, -amount)
}

func (ms *MoneyService) addBalance(authorID, targetID string, amount int64) error {
	accounts, err := resolveAs(ms.lg, authorID, targetID)
	if err != nil {
		return err
	}
	return ms.lg.AddBalance(accounts[0], accounts[1], amount)
}

func (ms *MoneyService) Supply() int64 {
	return ms.lg.MoneySupply()
}
