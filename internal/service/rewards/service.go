package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVoucher flags a QR payload that is not a valid voucher. The
// caller leaves the balance untouched and re-arms the scanner.
var ErrInvalidVoucher = errors.New("invalid voucher payload")

// Voucher is the JSON payload carried by a collection-point QR code.
type Voucher struct {
	Points int    `json:"pontos"`
	Hash   string `json:"hash"`
}

// Award summarizes a completed redemption.
type Award struct {
	Points     int    `json:"pontos"`
	NewBalance int    `json:"novoSaldo"`
	Hash       string `json:"hash"`
}

// ParseVoucher decodes a scanned QR payload. Anything that does not parse
// as a voucher with a positive point value and a hash is rejected.
func ParseVoucher(payload string) (Voucher, error) {
	var v Voucher
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &v); err != nil {
		return Voucher{}, fmt.Errorf("%w: %v", ErrInvalidVoucher, err)
	}
	if v.Points <= 0 || v.Hash == "" {
		return Voucher{}, fmt.Errorf("%w: missing pontos or hash", ErrInvalidVoucher)
	}
	return v, nil
}

// Service runs the QR redemption flow against a Ledger.
type Service struct {
	ledger Ledger
}

// NewService binds the redemption flow to a ledger client.
func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Redeem credits a scanned voucher: read balance, add, write the absolute
// new balance, then append the award to the history. The ledger has no
// atomic increment, so concurrent scans from the same account can race on
// the read-then-write; the remote service offers nothing stronger.
func (s *Service) Redeem(ctx context.Context, userID, payload string) (Award, error) {
	voucher, err := ParseVoucher(payload)
	if err != nil {
		return Award{}, err
	}

	current, err := s.ledger.Points(ctx)
	if err != nil {
		return Award{}, fmt.Errorf("fetch balance: %w", err)
	}

	newBalance := current + voucher.Points
	if err := s.ledger.SetPoints(ctx, newBalance); err != nil {
		return Award{}, fmt.Errorf("update balance: %w", err)
	}

	record := History{UserID: userID, Points: voucher.Points, ID: voucher.Hash}
	if err := s.ledger.AppendHistory(ctx, record); err != nil {
		// Balance is already written; history is best-effort and the award
		// stands. Surface the failure so the user can retry later.
		return Award{Points: voucher.Points, NewBalance: newBalance, Hash: voucher.Hash},
			fmt.Errorf("append history: %w", err)
	}

	return Award{Points: voucher.Points, NewBalance: newBalance, Hash: voucher.Hash}, nil
}
