package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/cashsession"
	"github.com/mkadlec/salonpos/internal/cashsession/dto"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type cashSessionUseCase struct {
	repo   cashsession.Repository
	logger logger.ZapLogger
}

func NewCashSessionUseCase(repo cashsession.Repository, log logger.ZapLogger) cashsession.UseCase {
	return &cashSessionUseCase{repo: repo, logger: log}
}

func (uc *cashSessionUseCase) Open(ctx context.Context, input *dto.OpenSessionInput) (*model.CashSession, error) {
	if input.CashierID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if input.OpeningBalance.IsNegative() {
		return nil, errors.New("opening balance must not be negative")
	}

	open, err := uc.repo.FindOpenByCashier(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, fmt.Errorf("%w: cashier %s already has an open session", apperr.ErrConflict, input.CashierID)
	}

	session := &model.CashSession{
		ID:             uuid.New().String(),
		CashierID:      input.CashierID,
		OpeningBalance: input.OpeningBalance,
		StartedAt:      time.Now(),
		Status:         model.CashSessionOpen,
	}
	if err := uc.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	desc := "drawer opened"
	movement := &model.CashMovement{
		ID:            uuid.New().String(),
		CashSessionID: session.ID,
		Type:          model.CashMovementOpening,
		Amount:        input.OpeningBalance,
		Description:   &desc,
		CreatedAt:     session.StartedAt,
	}
	if err := uc.repo.InsertMovement(ctx, movement); err != nil {
		return nil, err
	}

	uc.logger.Info("cash session opened",
		zap.String("session_id", session.ID),
		zap.String("cashier_id", session.CashierID),
		zap.String("opening_balance", session.OpeningBalance.String()))
	return session, nil
}

func (uc *cashSessionUseCase) Close(ctx context.Context, input *dto.CloseSessionInput) (*model.CashSession, error) {
	session, err := uc.repo.FindSessionByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, input.SessionID)
	}
	if session.Status != model.CashSessionOpen {
		return nil, fmt.Errorf("%w: session %s already closed", apperr.ErrConflict, session.ID)
	}
	if input.CashierID != "" && session.CashierID != input.CashierID {
		return nil, fmt.Errorf("%w: session belongs to another cashier", apperr.ErrConflict)
	}

	// the opening movement already carries the opening balance, so the sum
	// of movements alone is the expected drawer content
	expected, err := uc.repo.SumMovements(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	difference := input.CountedBalance.Sub(expected)
	now := time.Now()

	session.ClosingBalance = &input.CountedBalance
	session.ExpectedBalance = &expected
	session.Difference = &difference
	session.EndedAt = &now
	session.Status = model.CashSessionClosed

	if err := uc.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	desc := "drawer closed"
	movement := &model.CashMovement{
		ID:            uuid.New().String(),
		CashSessionID: session.ID,
		Type:          model.CashMovementClosing,
		Amount:        decimal.Zero,
		Description:   &desc,
		CreatedAt:     now,
	}
	if err := uc.repo.InsertMovement(ctx, movement); err != nil {
		uc.logger.Warn("failed to record closing movement", zap.String("session_id", session.ID), zap.Error(err))
	}

	uc.logger.Info("cash session closed",
		zap.String("session_id", session.ID),
		zap.String("expected", expected.String()),
		zap.String("counted", input.CountedBalance.String()),
		zap.String("difference", difference.String()))
	return session, nil
}

func (uc *cashSessionUseCase) Get(ctx context.Context, id string) (*dto.SessionDetail, error) {
	session, err := uc.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, id)
	}
	movements, err := uc.repo.ListMovements(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SessionDetail{Session: session, Movements: movements}, nil
}

func (uc *cashSessionUseCase) Current(ctx context.Context, cashierID string) (*model.CashSession, error) {
	if cashierID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	session, err := uc.repo.FindOpenByCashier(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no open session for cashier %s", apperr.ErrNotFound, cashierID)
	}
	return session, nil
}

func (uc *cashSessionUseCase) List(ctx context.Context, cashierID string, page, pageSize int) ([]model.CashSession, int, error) {
	return uc.repo.ListSessions(ctx, cashierID, page, pageSize)
}

func (uc *cashSessionUseCase) RecordMovement(ctx context.Context, input *dto.RecordMovementInput) (*model.CashMovement, error) {
	session, err := uc.repo.FindSessionByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, input.SessionID)
	}
	if session.Status != model.CashSessionOpen {
		return nil, fmt.Errorf("%w: session %s is closed", apperr.ErrConflict, session.ID)
	}
	if input.Type != model.CashMovementAdjustment && input.Type != model.CashMovementRefund {
		return nil, fmt.Errorf("movement type %q cannot be recorded manually", input.Type)
	}
	if input.Amount.IsZero() {
		return nil, errors.New("movement amount must not be zero")
	}

	// refunds leave the drawer: store them negative whichever sign the
	// operator typed, so the close arithmetic cannot be inflated
	amount := input.Amount
	if input.Type == model.CashMovementRefund {
		amount = amount.Abs().Neg()
	}

	movement := &model.CashMovement{
		ID:            uuid.New().String(),
		CashSessionID: session.ID,
		Type:          input.Type,
		Amount:        amount,
		CreatedAt:     time.Now(),
	}
	if input.Description != "" {
		movement.Description = &input.Description
	}
	if err := uc.repo.InsertMovement(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

func (uc *cashSessionUseCase) RecordSale(ctx context.Context, cashierID string, order *model.Order) error {
	if order.PaymentMethod != model.PaymentCash {
		return nil
	}

	session, err := uc.repo.FindOpenByCashier(ctx, cashierID)
	if err != nil {
		return err
	}
	if session == nil {
		uc.logger.Warn("cash sale with no open drawer session",
			zap.String("cashier_id", cashierID),
			zap.String("order_number", order.OrderNumber))
		return nil
	}

	desc := fmt.Sprintf("sale %s", order.OrderNumber)
	movement := &model.CashMovement{
		ID:            uuid.New().String(),
		CashSessionID: session.ID,
		Type:          model.CashMovementSale,
		Amount:        order.Total,
		Description:   &desc,
		OrderID:       &order.ID,
		CreatedAt:     time.Now(),
	}
	return uc.repo.InsertMovement(ctx, movement)
}
