package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/customer"
	"github.com/mkadlec/salonpos/internal/customer/dto"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type customerUseCase struct {
	repo   customer.Repository
	logger logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{repo: repo, logger: log}
}

func (uc *customerUseCase) Create(ctx context.Context, input *dto.CustomerInput) (*model.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	cust := &model.Customer{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     input.Email,
		Phone:     input.Phone,
		Notes:     input.Notes,
	}
	if err := uc.repo.Create(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

func (uc *customerUseCase) Update(ctx context.Context, id string, input *dto.CustomerInput) (*model.Customer, error) {
	cust, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("%w: customer %s", apperr.ErrNotFound, id)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	cust.FirstName = strings.TrimSpace(input.FirstName)
	cust.LastName = strings.TrimSpace(input.LastName)
	cust.Email = input.Email
	cust.Phone = input.Phone
	cust.Notes = input.Notes
	cust.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

func (uc *customerUseCase) Get(ctx context.Context, id string) (*model.Customer, error) {
	cust, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("%w: customer %s", apperr.ErrNotFound, id)
	}
	return cust, nil
}

func (uc *customerUseCase) List(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *customerUseCase) Delete(ctx context.Context, id string) error {
	cust, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cust == nil {
		return fmt.Errorf("%w: customer %s", apperr.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

func validateInput(input *dto.CustomerInput) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return errors.New("last name is required")
	}
	if input.Email != nil && !strings.Contains(*input.Email, "@") {
		return fmt.Errorf("invalid email %q", *input.Email)
	}
	return nil
}
