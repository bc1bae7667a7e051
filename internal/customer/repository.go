package customer

import (
	"context"

	"github.com/mkadlec/salonpos/internal/customer/dto"
	"github.com/mkadlec/salonpos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindAll(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	Delete(ctx context.Context, id string) error
}
