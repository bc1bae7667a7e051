package customer

import (
	"context"

	"github.com/mkadlec/salonpos/internal/customer/dto"
	"github.com/mkadlec/salonpos/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id string, input *dto.CustomerInput) (*model.Customer, error)
	Get(ctx context.Context, id string) (*model.Customer, error)
	List(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	Delete(ctx context.Context, id string) error
}
