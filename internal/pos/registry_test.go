package pos

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStock struct{}

func (fakeStock) AvailableStock(context.Context, string) (int, error) { return 0, nil }

func TestRegistryReturnsSameCartPerCashier(t *testing.T) {
	reg := NewRegistry(fakeStock{})

	a := reg.Get("cashier-1")
	b := reg.Get("cashier-1")
	other := reg.Get("cashier-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)

	reg.Drop("cashier-1")
	assert.NotSame(t, a, reg.Get("cashier-1"))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry(fakeStock{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Get("cashier-1")
			reg.Get("cashier-2")
			reg.Drop("cashier-2")
		}()
	}
	wg.Wait()
}
