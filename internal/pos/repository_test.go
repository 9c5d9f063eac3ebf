package pos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govindalabs/dairypos/internal/domain"
)

func TestProductNameUniquePerOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Product{
		OwnerID: 7, Name: "Fresh Milk", Price: 60, Qty: 10,
	}))

	// the schema itself rejects a duplicate name for the same owner
	err := repo.Create(ctx, &domain.Product{
		OwnerID: 7, Name: "Fresh Milk", Price: 70, Qty: 5,
	})
	require.Error(t, err)

	// another owner may reuse the name
	assert.NoError(t, repo.Create(ctx, &domain.Product{
		OwnerID: 8, Name: "Fresh Milk", Price: 60, Qty: 10,
	}))
}
