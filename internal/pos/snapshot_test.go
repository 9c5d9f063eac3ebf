package pos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/govindalabs/dairypos/internal/domain"
)

func newTestBackup(db *gorm.DB) *BackupService {
	return NewBackupService(db,
		NewGormProductRepository(db),
		NewGormCustomerRepository(db),
		NewGormBillRepository(db),
		NewGormShopRepository(db))
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		snap    StateSnapshot
		wantErr string
	}{
		{"empty snapshot ok", StateSnapshot{}, ""},
		{"duplicate product names", StateSnapshot{
			Products: []domain.Product{{Name: "Milk", Price: 1}, {Name: "Milk", Price: 2}},
		}, "duplicate product name"},
		{"empty product name", StateSnapshot{
			Products: []domain.Product{{Name: "  "}},
		}, "empty name"},
		{"unknown unit type", StateSnapshot{
			Products: []domain.Product{{Name: "Milk", UnitType: "Gallon"}},
		}, "unknown unit type"},
		{"negative stock", StateSnapshot{
			Products: []domain.Product{{Name: "Milk", Qty: -1}},
		}, "negative stock"},
		{"duplicate phones", StateSnapshot{
			Customers: []domain.Customer{{Name: "A", Phone: "1"}, {Name: "B", Phone: "1"}},
		}, "duplicate customer phone"},
		{"empty invoice number", StateSnapshot{
			Bills: []domain.Bill{{}},
		}, "empty invoice number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBackup(db)
	ctx := context.Background()
	const owner = int64(9)

	require.NoError(t, db.Create(&domain.Product{
		ID: 1, OwnerID: owner, Name: "Fresh Milk",
		UnitType: domain.UnitTypeLitre, UnitPrice: 60, Qty: 80,
	}).Error)
	require.NoError(t, db.Create(&domain.Customer{
		ID: 2, OwnerID: owner, Name: "Asha", Phone: "111",
	}).Error)
	require.NoError(t, db.Create(&domain.Bill{
		ID: 3, OwnerID: owner, InvoiceNo: "GD-2608-0001", Total: 60,
		Items: []domain.BillItem{{ID: 4, BillID: 3, OwnerID: owner, Name: "Fresh Milk", Total: 60}},
	}).Error)

	snap, err := svc.Export(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Customers, 1)
	assert.Len(t, snap.Bills, 1)
	require.NotNil(t, snap.Shop)

	// restoring the snapshot over the same owner reproduces the state
	require.NoError(t, svc.Import(ctx, owner, snap))

	restored, err := svc.Export(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, restored.Products, 1)
	assert.Equal(t, "Fresh Milk", restored.Products[0].Name)
	assert.Len(t, restored.Bills, 1)
	require.Len(t, restored.Bills[0].Items, 1)
}

func TestBackupImportRejectsInvalidSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := newTestBackup(db)
	const owner = int64(9)

	require.NoError(t, db.Create(&domain.Product{
		ID: 1, OwnerID: owner, Name: "Keep Me", Price: 10, Qty: 1,
	}).Error)

	err := svc.Import(context.Background(), owner, &StateSnapshot{
		Products: []domain.Product{{Name: "Bad", Qty: -5}},
	})
	require.Error(t, err)

	// the invalid import left the existing state alone
	var count int64
	db.Model(&domain.Product{}).Where("owner_id = ?", owner).Count(&count)
	assert.EqualValues(t, 1, count)
}
