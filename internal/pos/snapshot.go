package pos

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/pkg/common"
)

// StateSnapshot is the owner's whole application state as one document:
// the backup/export format, and the payload of the one-time migration from
// a browser-local install to the hosted backend.
type StateSnapshot struct {
	Shop      *domain.ShopProfile `json:"shop"`
	Products  []domain.Product    `json:"products"`
	Customers []domain.Customer   `json:"customers"`
	Bills     []domain.Bill       `json:"bills"`
}

// BackupService exports and imports whole-owner state.
type BackupService struct {
	db        *gorm.DB
	products  ProductRepository
	customers CustomerRepository
	bills     BillRepository
	shops     ShopRepository
}

func NewBackupService(db *gorm.DB, products ProductRepository, customers CustomerRepository, bills BillRepository, shops ShopRepository) *BackupService {
	return &BackupService{db: db, products: products, customers: customers, bills: bills, shops: shops}
}

// Export collects the owner's full state.
func (s *BackupService) Export(ctx context.Context, owner int64) (*StateSnapshot, error) {
	shop, err := s.shops.Get(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "export shop")
	}
	products, err := s.products.List(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "export products")
	}
	customers, err := s.customers.List(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "export customers")
	}
	bills, err := s.bills.List(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "export bills")
	}
	return &StateSnapshot{Shop: shop, Products: products, Customers: customers, Bills: bills}, nil
}

// Validate checks a snapshot before import: product names and pricing modes,
// customer phone uniqueness. It returns the first violation found.
func (s *StateSnapshot) Validate() error {
	names := map[string]bool{}
	for _, p := range s.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return errors.New("snapshot: product with empty name")
		}
		if names[name] {
			return errors.Errorf("snapshot: duplicate product name %q", name)
		}
		names[name] = true
		if p.UnitType != "" && p.UnitType != domain.UnitTypeKg && p.UnitType != domain.UnitTypeLitre {
			return errors.Errorf("snapshot: product %q has unknown unit type %q", name, p.UnitType)
		}
		if p.Qty < 0 {
			return errors.Errorf("snapshot: product %q has negative stock", name)
		}
	}
	phones := map[string]bool{}
	for _, c := range s.Customers {
		if strings.TrimSpace(c.Name) == "" {
			return errors.New("snapshot: customer with empty name")
		}
		if c.Phone == "" {
			continue
		}
		if phones[c.Phone] {
			return errors.Errorf("snapshot: duplicate customer phone %q", c.Phone)
		}
		phones[c.Phone] = true
	}
	for _, b := range s.Bills {
		if b.InvoiceNo == "" {
			return errors.New("snapshot: bill with empty invoice number")
		}
	}
	return nil
}

// Import validates and replaces the owner's state wholesale. Unlike
// checkout persistence this is a real transaction: a failed import leaves
// the previous state intact.
func (s *BackupService) Import(ctx context.Context, owner int64, snap *StateSnapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&domain.BillItem{}, &domain.Bill{}, &domain.Customer{}, &domain.Product{},
		} {
			if err := tx.Where("owner_id = ?", owner).Delete(model).Error; err != nil {
				return err
			}
		}

		if snap.Shop != nil {
			shop := *snap.Shop
			shop.OwnerID = owner
			if err := tx.Where("owner_id = ?", owner).Delete(&domain.ShopProfile{}).Error; err != nil {
				return err
			}
			if shop.ID == 0 {
				shop.ID = common.UUIDint64()
			}
			if err := tx.Create(&shop).Error; err != nil {
				return err
			}
		}
		for i := range snap.Products {
			p := snap.Products[i]
			p.OwnerID = owner
			if p.ID == 0 {
				p.ID = common.UUIDint64()
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		for i := range snap.Customers {
			c := snap.Customers[i]
			c.OwnerID = owner
			if c.ID == 0 {
				c.ID = common.UUIDint64()
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		for i := range snap.Bills {
			b := snap.Bills[i]
			b.OwnerID = owner
			if b.ID == 0 {
				b.ID = common.UUIDint64()
			}
			for j := range b.Items {
				b.Items[j].BillID = b.ID
				b.Items[j].OwnerID = owner
				if b.Items[j].ID == 0 {
					b.Items[j].ID = common.UUIDint64()
				}
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "import snapshot")
	}

	zap.L().Info("state snapshot imported",
		zap.Int64("owner", owner),
		zap.Int("products", len(snap.Products)),
		zap.Int("customers", len(snap.Customers)),
		zap.Int("bills", len(snap.Bills)))
	return nil
}
