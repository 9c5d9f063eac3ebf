package pos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/pkg/common"
)

// ProductRepository handles catalog data access, always scoped by owner.
type ProductRepository interface {
	List(ctx context.Context, owner int64) ([]domain.Product, error)
	GetByID(ctx context.Context, owner, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, owner int64, name string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, owner, id int64) error

	// UpdateStock sets the absolute stock quantity of one product.
	UpdateStock(ctx context.Context, owner, id int64, qty float64) error
}

// CustomerRepository handles customer registry data access.
type CustomerRepository interface {
	List(ctx context.Context, owner int64) ([]domain.Customer, error)
	GetByID(ctx context.Context, owner, id int64) (*domain.Customer, error)

	// GetByPhone finds a customer by exact phone match. Empty phones never
	// match anything.
	GetByPhone(ctx context.Context, owner int64, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, owner, id int64) error
}

// BillRepository handles invoice persistence. Bills are created once with
// their items and never edited afterwards.
type BillRepository interface {
	List(ctx context.Context, owner int64) ([]domain.Bill, error)
	GetByID(ctx context.Context, owner, id int64) (*domain.Bill, error)
	GetByInvoiceNo(ctx context.Context, owner int64, invoiceNo string) (*domain.Bill, error)
	Count(ctx context.Context, owner int64) (int64, error)
	Create(ctx context.Context, bill *domain.Bill) error

	// ListPendingDue returns pending bills whose due date is on or before
	// the cutoff, for the reminder job.
	ListPendingDue(ctx context.Context, owner int64, cutoff time.Time) ([]domain.Bill, error)
}

// ShopRepository handles the per-owner shop profile singleton.
type ShopRepository interface {
	// Get returns the owner's profile, creating the default one on first use.
	Get(ctx context.Context, owner int64) (*domain.ShopProfile, error)
	Update(ctx context.Context, p *domain.ShopProfile) error
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) List(ctx context.Context, owner int64) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) GetByID(ctx context.Context, owner, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", owner, id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) GetByName(ctx context.Context, owner int64, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("owner_id = ? AND name = ?", owner, name).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, owner, id int64) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", owner, id).
		Delete(&domain.Product{}).Error
}

func (r *GormProductRepository) UpdateStock(ctx context.Context, owner, id int64, qty float64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("owner_id = ? AND id = ?", owner, id).
		Updates(map[string]interface{}{
			"qty":        qty,
			"updated_at": time.Now(),
		}).Error
}

// GormCustomerRepository is the GORM implementation of CustomerRepository.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) List(ctx context.Context, owner int64) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("created_at DESC").
		Find(&customers).Error
	return customers, err
}

func (r *GormCustomerRepository) GetByID(ctx context.Context, owner, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", owner, id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepository) GetByPhone(ctx context.Context, owner int64, phone string) (*domain.Customer, error) {
	if phone == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var c domain.Customer
	err := r.db.WithContext(ctx).Where("owner_id = ? AND phone = ?", owner, phone).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == 0 {
		c.ID = common.UUIDint64()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *GormCustomerRepository) Delete(ctx context.Context, owner, id int64) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", owner, id).
		Delete(&domain.Customer{}).Error
}

// GormBillRepository is the GORM implementation of BillRepository.
type GormBillRepository struct {
	db *gorm.DB
}

func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

func (r *GormBillRepository) List(ctx context.Context, owner int64) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ?", owner).
		Order("created_at DESC").
		Find(&bills).Error
	return bills, err
}

func (r *GormBillRepository) GetByID(ctx context.Context, owner, id int64) (*domain.Bill, error) {
	var b domain.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND id = ?", owner, id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBillRepository) GetByInvoiceNo(ctx context.Context, owner int64, invoiceNo string) (*domain.Bill, error) {
	var b domain.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND invoice_no = ?", owner, invoiceNo).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBillRepository) Count(ctx context.Context, owner int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Bill{}).
		Where("owner_id = ?", owner).
		Count(&total).Error
	return total, err
}

func (r *GormBillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	if bill.ID == 0 {
		bill.ID = common.UUIDint64()
	}
	for i := range bill.Items {
		if bill.Items[i].ID == 0 {
			bill.Items[i].ID = common.UUIDint64()
		}
		bill.Items[i].BillID = bill.ID
		bill.Items[i].OwnerID = bill.OwnerID
	}
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *GormBillRepository) ListPendingDue(ctx context.Context, owner int64, cutoff time.Time) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND status = ? AND due_date <= ?", owner, domain.BillStatusPending, cutoff).
		Order("due_date ASC").
		Find(&bills).Error
	return bills, err
}

// GormShopRepository is the GORM implementation of ShopRepository.
type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Get(ctx context.Context, owner int64) (*domain.ShopProfile, error) {
	var p domain.ShopProfile
	err := r.db.WithContext(ctx).Where("owner_id = ?", owner).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p = domain.ShopProfile{
		ID:      common.UUIDint64(),
		OwnerID: owner,
		Name:    "Govinda Dughdalay",
		Phone:   "+91 90000 00000",
		Addr:    "Near Temple Road, Mumbai",
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormShopRepository) Update(ctx context.Context, p *domain.ShopProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
