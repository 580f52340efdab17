package persistence

import (
	"context"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	return r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error
}

// FindBySale returns every payment of a sale, oldest first
func (r *GormPaymentRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPayments(rows), nil
}

// FindPaidBySale returns the PAID payments of a sale
func (r *GormPaymentRepository) FindPaidBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id = ? AND status = ?", tenantID, saleID, string(finance.PaymentStatusPaid)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPayments(rows), nil
}

// FindPaidBySales loads PAID payments of many sales in one query
func (r *GormPaymentRepository) FindPaidBySales(ctx context.Context, tenantID uuid.UUID, saleIDs []uuid.UUID) (map[uuid.UUID][]finance.Payment, error) {
	grouped := make(map[uuid.UUID][]finance.Payment, len(saleIDs))
	if len(saleIDs) == 0 {
		return grouped, nil
	}

	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id IN ? AND status = ?", tenantID, saleIDs, string(finance.PaymentStatusPaid)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		p := rows[i].ToDomain()
		grouped[p.SaleID] = append(grouped[p.SaleID], *p)
	}
	return grouped, nil
}

// CountBySale counts payments of any status recorded against a sale
func (r *GormPaymentRepository) CountBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toPayments(rows []models.PaymentModel) []finance.Payment {
	result := make([]finance.Payment, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
