package persistence

import (
	"context"
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinancialMovementRepository implements finance.FinancialMovementRepository using GORM.
// Ledger rows are insert-only.
type GormFinancialMovementRepository struct {
	db *gorm.DB
}

// NewGormFinancialMovementRepository creates a new GormFinancialMovementRepository
func NewGormFinancialMovementRepository(db *gorm.DB) *GormFinancialMovementRepository {
	return &GormFinancialMovementRepository{db: db}
}

// Create appends a ledger entry
func (r *GormFinancialMovementRepository) Create(ctx context.Context, movement *finance.FinancialMovement) error {
	return r.db.WithContext(ctx).Create(models.FinancialMovementModelFromDomain(movement)).Error
}

// FindAllForTenant lists ledger entries, latest movement date first by default
func (r *GormFinancialMovementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.FinancialMovement, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.filtered(ctx, tenantID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.FinancialMovementModel
	if err := r.filtered(ctx, tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, FinancialMovementSortFields, "movement_date")).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]finance.FinancialMovement, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, total, nil
}

func (r *GormFinancialMovementRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.FinancialMovementModel{}).Where("tenant_id = ?", tenantID)
	if direction := filterString(filter.Filters, "direction"); direction != "" {
		query = query.Where("direction = ?", direction)
	}
	if category := filterString(filter.Filters, "category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok && !from.IsZero() {
		query = query.Where("movement_date >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok && !to.IsZero() {
		query = query.Where("movement_date < ?", to)
	}
	return query
}

// Ensure GormFinancialMovementRepository implements FinancialMovementRepository
var _ finance.FinancialMovementRepository = (*GormFinancialMovementRepository)(nil)
