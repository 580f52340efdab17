package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale with its stock lines
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("sale")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the sale header with SELECT ... FOR UPDATE
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("sale")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists sales of a tenant, newest first by default
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.filtered(ctx, tenantID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SaleModel
	if err := r.filtered(ctx, tenantID, filter).
		Preload("Items").
		Order(orderClause(filter.OrderBy, filter.OrderDir, SaleSortFields, "created_at")).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toSales(rows), total, nil
}

// filtered returns a fresh query with the list filters applied
func (r *GormSaleRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).Where("tenant_id = ?", tenantID)
	if status := filterString(filter.Filters, "status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentType := filterString(filter.Filters, "payment_type"); paymentType != "" {
		query = query.Where("payment_type = ?", paymentType)
	}
	return query
}

// FindCredit lists non-cancelled credit sales, newest first
func (r *GormSaleRepository) FindCredit(ctx context.Context, tenantID uuid.UUID) ([]sales.Sale, error) {
	var rows []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND payment_type IN ? AND status <> ?",
			tenantID, sales.CreditPaymentTypes(), string(sales.SaleStatusCancelled)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSales(rows), nil
}

// Create inserts the header row, which carries the basket payload, then the stock lines
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	if len(model.Items) > 0 {
		if err := db.Create(&model.Items).Error; err != nil {
			return fmt.Errorf("insert sale items: %w", err)
		}
	}
	return nil
}

// SaveWithLock saves header fields with optimistic locking (checks version)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", sale.TenantID, sale.ID, sale.Version-1).
		Updates(map[string]interface{}{
			"status":          string(sale.Status),
			"notes":           sale.Notes,
			"delivery_date":   sale.DeliveryDate,
			"delivery_method": sale.DeliveryMethod,
			"version":         sale.Version,
			"updated_at":      sale.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant deletes the stock lines, then the header
func (r *GormSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("tenant_id = ? AND sale_id = ?", tenantID, id).
		Delete(&models.SaleItemModel{}).Error; err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	result := db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.SaleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("sale")
	}
	return nil
}

// CountLinesForItem counts stock lines that reference an inventory item
func (r *GormSaleRepository) CountLinesForItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleItemModel{}).
		Where("tenant_id = ? AND item_id = ?", tenantID, itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toSales(rows []models.SaleModel) []sales.Sale {
	result := make([]sales.Sale, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
