package repository

import (
	"context"

	"fedex-shipping-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteRepository defines data-access operations for quote history records.
type QuoteRepository interface {
	Create(ctx context.Context, record *models.QuoteRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRecord, error)
	FindAll(ctx context.Context, page, limit int) ([]models.QuoteRecord, int64, error)
	FindByDestinationCountry(ctx context.Context, country string, page, limit int) ([]models.QuoteRecord, int64, error)
}

// GormQuoteRepository implements QuoteRepository using GORM.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository.
func NewGormQuoteRepository(db *gorm.DB) QuoteRepository {
	return &GormQuoteRepository{db: db}
}

func (r *GormQuoteRepository) Create(ctx context.Context, record *models.QuoteRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRecord, error) {
	var rec models.QuoteRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormQuoteRepository) FindAll(ctx context.Context, page, limit int) ([]models.QuoteRecord, int64, error) {
	return r.paginate(r.db.WithContext(ctx).Model(&models.QuoteRecord{}), page, limit)
}

func (r *GormQuoteRepository) FindByDestinationCountry(ctx context.Context, country string, page, limit int) ([]models.QuoteRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.QuoteRecord{}).
		Where("destination_country = ?", country)
	return r.paginate(query, page, limit)
}

func (r *GormQuoteRepository) paginate(query *gorm.DB, page, limit int) ([]models.QuoteRecord, int64, error) {
	var records []models.QuoteRecord
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
