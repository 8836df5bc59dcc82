package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"fedex-shipping-service/models"
	"fedex-shipping-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	record := &models.QuoteRecord{
		DestinationCountry: "US",
		DestinationPostal:  "73301",
		PackingStrategy:    "dimensions",
		PackageCount:       1,
		ShipmentCurrency:   "USD",
		QuoteCount:         3,
		CheapestService:    "FedEx Ground",
		CheapestRate:       14.2,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "quote_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "quote_records"`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{}))

	rec, err := repo.FindByID(context.Background(), id)
	assert.Error(t, err)
	assert.Nil(t, rec)
}

func TestFindAll_Paginates(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "quote_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows([]string{"id", "destination_country", "destination_postal", "packing_strategy", "package_count", "shipment_currency", "quote_count", "cheapest_service", "cheapest_rate", "error_text", "created_at", "updated_at"}).
		AddRow(uuid.New(), "US", "73301", "dimensions", 1, "USD", 2, "FedEx Ground", 14.2, "", now, now).
		AddRow(uuid.New(), "CA", "M5V 1J1", "volume", 2, "USD", 1, "FedEx 2Day", 33.0, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "quote_records"`)).
		WillReturnRows(rows)

	records, total, err := repo.FindAll(context.Background(), 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, records, 2)
	assert.Equal(t, "US", records[0].DestinationCountry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByDestinationCountry(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "quote_records"`)).
		WithArgs("IN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "destination_country", "destination_postal", "packing_strategy", "package_count", "shipment_currency", "quote_count", "cheapest_service", "cheapest_rate", "error_text", "created_at", "updated_at"}).
		AddRow(uuid.New(), "IN", "560001", "dimensions", 1, "INR", 4, "FedEx Express Saver", 820.5, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "quote_records"`)).
		WillReturnRows(rows)

	records, total, err := repo.FindByDestinationCountry(context.Background(), "IN", 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
	assert.Equal(t, "INR", records[0].ShipmentCurrency)
}

func TestFindAll_CountError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormQuoteRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "quote_records"`)).
		WillReturnError(gorm.ErrInvalidDB)

	_, _, err := repo.FindAll(context.Background(), 1, 10)
	assert.Error(t, err)
}
