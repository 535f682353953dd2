package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

type ServiceRecordGormRepository struct {
	db *gorm.DB
}

func NewServiceRecordGormRepository(db *gorm.DB) *ServiceRecordGormRepository {
	return &ServiceRecordGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *ServiceRecordGormRepository) CreateServiceRecord(
	ctx context.Context,
	record *models.ServiceRecord,
) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// --------------------------------------------------
// Search
// --------------------------------------------------

func (r *ServiceRecordGormRepository) SearchServiceRecords(
	ctx context.Context,
	filter domain.SearchFilter,
) ([]models.ServiceRecord, error) {

	q := r.db.WithContext(ctx).
		Model(&models.ServiceRecord{}).
		Select("service_records.*").
		Joins("JOIN cars ON cars.id = service_records.car_id")

	if filter.NeedsClientJoin() {
		q = q.Joins("JOIN clients ON clients.id = cars.client_id")
	}

	for _, p := range filter.Predicates() {
		q = q.Where(p.Expr, p.Arg)
	}

	var records []models.ServiceRecord
	if err := q.
		Preload("Car.Client").
		Order("service_records.created_at DESC").
		Order("service_records.id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *ServiceRecordGormRepository) GetServiceRecordByID(
	ctx context.Context,
	id uint,
) (*models.ServiceRecord, error) {

	var record models.ServiceRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ServiceRecordGormRepository) ListServiceRecords(
	ctx context.Context,
) ([]models.ServiceRecord, error) {

	var records []models.ServiceRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ServiceRecordGormRepository) ListServiceRecordsByCar(
	ctx context.Context,
	carID uint,
) ([]models.ServiceRecord, error) {

	var records []models.ServiceRecord
	if err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("date DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ServiceRecordGormRepository) UpdateServiceRecord(
	ctx context.Context,
	record *models.ServiceRecord,
) error {
	return r.db.WithContext(ctx).Omit("Car").Save(record).Error
}

func (r *ServiceRecordGormRepository) DeactivateServiceRecord(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.ServiceRecord{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ domain.ServiceRecordRepository = (*ServiceRecordGormRepository)(nil)
