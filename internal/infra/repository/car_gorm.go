package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

type CarGormRepository struct {
	db *gorm.DB
}

func NewCarGormRepository(db *gorm.DB) *CarGormRepository {
	return &CarGormRepository{db: db}
}

func (r *CarGormRepository) GetOrCreateCar(
	ctx context.Context,
	attrs domain.CarAttributes,
) (*models.Car, bool, error) {

	model := strings.TrimSpace(attrs.Model)
	if model == "" {
		return nil, false, errors.New("car model is required")
	}
	brand := strings.TrimSpace(attrs.Brand)
	color := strings.TrimSpace(attrs.Color)

	// campos não informados não entram no filtro
	q := r.db.WithContext(ctx).
		Where("client_id = ?", attrs.ClientID).
		Where("model_key = ?", models.MatchKey(model))

	if brand != "" {
		q = q.Where("brand_key = ?", models.MatchKey(brand))
	}
	if color != "" {
		q = q.Where("color_key = ?", models.MatchKey(color))
	}
	if attrs.Year != nil {
		q = q.Where("year = ?", *attrs.Year)
	}

	var car models.Car
	err := q.First(&car).Error
	if err == nil {
		return &car, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	car = models.Car{
		ClientID: attrs.ClientID,
		Brand:    optionalString(brand),
		Model:    model,
		Color:    optionalString(color),
		Year:     attrs.Year,
	}

	if err := r.db.WithContext(ctx).Create(&car).Error; err != nil {
		return nil, false, err
	}

	return &car, true, nil
}

func (r *CarGormRepository) CreateCar(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *CarGormRepository) GetCarByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarGormRepository) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).
		Order("brand ASC").
		Order("model ASC").
		Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarGormRepository) ListCarsByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Car, error) {

	var cars []models.Car
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// Compile-time check
var _ domain.CarRepository = (*CarGormRepository)(nil)
