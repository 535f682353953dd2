package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
) (*models.Client, bool, error) {

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, false, errors.New("client name is required")
	}

	q := r.db.WithContext(ctx).
		Where("name_key = ?", models.MatchKey(name))
	if phone != "" {
		q = q.Where("phone = ?", phone)
	}

	var client models.Client
	err := q.First(&client).Error
	if err == nil {
		return &client, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	client = models.Client{
		Name:  name,
		Phone: optionalString(phone),
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, false, err
	}

	return &client, true, nil
}

func (r *ClientGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// Compile-time check
var _ domain.ClientRepository = (*ClientGormRepository)(nil)
