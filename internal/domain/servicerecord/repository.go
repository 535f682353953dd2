package servicerecord

import (
	"context"

	"github.com/BruksfildServices01/mech-ai/internal/models"
)

type ClientRepository interface {
	// GetOrCreateClient matches name case-insensitively and, when phone is
	// not empty, phone exactly. created reports whether a row was inserted.
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
	) (client *models.Client, created bool, err error)

	CreateClient(ctx context.Context, client *models.Client) error
	GetClientByID(ctx context.Context, id uint) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
}

type CarRepository interface {
	// GetOrCreateCar matches within the client's cars on model and on
	// whichever of brand/color/year were supplied.
	GetOrCreateCar(
		ctx context.Context,
		attrs CarAttributes,
	) (car *models.Car, created bool, err error)

	CreateCar(ctx context.Context, car *models.Car) error
	GetCarByID(ctx context.Context, id uint) (*models.Car, error)
	ListCars(ctx context.Context) ([]models.Car, error)
	ListCarsByClient(ctx context.Context, clientID uint) ([]models.Car, error)
}

type ServiceRecordRepository interface {
	CreateServiceRecord(ctx context.Context, record *models.ServiceRecord) error

	// SearchServiceRecords returns records newest first with Car and
	// Car.Client loaded.
	SearchServiceRecords(ctx context.Context, filter SearchFilter) ([]models.ServiceRecord, error)

	GetServiceRecordByID(ctx context.Context, id uint) (*models.ServiceRecord, error)
	ListServiceRecords(ctx context.Context) ([]models.ServiceRecord, error)
	ListServiceRecordsByCar(ctx context.Context, carID uint) ([]models.ServiceRecord, error)
	UpdateServiceRecord(ctx context.Context, record *models.ServiceRecord) error
	DeactivateServiceRecord(ctx context.Context, id uint) error
}

// Repositories groups the repositories bound to one unit of work.
type Repositories struct {
	Clients ClientRepository
	Cars    CarRepository
	Records ServiceRecordRepository
}

// Store hands out repositories and owns transaction boundaries.
type Store interface {
	Repositories() Repositories

	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error

	// Refresh re-reads each entity by primary key.
	Refresh(ctx context.Context, entities ...any) error
}

type CarAttributes struct {
	ClientID uint
	Brand    string
	Model    string
	Color    string
	Year     *int
}
