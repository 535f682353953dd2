package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mech-ai/internal/audit"
	"github.com/BruksfildServices01/mech-ai/internal/chat"
	"github.com/BruksfildServices01/mech-ai/internal/config"
	"github.com/BruksfildServices01/mech-ai/internal/handlers"
	infraRepo "github.com/BruksfildServices01/mech-ai/internal/infra/repository"
	ucServiceRecord "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Chat   *chat.Service
	Audit  *audit.Dispatcher
	Log    *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	store := infraRepo.NewGormStore(d.DB)
	repos := store.Repositories()

	// ======================================================
	// 🧠 USE CASES — SERVICE RECORDS (CRUD)
	// ======================================================
	addServiceRecordUC := ucServiceRecord.NewAddServiceRecord(
		store,
		d.Audit,
		d.Config.Timezone,
	)

	updateServiceRecordUC := ucServiceRecord.NewUpdateServiceRecord(
		store,
		d.Audit,
	)

	deactivateServiceRecordUC := ucServiceRecord.NewDeactivateServiceRecord(
		store,
		d.Audit,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	chatHandler := handlers.NewChatHandler(d.Chat, d.Config.MaxAudioBytes, d.Log)
	clientHandler := handlers.NewClientHandler(repos, d.Audit)
	carHandler := handlers.NewCarHandler(repos, d.Audit)

	serviceRecordHandler := handlers.NewServiceRecordHandler(
		repos.Records,
		addServiceRecordUC,
		updateServiceRecordUC,
		deactivateServiceRecordUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Config.Timezone)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 💬 CHAT
		// ------------------------------
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/audio", chatHandler.Audio)

		// ------------------------------
		// CLIENTES / CARROS
		// ------------------------------
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients", clientHandler.List)
		api.GET("/clients/:id/cars", clientHandler.ListCars)

		api.POST("/cars", carHandler.Create)
		api.GET("/cars", carHandler.List)
		api.GET("/cars/:id/service_records", carHandler.ListServiceRecords)

		// ------------------------------
		// SERVIÇOS
		// ------------------------------
		api.POST("/services", serviceRecordHandler.Create)
		api.GET("/services", serviceRecordHandler.List)
		api.GET("/services/:id", serviceRecordHandler.Get)
		api.PUT("/services/:id", serviceRecordHandler.Update)
		api.DELETE("/services/:id", serviceRecordHandler.Delete)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
