package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trimlylabs/trimly-api/internal/audit"
	"github.com/trimlylabs/trimly-api/internal/config"
	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/handlers"
	infraRepo "github.com/trimlylabs/trimly-api/internal/infra/repository"
	"github.com/trimlylabs/trimly-api/internal/metrics"
	"github.com/trimlylabs/trimly-api/internal/middleware"
	"github.com/trimlylabs/trimly-api/internal/notify"
	"github.com/trimlylabs/trimly-api/internal/storage"
	"github.com/trimlylabs/trimly-api/internal/timezone"
	ucBooking "github.com/trimlylabs/trimly-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	clock := domain.NewSystemClock(timezone.Location(cfg.Timezone))

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	notifyDispatcher := notify.NewDispatcher(notifier, bookingRepo, log)

	photoStore := storage.NewPhotoStore(cfg)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlots(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		clock,
		notifyDispatcher,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		clock,
		notifyDispatcher,
		auditDispatcher,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		clock,
		auditDispatcher,
	)

	rateBookingUC := ucBooking.NewRateBooking(bookingRepo, auditDispatcher)

	setStatusUC := ucBooking.NewSetStatus(
		bookingRepo,
		clock,
		notifyDispatcher,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListAppointmentsByDate(bookingRepo, clock)
	listByMonthUC := ucBooking.NewListAppointmentsByMonth(bookingRepo, clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, getSlotsUC, clock)

	reservationHandler := handlers.NewReservationHandler(
		bookingRepo,
		createBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		rateBookingUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(db, clock)

	barberHandler := handlers.NewBarberHandler(
		db,
		clock,
		photoStore,
		listByDateUC,
		listByMonthUC,
		setStatusUC,
	)

	adminHandler := handlers.NewAdminHandler(db, setStatusUC)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/barbers/:id/slots", publicHandler.GetSlots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CUSTOMER — RESERVATIONS
			// ------------------------------
			customer := secured.Group("/me/reservations")
			customer.Use(middleware.RequireRole(domain.RoleCustomer))
			{
				customer.POST("",
					middleware.RateLimit(rdb, cfg.PublicBookingRate),
					reservationHandler.Create,
				)
				customer.GET("", reservationHandler.ListMine)
				customer.PATCH("/:id/cancel", reservationHandler.Cancel)
				customer.PATCH("/:id/reschedule", reservationHandler.Reschedule)
				customer.POST("/:id/rating", reservationHandler.Rate)
			}

			// ------------------------------
			// BARBER — SCHEDULE + APPOINTMENTS
			// ------------------------------
			barber := secured.Group("/me")
			barber.Use(middleware.RequireRole(domain.RoleBarber))
			{
				barber.GET("/schedule/weekly", scheduleHandler.GetWeekly)
				barber.PUT("/schedule/weekly", scheduleHandler.UpdateWeekly)

				barber.GET("/schedule/overrides", scheduleHandler.ListOverrides)
				barber.POST("/schedule/overrides", scheduleHandler.CreateOverride)
				barber.DELETE("/schedule/overrides/:id", scheduleHandler.DeleteOverride)

				barber.GET("/appointments", barberHandler.ListByDate)
				barber.GET("/appointments/month", barberHandler.ListByMonth)
				barber.PATCH("/appointments/:id/status", barberHandler.SetReservationStatus)

				barber.PATCH("/availability", barberHandler.SetAvailability)
				barber.POST("/photo", barberHandler.UploadPhoto)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(domain.RoleAdmin))
			{
				admin.POST("/services", adminHandler.CreateService)
				admin.PATCH("/services/:id", adminHandler.UpdateService)

				admin.PATCH("/barbers/:id/approve", adminHandler.ApproveBarber)
				admin.PATCH("/reservations/:id/status", adminHandler.SetReservationStatus)

				admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}
}
