package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/agenda/internal/config"
	"github.com/klokku/agenda/internal/database"
	"github.com/klokku/agenda/internal/event_bus"
	"github.com/klokku/agenda/internal/utils"
	"github.com/klokku/agenda/pkg/calendar"
	"github.com/klokku/agenda/pkg/event"
	"github.com/klokku/agenda/pkg/holiday"
	"github.com/klokku/agenda/pkg/notification"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	EventRepository event.Repository

	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler

	Notifier            *notification.Notifier
	NotificationHandler *notification.Handler

	HolidayLookup  *holiday.Lookup
	HolidayHandler *holiday.Handler

	db *pgxpool.Pool
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	repo, err := deps.buildRepository(cfg)
	if err != nil {
		return nil, err
	}
	deps.EventRepository = repo

	weekStart, err := cfg.Calendar.WeekStart()
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.CalendarService = calendar.NewService(deps.EventRepository, deps.EventBus, weekStart)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService, deps.Clock)

	deps.Notifier = notification.NewNotifier(deps.EventRepository, deps.Clock, deps.EventBus, cfg.Notifications.Schedule)
	deps.NotificationHandler = notification.NewHandler(deps.Notifier)

	deps.HolidayLookup, err = holiday.Load(cfg.Holidays.File)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayLookup, deps.Clock)

	event_bus.SubscribeTyped(deps.EventBus, event_bus.NotificationEmitted, func(e event_bus.EventT[event_bus.NotificationDelivered]) error {
		log.WithField("eventId", e.Data.EventID).Info(e.Data.Message)
		return nil
	})

	return deps, nil
}

func (d *Dependencies) buildRepository(cfg config.Application) (event.Repository, error) {
	switch cfg.Storage.Type {
	case config.StorageMemory:
		log.Info("Using in-memory event storage")
		return event.NewRepositoryStub(), nil
	case config.StorageRemote:
		log.Infof("Using remote event storage at %s", cfg.Storage.RemoteURL)
		return event.NewClient(cfg.Storage.RemoteURL, &http.Client{Timeout: 10 * time.Second}), nil
	case config.StoragePostgres:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Database); err != nil {
			db.Close()
			return nil, err
		}
		d.db = db
		return event.NewRepository(db), nil
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}

// Close releases the database pool, if any.
func (d *Dependencies) Close() {
	if d.db != nil {
		d.db.Close()
	}
}
