package notification

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/klokku/agenda/internal/event_bus"
	"github.com/klokku/agenda/internal/utils"
	"github.com/klokku/agenda/pkg/event"
	"github.com/klokku/agenda/pkg/schedule"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

var ErrNoSuchNotification = errors.New("no such notification")

const DefaultSchedule = "@every 1s"

// Notifier turns due events into notifications, each event at most once per
// process lifetime. Delivered notifications stay active until dismissed.
type Notifier struct {
	repo     event.Repository
	clock    utils.Clock
	eventBus *event_bus.EventBus
	cron     *cron.Cron
	schedule string

	mu        sync.Mutex
	ledger    *schedule.Ledger
	active    []schedule.Notification
	lastKnown []event.Event
}

func NewNotifier(repo event.Repository, clock utils.Clock, eventBus *event_bus.EventBus, cronExpr string) *Notifier {
	if cronExpr == "" {
		cronExpr = DefaultSchedule
	}
	logger := cron.PrintfLogger(log.StandardLogger())
	return &Notifier{
		repo:     repo,
		clock:    clock,
		eventBus: eventBus,
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger))),
		schedule: cronExpr,
		ledger:   schedule.NewLedger(),
		active:   make([]schedule.Notification, 0),
	}
}

// Tick checks the events once and returns the notifications it emitted. When
// the repository fails the last successfully listed events are used.
func (n *Notifier) Tick(ctx context.Context) []schedule.Notification {
	events, err := n.repo.List(ctx)

	n.mu.Lock()
	if err != nil {
		log.Warnf("failed to list events for notifications, using %d cached: %v", len(n.lastKnown), err)
		events = n.lastKnown
	} else {
		n.lastKnown = events
	}
	due := schedule.DueNotifications(events, n.clock.Now(), n.ledger)
	n.ledger.RecordAll(due)
	n.active = append(n.active, due...)
	n.mu.Unlock()

	for _, notification := range due {
		log.Infof("Notification for event %s: %s", notification.ID, notification.Message)
		n.publish(ctx, notification)
	}
	return due
}

func (n *Notifier) publish(ctx context.Context, notification schedule.Notification) {
	if n.eventBus == nil {
		return
	}
	err := n.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.NotificationEmitted, event_bus.NotificationDelivered{
		EventID: notification.ID,
		Message: notification.Message,
	}))
	if err != nil {
		log.Errorf("failed to publish notification for event %s: %v", notification.ID, err)
	}
}

// Active returns the delivered notifications that were not dismissed, oldest first.
func (n *Notifier) Active() []schedule.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.active)
}

// Dismiss removes the active notification at index. The event stays in the
// ledger, so it is not notified again.
func (n *Notifier) Dismiss(index int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if index < 0 || index >= len(n.active) {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchNotification, index, len(n.active))
	}
	n.active = slices.Delete(n.active, index, index+1)
	return nil
}

// Notified returns the ids of every event notified so far.
func (n *Notifier) Notified() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ledger.IDs()
}

func (n *Notifier) Start() error {
	_, err := n.cron.AddFunc(n.schedule, func() {
		n.Tick(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid notification schedule %q: %w", n.schedule, err)
	}
	n.cron.Start()
	log.Infof("Notifier started (schedule: %s)", n.schedule)
	return nil
}

func (n *Notifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
	log.Info("Notifier stopped")
}
