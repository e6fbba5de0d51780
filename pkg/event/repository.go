package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, id string, event Event) (Event, error)
	Delete(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, title, event_date, start_time, end_time, description, location, category,
	repeat_type, repeat_interval, notification_time`

func (r *RepositoryImpl) List(ctx context.Context) ([]Event, error) {
	query := `SELECT ` + selectColumns + ` FROM event ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("could not iterate events: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, event Event) (Event, error) {
	query := `INSERT INTO event (
                    id,
                    title,
                    event_date,
                    start_time,
                    end_time,
                    description,
                    location,
                    category,
                    repeat_type,
                    repeat_interval,
                    notification_time
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	event.ID = uuid.NewString()
	_, err := r.db.Exec(ctx, query, event.ID, event.Title, event.Date, event.StartTime, event.EndTime,
		event.Description, event.Location, event.Category, string(event.Repeat.Type), event.Repeat.Interval,
		event.NotificationTime)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id string, event Event) (Event, error) {
	query := `UPDATE event SET
					title = $2,
					event_date = $3,
					start_time = $4,
					end_time = $5,
					description = $6,
					location = $7,
					category = $8,
					repeat_type = $9,
					repeat_interval = $10,
					notification_time = $11
				WHERE id = $1
				RETURNING ` + selectColumns

	row := r.db.QueryRow(ctx, query, id, event.Title, event.Date, event.StartTime, event.EndTime,
		event.Description, event.Location, event.Category, string(event.Repeat.Type), event.Repeat.Interval,
		event.NotificationTime)
	updated, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		err := fmt.Errorf("could not update event %s: %w", id, err)
		log.Error(err)
		return Event{}, err
	}
	return updated, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM event WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	var repeatType string
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime, &e.Description, &e.Location,
		&e.Category, &repeatType, &e.Repeat.Interval, &e.NotificationTime)
	if err != nil {
		return Event{}, err
	}
	e.Repeat.Type = RepeatType(repeatType)
	return e, nil
}
