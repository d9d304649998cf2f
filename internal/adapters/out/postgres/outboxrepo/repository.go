// Package outboxrepo stores delivery events in the outbox_messages table and
// serves them to the notification dispatcher.
package outboxrepo

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxErrorLength bounds last_error so a noisy provider cannot bloat rows.
const maxErrorLength = 1024

type MessageDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType      string     `gorm:"type:varchar(64);not null"`
	Status         string     `gorm:"type:varchar(16);not null"`
	PreviousStatus string     `gorm:"type:varchar(16)"`
	DriverID       *uuid.UUID `gorm:"type:uuid"`
	OccurredAt     time.Time  `gorm:"not null;index"`
	ProcessedAt    *time.Time `gorm:"index"`
	Attempts       int        `gorm:"type:int;not null"`
	LastError      string     `gorm:"type:text"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Save stores events. Events already stored are ignored, so saving the same
// aggregate twice in one transaction is harmless.
func (r *GormOutboxRepository) Save(ctx context.Context, events []delivery.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromEvent(e))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&dtos).Error
}

func (r *GormOutboxRepository) GetPending(ctx context.Context, limit, maxAttempts int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL AND attempts < ?", maxAttempts).
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		event, convErr := toEvent(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, ports.OutboxMessage{Event: event, Attempts: dto.Attempts})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, msg ports.OutboxMessage, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", msg.Event.ID.Bytes()).
		Update("processed_at", at).Error
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, msg ports.OutboxMessage, cause error) error {
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}
	if len(lastError) > maxErrorLength {
		lastError = lastError[:maxErrorLength]
	}

	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", msg.Event.ID.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
}

func fromEvent(e delivery.Event) MessageDTO {
	var driverID *uuid.UUID
	if e.DriverID != nil {
		raw := e.DriverID.Bytes()
		driverID = &raw
	}

	previous := ""
	if e.PreviousStatus != delivery.Unknown {
		previous = e.PreviousStatus.String()
	}

	return MessageDTO{
		ID:             e.ID.Bytes(),
		DeliveryID:     e.DeliveryID.Bytes(),
		EventType:      string(e.Type),
		Status:         e.Status.String(),
		PreviousStatus: previous,
		DriverID:       driverID,
		OccurredAt:     e.OccurredAt,
	}
}

func toEvent(dto MessageDTO) (delivery.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return delivery.Event{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return delivery.Event{}, err
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return delivery.Event{}, err
	}

	previous := delivery.Unknown
	if dto.PreviousStatus != "" {
		if previous, err = delivery.ParseStatus(dto.PreviousStatus); err != nil {
			return delivery.Event{}, err
		}
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if idErr != nil {
			return delivery.Event{}, idErr
		}
		driverID = &id
	}

	return delivery.Event{
		ID:             id,
		DeliveryID:     deliveryID,
		Type:           delivery.EventType(dto.EventType),
		Status:         status,
		PreviousStatus: previous,
		DriverID:       driverID,
		OccurredAt:     dto.OccurredAt,
	}, nil
}
