package queries

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListClientsQueryHandler struct {
	db *gorm.DB
}

func NewListClientsQueryHandler(db *gorm.DB) ListClientsQueryHandler {
	return ListClientsQueryHandler{db: db}
}

// Handle returns every client sorted by name.
func (h ListClientsQueryHandler) Handle(ctx context.Context, query ListClientsQuery) ([]ClientView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	clients := make([]ClientView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			COALESCE(address, ''),
			COALESCE(telegram_chat_id, '')
		FROM clients
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c  ClientView
			id uuid.UUID
		)
		if err = rows.Scan(&id, &c.Name, &c.Phone, &c.Address, &c.TelegramChatID); err != nil {
			return nil, err
		}

		c.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}
