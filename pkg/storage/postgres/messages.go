package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	messagesTable = "messages"
)

// StoreMessage inserts a direct message.
func (p *PgSQL) StoreMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	pgMsg := PgMessage{
		SenderID:    uuid.UUID(msg.SenderID),
		RecipientID: uuid.UUID(msg.RecipientID),
		Content:     msg.Content,
	}

	var row PgMessage
	if _, err := p.Builder.Insert(messagesTable).
		Rows(pgMsg).
		Returning(&PgMessage{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		return nil, fmt.Errorf("could not store message into pg: %w", err)
	}

	return row.ToDomain(), nil
}

// InboxMessages returns a page of messages sent to the user, newest first.
func (p *PgSQL) InboxMessages(ctx context.Context,
	recipientID domain.UserID,
	cursor time.Time,
	limit uint) (storage.MessagePage, error) {
	w := []goqu.Expression{
		goqu.I("recipient_id").Eq(uuid.UUID(recipientID)),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("sent_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	var rows []PgMessage
	if err := p.Builder.From(messagesTable).
		Where(w...).
		Order(goqu.I("sent_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.MessagePage{}, fmt.Errorf("could not fetch inbox messages from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].SentAt
		rows = trimmed
	}

	messages := make([]domain.Message, 0, len(rows))
	for _, r := range rows {
		messages = append(messages, *r.ToDomain())
	}

	return storage.MessagePage{
		Messages:   messages,
		NextCursor: nextCursor,
	}, nil
}
