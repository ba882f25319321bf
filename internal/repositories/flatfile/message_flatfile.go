package flatfile

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/storage"
)

// messageFlatFile is the legacy pipe-separated message log. All messages,
// direct and group, share one append-only file; the read flag is the only
// field ever rewritten.
type messageFlatFile struct {
	table  *storage.Table[*models.Message]
	logger *slog.Logger
}

func newMessageFlatFile(dataDir string, logger *slog.Logger) *messageFlatFile {
	return &messageFlatFile{
		table: storage.NewTable(
			filepath.Join(dataDir, messagesFile),
			"messages",
			"sender|recipient|group_id|content|sent_at|read",
			messageCodec(),
			logger,
		),
		logger: logger,
	}
}

func (r *messageFlatFile) Append(ctx context.Context, message *models.Message) error {
	return r.table.Append(ctx, message)
}

func (r *messageFlatFile) ListDirect(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	messages, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Message
	for _, m := range messages {
		if m.IsGroup() {
			continue
		}
		if (m.Sender == userA && m.Recipient == userB) || (m.Sender == userB && m.Recipient == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *messageFlatFile) ListGroup(ctx context.Context, groupID string) ([]*models.Message, error) {
	messages, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Message
	for _, m := range messages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *messageFlatFile) ListForUser(ctx context.Context, username string) ([]*models.Message, error) {
	messages, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Message
	for _, m := range messages {
		if m.Sender == username || m.Recipient == username {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *messageFlatFile) UnreadDirectCount(ctx context.Context, username string) (int, error) {
	messages, err := r.table.Scan(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range messages {
		if !m.IsGroup() && m.Recipient == username && !m.Read {
			count++
		}
	}
	return count, nil
}

func (r *messageFlatFile) MarkDirectRead(ctx context.Context, recipient, sender string) (bool, error) {
	return r.table.Update(ctx,
		func(m *models.Message) bool {
			return !m.IsGroup() && m.Recipient == recipient && m.Sender == sender && !m.Read
		},
		func(m *models.Message) *models.Message {
			updated := *m
			updated.Read = true
			return &updated
		},
	)
}
