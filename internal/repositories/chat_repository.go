package repositories

import (
	"context"

	"github.com/CCMS-2025/center-service/internal/models"
)

// MessageRepository is the legacy pipe-separated messaging subsystem.
// Messages have no id; their position in the file is their identity.
type MessageRepository interface {
	Append(ctx context.Context, message *models.Message) error

	// ListDirect returns the direct conversation between two users in file
	// order, regardless of direction.
	ListDirect(ctx context.Context, userA, userB string) ([]*models.Message, error)
	ListGroup(ctx context.Context, groupID string) ([]*models.Message, error)
	ListForUser(ctx context.Context, username string) ([]*models.Message, error)

	// UnreadDirectCount counts unread direct messages addressed to username.
	UnreadDirectCount(ctx context.Context, username string) (int, error)

	// MarkDirectRead flags every direct message from sender to recipient as
	// read in one rewrite.
	MarkDirectRead(ctx context.Context, recipient, sender string) (bool, error)
}

// GroupChatRepository stores group chats. Ids come from the counter file,
// so they are bare integers in allocation order.
type GroupChatRepository interface {
	// Create allocates the next group id and appends the record. The
	// creator is always included in the member set.
	Create(ctx context.Context, group *models.GroupChat) error

	GetByID(ctx context.Context, id string) (*models.GroupChat, error)
	List(ctx context.Context) ([]*models.GroupChat, error)
	ListByMember(ctx context.Context, username string) ([]*models.GroupChat, error)

	// UpdateMembers replaces the group's full member set in one rewrite.
	UpdateMembers(ctx context.Context, id string, members []string) (bool, error)

	Delete(ctx context.Context, id string) (bool, error)
}
