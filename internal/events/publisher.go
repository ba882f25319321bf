package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/CCMS-2025/center-service/internal/models"
)

// TopicChatUnread carries one UnreadSnapshot per poller tick per user.
const TopicChatUnread = "chat.unread"

// UnreadSnapshot is the refreshed unread-activity view for one user.
type UnreadSnapshot struct {
	Username      string                `json:"username"`
	DirectUnread  int                   `json:"direct_unread"`
	GroupUnread   int                   `json:"group_unread"`
	Conversations []models.Conversation `json:"conversations"`
	At            time.Time             `json:"at"`
}

// Publisher delivers unread snapshots to whoever renders them. Everything
// stays in-process; there is no broker.
type Publisher interface {
	PublishUnreadSnapshot(ctx context.Context, snapshot *UnreadSnapshot) error
	Close() error
}

// GoChannelPublisher publishes snapshots over watermill's in-process pub/sub.
type GoChannelPublisher struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

func NewGoChannelPublisher(logger *slog.Logger) *GoChannelPublisher {
	return &GoChannelPublisher{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

func (p *GoChannelPublisher) PublishUnreadSnapshot(ctx context.Context, snapshot *UnreadSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal unread snapshot: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.pubSub.Publish(TopicChatUnread, msg); err != nil {
		return fmt.Errorf("publish unread snapshot: %w", err)
	}
	return nil
}

// Subscribe hands out the snapshot stream for one consumer.
func (p *GoChannelPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, TopicChatUnread)
}

func (p *GoChannelPublisher) Close() error {
	return p.pubSub.Close()
}

// MockEventPublisher records snapshots for assertions in tests.
type MockEventPublisher struct {
	mu        sync.Mutex
	snapshots []*UnreadSnapshot
	logger    *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) PublishUnreadSnapshot(_ context.Context, snapshot *UnreadSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *MockEventPublisher) Snapshots() []*UnreadSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*UnreadSnapshot, len(m.snapshots))
	copy(out, m.snapshots)
	return out
}

func (m *MockEventPublisher) Close() error { return nil }
