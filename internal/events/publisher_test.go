package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestGoChannelPublisherDeliversSnapshots(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewGoChannelPublisher(logger)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := publisher.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	sent := &UnreadSnapshot{Username: "t1", DirectUnread: 2, GroupUnread: 1, At: time.Now()}
	if err := publisher.PublishUnreadSnapshot(ctx, sent); err != nil {
		t.Fatalf("PublishUnreadSnapshot: %v", err)
	}

	select {
	case msg := <-messages:
		var got UnreadSnapshot
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		msg.Ack()
		if got.Username != "t1" || got.DirectUnread != 2 || got.GroupUnread != 1 {
			t.Errorf("snapshot = %+v", got)
		}
	case <-ctx.Done():
		t.Fatal("no message delivered")
	}
}

func TestMockEventPublisherRecordsInOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := NewMockEventPublisher(logger)

	for _, name := range []string{"a", "b"} {
		if err := mock.PublishUnreadSnapshot(context.Background(), &UnreadSnapshot{Username: name}); err != nil {
			t.Fatal(err)
		}
	}
	snapshots := mock.Snapshots()
	if len(snapshots) != 2 || snapshots[0].Username != "a" || snapshots[1].Username != "b" {
		t.Errorf("snapshots = %+v", snapshots)
	}
}
