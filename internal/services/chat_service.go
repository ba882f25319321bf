package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/CCMS-2025/center-service/internal/events"
	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/validator"
)

type chatService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
}

func NewChatService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.Publisher) ChatService {
	return &chatService{repo: repo, logger: logger, validator: v, publisher: publisher}
}

func (s *chatService) SendMessage(ctx context.Context, req *SendMessageRequest) error {
	if errs := s.validator.ValidateSendMessage(req); errs.HasErrors() {
		return fmt.Errorf("send message: %w", errs)
	}

	if req.GroupID != "" {
		group, err := s.repo.GroupChat().GetByID(ctx, req.GroupID)
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		if !group.HasMember(req.Sender) {
			return fmt.Errorf("send message: %s is not a member of group %s", req.Sender, req.GroupID)
		}
	} else if err := s.userExists(ctx, req.Recipient); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	message := &models.Message{
		Sender:    req.Sender,
		Recipient: req.Recipient,
		GroupID:   req.GroupID,
		Content:   req.Content,
		SentAt:    time.Now(),
	}
	if err := s.repo.Message().Append(ctx, message); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (s *chatService) DirectConversation(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	return s.repo.Message().ListDirect(ctx, userA, userB)
}

func (s *chatService) GroupConversation(ctx context.Context, groupID, username string) ([]*models.Message, error) {
	group, err := s.repo.GroupChat().GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(username) {
		return nil, fmt.Errorf("group conversation: %s is not a member of group %s", username, groupID)
	}
	return s.repo.Message().ListGroup(ctx, groupID)
}

func (s *chatService) MarkConversationRead(ctx context.Context, recipient, sender string) error {
	_, err := s.repo.Message().MarkDirectRead(ctx, recipient, sender)
	return err
}

func (s *chatService) CreateGroup(ctx context.Context, req *CreateGroupRequest) (*models.GroupChat, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("create group: %w", errs)
	}
	if err := s.userExists(ctx, req.Creator); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	group := &models.GroupChat{
		Name:    req.Name,
		Creator: req.Creator,
		Members: req.Members,
	}
	if err := s.repo.GroupChat().Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.logger.Info("group chat created", "group_id", group.ID, "name", group.Name, "members", len(group.Members))
	return group, nil
}

func (s *chatService) AddMembers(ctx context.Context, groupID, actor string, members []string) (*models.GroupChat, error) {
	group, err := s.managedGroup(ctx, groupID, actor)
	if err != nil {
		return nil, fmt.Errorf("add members: %w", err)
	}
	updated := group.Members
	for _, m := range members {
		if !group.HasMember(m) {
			updated = append(updated, m)
		}
	}
	if _, err := s.repo.GroupChat().UpdateMembers(ctx, groupID, updated); err != nil {
		return nil, fmt.Errorf("add members: %w", err)
	}
	group.Members = updated
	return group, nil
}

// RemoveMembers drops the named members in one rewrite. The creator is
// never removed, even when named.
func (s *chatService) RemoveMembers(ctx context.Context, groupID, actor string, members []string) (*models.GroupChat, error) {
	group, err := s.managedGroup(ctx, groupID, actor)
	if err != nil {
		return nil, fmt.Errorf("remove members: %w", err)
	}
	drop := make(map[string]bool, len(members))
	for _, m := range members {
		drop[m] = true
	}
	var updated []string
	for _, m := range group.Members {
		if drop[m] && m != group.Creator {
			continue
		}
		updated = append(updated, m)
	}
	if _, err := s.repo.GroupChat().UpdateMembers(ctx, groupID, updated); err != nil {
		return nil, fmt.Errorf("remove members: %w", err)
	}
	group.Members = updated
	return group, nil
}

// UnreadSnapshot recomputes the user's unread counts and active
// conversations from disk, one pull of the refresh model.
func (s *chatService) UnreadSnapshot(ctx context.Context, username string) (*events.UnreadSnapshot, error) {
	snapshot := &events.UnreadSnapshot{Username: username, At: time.Now()}

	direct, err := s.repo.Message().ListForUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("unread snapshot: %w", err)
	}
	type convKey struct {
		peer    string
		isGroup bool
	}
	conversations := make(map[convKey]*models.Conversation)
	for _, m := range direct {
		if m.IsGroup() {
			continue
		}
		peer := m.Sender
		if m.Sender == username {
			peer = m.Recipient
		}
		key := convKey{peer: peer}
		conv, ok := conversations[key]
		if !ok {
			conv = &models.Conversation{Peer: peer}
			conversations[key] = conv
		}
		if m.SentAt.After(conv.LastAt) {
			conv.LastAt = m.SentAt
		}
		if m.Recipient == username && !m.Read {
			conv.Unread++
			snapshot.DirectUnread++
		}
	}

	groups, err := s.repo.GroupChat().ListByMember(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("unread snapshot: %w", err)
	}
	for _, g := range groups {
		messages, err := s.repo.Message().ListGroup(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("unread snapshot: %w", err)
		}
		conv := &models.Conversation{Peer: g.ID, IsGroup: true}
		for _, m := range messages {
			if m.SentAt.After(conv.LastAt) {
				conv.LastAt = m.SentAt
			}
			if m.Sender != username && !m.Read {
				conv.Unread++
				snapshot.GroupUnread++
			}
		}
		conversations[convKey{peer: g.ID, isGroup: true}] = conv
	}

	for _, conv := range conversations {
		snapshot.Conversations = append(snapshot.Conversations, *conv)
	}
	sort.Slice(snapshot.Conversations, func(i, j int) bool {
		return snapshot.Conversations[i].LastAt.After(snapshot.Conversations[j].LastAt)
	})
	return snapshot, nil
}

func (s *chatService) NewUnreadPoller(usernames []string, interval time.Duration) *UnreadPoller {
	return &UnreadPoller{
		chat:      s,
		usernames: usernames,
		interval:  interval,
		logger:    s.logger,
	}
}

// managedGroup loads a group and checks the actor may manage membership:
// only the creator can.
func (s *chatService) managedGroup(ctx context.Context, groupID, actor string) (*models.GroupChat, error) {
	group, err := s.repo.GroupChat().GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Creator != actor {
		return nil, fmt.Errorf("only the creator %s manages group %s", group.Creator, groupID)
	}
	return group, nil
}

// userExists resolves a username across the role tables in priority order.
func (s *chatService) userExists(ctx context.Context, username string) error {
	for _, role := range models.RolePriority {
		if _, err := s.repo.User().GetByUsername(ctx, role, username); err == nil {
			return nil
		} else if !repositories.IsNotFoundError(err) {
			return err
		}
	}
	return fmt.Errorf("user %q: %w", username, repositories.ErrNotFound)
}

// UnreadPoller is the periodic pull of unread activity. It is plain
// polling, not push: each tick recomputes snapshots from disk and publishes
// them. Tick is exposed so tests can drive the poller deterministically.
type UnreadPoller struct {
	chat      *chatService
	usernames []string
	interval  time.Duration
	logger    *slog.Logger
}

// Tick performs one refresh pass over all watched users.
func (p *UnreadPoller) Tick(ctx context.Context) error {
	for _, username := range p.usernames {
		snapshot, err := p.chat.UnreadSnapshot(ctx, username)
		if err != nil {
			return err
		}
		if err := p.chat.publisher.PublishUnreadSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// Run ticks on the interval until the context is cancelled. Errors are
// logged and the polling continues; a failed refresh is retried on the
// next tick.
func (p *UnreadPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Tick(ctx); err != nil {
				p.logger.Error("unread poll failed", "error", err)
			}
		}
	}
}
