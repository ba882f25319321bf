package models

import "time"

// Message is one line of the message log. It has no id of its own: its
// position in the file is its identity. A message is either direct
// (Recipient set, GroupID empty) or a group message (GroupID set).
type Message struct {
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient,omitempty"`
	GroupID   string    `json:"group_id,omitempty"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
	Read      bool      `json:"read"`
}

func (m Message) IsGroup() bool { return m.GroupID != "" }

// GroupChat is a named chat with a flat member list. The creator is always a
// member. Ids come from the counter file, so they are bare integers.
type GroupChat struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Creator string   `json:"creator"`
	Members []string `json:"members"`
}

func (g GroupChat) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}

// Conversation is one entry of a user's active-conversation view, refreshed
// by the unread poller.
type Conversation struct {
	Peer    string    `json:"peer"` // username or group id
	IsGroup bool      `json:"is_group"`
	Unread  int       `json:"unread"`
	LastAt  time.Time `json:"last_at"`
}
