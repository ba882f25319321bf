package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/storage"
)

// groupFlatFile stores group chats in the pipe-separated legacy layout.
// Group ids come from the counter file, not from a prefix scan.
type groupFlatFile struct {
	table  *storage.Table[*models.GroupChat]
	alloc  storage.IDAllocator
	logger *slog.Logger
}

func newGroupFlatFile(dataDir string, logger *slog.Logger) *groupFlatFile {
	return &groupFlatFile{
		table: storage.NewTable(
			filepath.Join(dataDir, groupsFile),
			"group_chats",
			"id|name|creator|members",
			groupCodec(),
			logger,
		),
		alloc:  storage.NewCounterAllocator(filepath.Join(dataDir, countersFile), groupEntity),
		logger: logger,
	}
}

func (r *groupFlatFile) Create(ctx context.Context, group *models.GroupChat) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	group.ID = id
	if !group.HasMember(group.Creator) {
		group.Members = append([]string{group.Creator}, group.Members...)
	}
	return r.table.Append(ctx, group)
}

func (r *groupFlatFile) GetByID(ctx context.Context, id string) (*models.GroupChat, error) {
	groups, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("group chat %s: %w", id, repositories.ErrNotFound)
}

func (r *groupFlatFile) List(ctx context.Context) ([]*models.GroupChat, error) {
	return r.table.Scan(ctx)
}

func (r *groupFlatFile) ListByMember(ctx context.Context, username string) ([]*models.GroupChat, error) {
	groups, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.GroupChat
	for _, g := range groups {
		if g.HasMember(username) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *groupFlatFile) UpdateMembers(ctx context.Context, id string, members []string) (bool, error) {
	return r.table.Update(ctx,
		func(g *models.GroupChat) bool { return g.ID == id },
		func(g *models.GroupChat) *models.GroupChat {
			updated := *g
			updated.Members = members
			return &updated
		},
	)
}

func (r *groupFlatFile) Delete(ctx context.Context, id string) (bool, error) {
	return r.table.Delete(ctx, func(g *models.GroupChat) bool { return g.ID == id })
}
