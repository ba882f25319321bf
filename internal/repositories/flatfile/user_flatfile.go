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

type roleTableSpec struct {
	file   string
	header string
	prefix string
	base   int
}

var roleTables = map[models.Role]roleTableSpec{
	models.RoleAdmin:        {adminsFile, "id,username,password,full_name", adminPrefix, adminBase},
	models.RoleReceptionist: {receptionistsFile, "id,username,password,full_name", receptionistPref, receptionistBase},
	models.RoleTutor:        {tutorsFile, "id,username,password,full_name,specialization", tutorPrefix, tutorBase},
	models.RoleStudent:      {studentsFile, "id,username,password,full_name", studentPrefix, studentBase},
}

// userFlatFile keeps one table per role. The role is part of the address,
// never part of the row.
type userFlatFile struct {
	tables map[models.Role]*storage.Table[*models.UserAccount]
	allocs map[models.Role]storage.IDAllocator
	logger *slog.Logger
}

func newUserFlatFile(dataDir string, logger *slog.Logger) *userFlatFile {
	r := &userFlatFile{
		tables: make(map[models.Role]*storage.Table[*models.UserAccount]),
		allocs: make(map[models.Role]storage.IDAllocator),
		logger: logger,
	}
	for role, spec := range roleTables {
		table := storage.NewTable(
			filepath.Join(dataDir, spec.file),
			string(role)+"s",
			spec.header,
			userCodec(role),
			logger,
		)
		r.tables[role] = table
		r.allocs[role] = storage.NewPrefixAllocator(spec.prefix, spec.base, func() ([]string, error) {
			accounts, err := table.Scan(context.Background())
			if err != nil {
				return nil, err
			}
			ids := make([]string, 0, len(accounts))
			for _, a := range accounts {
				ids = append(ids, a.ID)
			}
			return ids, nil
		})
	}
	return r
}

func (r *userFlatFile) table(role models.Role) (*storage.Table[*models.UserAccount], error) {
	t, ok := r.tables[role]
	if !ok {
		return nil, fmt.Errorf("no table for role %q", role)
	}
	return t, nil
}

func (r *userFlatFile) Create(ctx context.Context, account *models.UserAccount) error {
	t, err := r.table(account.Role)
	if err != nil {
		return err
	}
	if _, err := r.GetByUsername(ctx, account.Role, account.Username); err == nil {
		return fmt.Errorf("username %q in %s table: %w", account.Username, account.Role, repositories.ErrDuplicate)
	} else if !repositories.IsNotFoundError(err) {
		return err
	}

	id, err := r.allocs[account.Role].Next()
	if err != nil {
		return err
	}
	account.ID = id
	if err := t.Append(ctx, account); err != nil {
		return err
	}
	r.logger.Info("user account created", "role", account.Role, "id", account.ID)
	return nil
}

func (r *userFlatFile) GetByID(ctx context.Context, role models.Role, id string) (*models.UserAccount, error) {
	t, err := r.table(role)
	if err != nil {
		return nil, err
	}
	accounts, err := t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("user %s %s: %w", role, id, repositories.ErrNotFound)
}

func (r *userFlatFile) GetByUsername(ctx context.Context, role models.Role, username string) (*models.UserAccount, error) {
	t, err := r.table(role)
	if err != nil {
		return nil, err
	}
	accounts, err := t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, fmt.Errorf("user %s %q: %w", role, username, repositories.ErrNotFound)
}

func (r *userFlatFile) List(ctx context.Context, role models.Role) ([]*models.UserAccount, error) {
	t, err := r.table(role)
	if err != nil {
		return nil, err
	}
	return t.Scan(ctx)
}

func (r *userFlatFile) FindByCredentials(ctx context.Context, username, password string) (*models.UserAccount, error) {
	for _, role := range models.RolePriority {
		accounts, err := r.tables[role].Scan(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			if a.Username == username && a.Password == password {
				return a, nil
			}
		}
	}
	return nil, fmt.Errorf("credentials for %q: %w", username, repositories.ErrNotFound)
}

func (r *userFlatFile) Update(ctx context.Context, account *models.UserAccount) (bool, error) {
	t, err := r.table(account.Role)
	if err != nil {
		return false, err
	}
	return t.Update(ctx,
		func(a *models.UserAccount) bool { return a.ID == account.ID },
		func(*models.UserAccount) *models.UserAccount { return account },
	)
}

func (r *userFlatFile) Delete(ctx context.Context, role models.Role, id string) (bool, error) {
	t, err := r.table(role)
	if err != nil {
		return false, err
	}
	return t.Delete(ctx, func(a *models.UserAccount) bool { return a.ID == id })
}
