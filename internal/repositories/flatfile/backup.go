package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/storage"
)

// exportTable describes one table file for backup and export purposes.
type exportTable struct {
	name      string
	path      string
	separator string
	columns   []string
}

func exportTables(dataDir string) []exportTable {
	join := func(file string) string { return filepath.Join(dataDir, file) }
	return []exportTable{
		{"admins", join(adminsFile), storage.SeparatorComma, []string{"id", "username", "password", "full_name"}},
		{"receptionists", join(receptionistsFile), storage.SeparatorComma, []string{"id", "username", "password", "full_name"}},
		{"tutors", join(tutorsFile), storage.SeparatorComma, []string{"id", "username", "password", "full_name", "specialization"}},
		{"students", join(studentsFile), storage.SeparatorComma, []string{"id", "username", "password", "full_name"}},
		{"courses", join(coursesFile), storage.SeparatorComma, []string{"id", "name", "tutor_id", "level", "subject", "fee"}},
		{"enrollments", join(enrollmentsFile), storage.SeparatorComma, []string{"id", "student_id", "course_id", "total_fee"}},
		{"payments", join(paymentsFile), storage.SeparatorComma, []string{"id", "enrollment_id", "amount", "date"}},
		{"attendance", join(attendanceFile), storage.SeparatorComma, []string{"id", "student_id", "course_id", "date", "status"}},
		{"requests", join(requestsFile), storage.SeparatorComma, []string{"id", "student_id", "details", "status", "date"}},
		{"messages", join(messagesFile), storage.SeparatorPipe, []string{"sender", "recipient", "group_id", "content", "sent_at", "read"}},
		{"group_chats", join(groupsFile), storage.SeparatorPipe, []string{"id", "name", "creator", "members"}},
		{"feedback", join(feedbackFile), storage.SeparatorComma, []string{"id", "submitter_id", "target_role", "target_id", "subject", "rating", "content", "date", "status"}},
		{"counters", join(countersFile), ":", []string{"entity", "count"}},
	}
}

// Backup copies every existing table file into a dated folder under the
// backup directory. Tables that were never written are simply absent from
// the backup, same as from the data directory.
func (r *FlatFileRepository) Backup(ctx context.Context) (*repositories.BackupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()[:8]
	dir := filepath.Join(r.cfg.BackupDir, fmt.Sprintf("%s_%s", time.Now().Format("2006-01-02"), runID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}

	copied := 0
	for _, t := range r.tables {
		data, err := os.ReadFile(t.path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("backup %s: %w", t.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, filepath.Base(t.path)), data, 0o644); err != nil {
			return nil, fmt.Errorf("backup %s: %w", t.name, err)
		}
		copied++
	}
	r.logger.Info("backup completed", "dir", dir, "files", copied)
	return &repositories.BackupResult{Dir: dir, Files: copied}, nil
}

// ExportCSV converts every table to comma-separated form with a literal
// header row, regardless of the table's native separator.
func (r *FlatFileRepository) ExportCSV(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, t := range r.tables {
		rows, err := readTableRows(t)
		if err != nil {
			return fmt.Errorf("export csv %s: %w", t.name, err)
		}
		f, err := os.Create(filepath.Join(dir, t.name+".csv"))
		if err != nil {
			return fmt.Errorf("export csv %s: %w", t.name, err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(t.columns); err != nil {
			f.Close()
			return fmt.Errorf("export csv %s: %w", t.name, err)
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				f.Close()
				return fmt.Errorf("export csv %s: %w", t.name, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return fmt.Errorf("export csv %s: %w", t.name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("export csv %s: %w", t.name, err)
		}
	}
	r.logger.Info("csv export completed", "dir", dir, "tables", len(r.tables))
	return nil
}

// ExportXLSX writes every table as one sheet of a single spreadsheet.
func (r *FlatFileRepository) ExportXLSX(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	book := excelize.NewFile()
	defer book.Close()

	for i, t := range r.tables {
		if i == 0 {
			if err := book.SetSheetName("Sheet1", t.name); err != nil {
				return fmt.Errorf("export xlsx %s: %w", t.name, err)
			}
		} else if _, err := book.NewSheet(t.name); err != nil {
			return fmt.Errorf("export xlsx %s: %w", t.name, err)
		}

		rows, err := readTableRows(t)
		if err != nil {
			return fmt.Errorf("export xlsx %s: %w", t.name, err)
		}
		all := append([][]string{t.columns}, rows...)
		for n, row := range all {
			cell, err := excelize.CoordinatesToCellName(1, n+1)
			if err != nil {
				return fmt.Errorf("export xlsx %s: %w", t.name, err)
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := book.SetSheetRow(t.name, cell, &values); err != nil {
				return fmt.Errorf("export xlsx %s: %w", t.name, err)
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	r.logger.Info("xlsx export completed", "path", path)
	return nil
}

// readTableRows returns the record lines of one table file split into
// fields, skipping comments and blanks. A missing file is an empty table.
func readTableRows(t exportTable) ([][]string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var rows [][]string
	for _, line := range strings.Split(string(data), "\n") {
		if !storage.IsRecordLine(line) {
			continue
		}
		rows = append(rows, strings.Split(line, t.separator))
	}
	return rows, nil
}
