package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pbidoc"
	"github.com/google/uuid"
)

// datasetTables maps dataset names to the tables storing them.
var datasetTables = map[string]string{
	pbidoc.DatasetPages:   "pages",
	pbidoc.DatasetVisuals: "visuals",
	pbidoc.DatasetColumns: `"columns"`,
}

// ReportService stores reports and their datasets.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport stores a report and every dataset row in a single
// transaction and returns the generated report ID.
func (s *ReportService) CreateReport(ctx context.Context, report *pbidoc.Report) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, title, package_name, checksum, generated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, report.Title, report.PackageName, report.Checksum,
		report.GeneratedAt.UTC().Format(time.RFC3339)); err != nil {
		return "", err
	}

	for _, d := range report.Datasets() {
		if err := insertDataset(ctx, tx, id, d); err != nil {
			return "", fmt.Errorf("failed to insert %s: %w", d.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func insertDataset(ctx context.Context, tx *sql.Tx, reportID string, d *pbidoc.Dataset) error {
	table, ok := datasetTables[d.Name]
	if !ok {
		return pbidoc.Errorf(pbidoc.EINVALID, "unknown dataset %q", d.Name)
	}

	cols := []string{"report_id", "position"}
	for _, c := range d.Columns {
		cols = append(cols, c.Key)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range d.Rows {
		args := make([]any, 0, len(cols))
		args = append(args, reportID, i)
		for _, v := range row {
			arg, err := sqlValue(v)
			if err != nil {
				return err
			}
			args = append(args, arg)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func sqlValue(v any) (any, error) {
	if m, ok := v.(pbidoc.Measures); ok {
		return encodeMeasures(m)
	}
	return v, nil
}

// FindReportByID rebuilds a stored report.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*pbidoc.Report, error) {
	var title, packageName, checksum, generatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT title, package_name, checksum, generated_at
		FROM reports
		WHERE id = ?
	`, id).Scan(&title, &packageName, &checksum, &generatedAt)
	if err == sql.ErrNoRows {
		return nil, pbidoc.Errorf(pbidoc.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	pages, err := s.findPages(ctx, id)
	if err != nil {
		return nil, err
	}
	visuals, err := s.findVisuals(ctx, id)
	if err != nil {
		return nil, err
	}
	columns, err := s.findColumns(ctx, id)
	if err != nil {
		return nil, err
	}

	report := pbidoc.NewReport(title, packageName, pages, visuals, columns)
	report.Checksum = checksum
	if report.GeneratedAt, err = parseRFC3339(generatedAt, "generated_at"); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) findPages(ctx context.Context, id string) ([]pbidoc.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page_name FROM pages WHERE report_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pbidoc.PageRecord
	for rows.Next() {
		var p pbidoc.PageRecord
		if err := rows.Scan(&p.PageName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *ReportService) findVisuals(ctx context.Context, id string) ([]pbidoc.VisualRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page_name, x, y, height, width, visual_type, measures_used
		FROM visuals WHERE report_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pbidoc.VisualRecord
	for rows.Next() {
		var v pbidoc.VisualRecord
		var measures string
		if err := rows.Scan(&v.PageName, &v.X, &v.Y, &v.Height, &v.Width, &v.VisualType, &measures); err != nil {
			return nil, err
		}
		if v.MeasuresUsed, err = decodeMeasures(measures); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *ReportService) findColumns(ctx context.Context, id string) ([]pbidoc.ColumnRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name, column_name, data_type, is_calculated
		FROM "columns" WHERE report_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pbidoc.ColumnRecord
	for rows.Next() {
		var c pbidoc.ColumnRecord
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.IsCalculated); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
