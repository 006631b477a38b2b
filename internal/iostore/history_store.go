package iostore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Table names of the board history.
const (
	projectsTable  = "board_projects"
	sprintsTable   = "board_sprints"
	tasksTable     = "board_tasks"
	changelogTable = "board_changelog"
	worklogsTable  = "board_worklogs"
)

// boardTables lists the history tables in creation order.
var boardTables = []string{projectsTable, sprintsTable, tasksTable, changelogTable, worklogsTable}

// HistoryStoreImpl reads task histories from the board tables.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// NewHistoryStore connects to the history database and creates any missing board table.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return nil, fmt.Errorf("the history store cannot use the %s backend", backend)
	}
	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := ensureBoardSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	contract.Logger.Debug().Str("backend", string(backend)).Msg("history store ready")
	return &HistoryStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// ensureBoardSchema applies every embedded up migration. The statements are idempotent.
func ensureBoardSchema(db *sql.DB) error {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	for _, name := range files {
		content, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

func (hs *HistoryStoreImpl) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return hs.db.QueryRowContext(ctx, rebind(hs.backend, query), args...)
}

func (hs *HistoryStoreImpl) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return hs.db.QueryContext(ctx, rebind(hs.backend, query), args...)
}

// GetScope implements the HistoryStore interface.
func (hs *HistoryStoreImpl) GetScope(ctx context.Context, kind schema.ScopeKind, id int64) (schema.Scope, error) {
	scope := schema.Scope{Kind: kind, ID: id}
	switch kind {
	case schema.ProjectScope:
		var created int64
		err := hs.queryRow(ctx, `SELECT name, created_at FROM board_projects WHERE project_id = ?`, id).
			Scan(&scope.Name, &created)
		if err != nil {
			return scope, lookupError(err, "project", id)
		}
		start := unixTime(created)
		scope.ProjectID = id
		scope.Start = &start

	case schema.SprintScope:
		var started, ends sql.NullInt64
		err := hs.queryRow(ctx, `SELECT project_id, name, started_at, ends_at FROM board_sprints WHERE sprint_id = ?`, id).
			Scan(&scope.ProjectID, &scope.Name, &started, &ends)
		if err != nil {
			return scope, lookupError(err, "sprint", id)
		}
		scope.Start = nullableTime(started)
		scope.End = nullableTime(ends)

	default:
		return scope, fmt.Errorf("%w: unknown scope kind %q", contract.ErrInvalidInput, kind)
	}
	return scope, nil
}

// scopeColumn is the board_tasks column selecting the tasks of a scope.
func scopeColumn(kind schema.ScopeKind) (string, error) {
	switch kind {
	case schema.ProjectScope:
		return "project_id", nil
	case schema.SprintScope:
		return "sprint_id", nil
	default:
		return "", fmt.Errorf("%w: unknown scope kind %q", contract.ErrInvalidInput, kind)
	}
}

// ListTaskHistories implements the HistoryStore interface.
func (hs *HistoryStoreImpl) ListTaskHistories(ctx context.Context, scope schema.Scope) ([]schema.TaskHistory, error) {
	column, err := scopeColumn(scope.Kind)
	if err != nil {
		return nil, err
	}
	return hs.loadHistories(ctx, column, scope.ID)
}

// GetTaskHistory implements the HistoryStore interface.
func (hs *HistoryStoreImpl) GetTaskHistory(ctx context.Context, taskID int64) (schema.TaskHistory, error) {
	histories, err := hs.loadHistories(ctx, "task_id", taskID)
	if err != nil {
		return schema.TaskHistory{}, err
	}
	if len(histories) == 0 {
		return schema.TaskHistory{}, fmt.Errorf("%w: task %d", contract.ErrNotFound, taskID)
	}
	return histories[0], nil
}

// loadHistories fetches tasks, changelog and worklogs in one query per table
// and joins them by task id. column is a trusted board_tasks column name.
func (hs *HistoryStoreImpl) loadHistories(ctx context.Context, column string, value int64) ([]schema.TaskHistory, error) {
	rows, err := hs.query(ctx, fmt.Sprintf(`SELECT task_id, project_id, sprint_id, name, stage, original_estimate_minutes, created_at
		FROM board_tasks WHERE %s = ? ORDER BY task_id`, column), value)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	var histories []schema.TaskHistory
	index := make(map[int64]int)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		index[task.ID] = len(histories)
		histories = append(histories, schema.TaskHistory{Task: task})
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if len(histories) == 0 {
		return nil, nil
	}

	rows, err = hs.query(ctx, fmt.Sprintf(`SELECT c.change_id, c.task_id, c.field, c.old_value, c.new_value, c.created_at
		FROM board_changelog c JOIN board_tasks t ON t.task_id = c.task_id
		WHERE t.%s = ? ORDER BY c.created_at, c.change_id`, column), value)
	if err != nil {
		return nil, fmt.Errorf("failed to load changelog: %w", err)
	}
	for rows.Next() {
		entry, err := scanChangelogEntry(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		if err := applyChange(&histories[index[entry.TaskID]], entry); err != nil {
			_ = rows.Close()
			return nil, err
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("failed to load changelog: %w", err)
	}

	rows, err = hs.query(ctx, fmt.Sprintf(`SELECT w.worklog_id, w.task_id, w.author, w.description, w.duration_minutes, w.occurred_at
		FROM board_worklogs w JOIN board_tasks t ON t.task_id = w.task_id
		WHERE t.%s = ? ORDER BY w.occurred_at, w.worklog_id`, column), value)
	if err != nil {
		return nil, fmt.Errorf("failed to load worklogs: %w", err)
	}
	for rows.Next() {
		wl, err := scanWorklog(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		h := &histories[index[wl.TaskID]]
		h.Worklogs = append(h.Worklogs, wl)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("failed to load worklogs: %w", err)
	}
	return histories, nil
}

// applyChange parses a changelog row into the matching history slice.
// Fields other than estimate and stage are not part of any series.
func applyChange(h *schema.TaskHistory, e schema.ChangelogEntry) error {
	switch e.Field {
	case schema.EstimateField:
		oldValue, err := parseMinutes(e.OldValue)
		if err != nil {
			return fmt.Errorf("change %d: %w", e.ID, err)
		}
		newValue, err := parseMinutes(e.NewValue)
		if err != nil {
			return fmt.Errorf("change %d: %w", e.ID, err)
		}
		h.EstimateChanges = append(h.EstimateChanges, schema.EstimateChange{ID: e.ID, At: e.CreatedAt, Old: oldValue, New: newValue})

	case schema.StageField:
		from, err := schema.ParseStage(e.OldValue)
		if err != nil {
			return fmt.Errorf("%w: change %d: %v", contract.ErrInvalidInput, e.ID, err)
		}
		to, err := schema.ParseStage(e.NewValue)
		if err != nil {
			return fmt.Errorf("%w: change %d: %v", contract.ErrInvalidInput, e.ID, err)
		}
		h.StageChanges = append(h.StageChanges, schema.StageChange{At: e.CreatedAt, From: from, To: to, ChangeID: e.ID})
	}
	return nil
}

// parseMinutes reads a stored estimate. An empty value means no estimate.
func parseMinutes(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: estimate %q is not a number of minutes", contract.ErrInvalidInput, s)
	}
	return time.Duration(n) * time.Minute, nil
}

func scanTask(row rowScanner) (schema.Task, error) {
	var task schema.Task
	var sprintID sql.NullInt64
	var stage string
	var estimate, created int64
	if err := row.Scan(&task.ID, &task.ProjectID, &sprintID, &task.Name, &stage, &estimate, &created); err != nil {
		return task, err
	}
	parsed, err := schema.ParseStage(stage)
	if err != nil {
		return task, fmt.Errorf("%w: task %d: %v", contract.ErrInvalidInput, task.ID, err)
	}
	if sprintID.Valid {
		task.SprintID = &sprintID.Int64
	}
	task.Stage = parsed
	task.OriginalEstimate = time.Duration(estimate) * time.Minute
	task.CreatedAt = unixTime(created)
	return task, nil
}

func scanChangelogEntry(row rowScanner) (schema.ChangelogEntry, error) {
	var e schema.ChangelogEntry
	var field string
	var created int64
	if err := row.Scan(&e.ID, &e.TaskID, &field, &e.OldValue, &e.NewValue, &created); err != nil {
		return e, err
	}
	e.Field = schema.ChangeField(field)
	e.CreatedAt = unixTime(created)
	return e, nil
}

func scanWorklog(row rowScanner) (schema.Worklog, error) {
	var w schema.Worklog
	var minutes, occurred int64
	if err := row.Scan(&w.ID, &w.TaskID, &w.Author, &w.Description, &minutes, &occurred); err != nil {
		return w, err
	}
	w.Duration = time.Duration(minutes) * time.Minute
	w.OccurredAt = unixTime(occurred)
	return w, nil
}

// GetTask implements the HistoryStore interface.
func (hs *HistoryStoreImpl) GetTask(ctx context.Context, id int64) (schema.Task, error) {
	row := hs.queryRow(ctx, `SELECT task_id, project_id, sprint_id, name, stage, original_estimate_minutes, created_at
		FROM board_tasks WHERE task_id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		return task, lookupError(err, "task", id)
	}
	return task, nil
}

// GetChangelogEntry implements the HistoryStore interface.
func (hs *HistoryStoreImpl) GetChangelogEntry(ctx context.Context, id int64) (schema.ChangelogEntry, error) {
	row := hs.queryRow(ctx, `SELECT change_id, task_id, field, old_value, new_value, created_at
		FROM board_changelog WHERE change_id = ?`, id)
	entry, err := scanChangelogEntry(row)
	if err != nil {
		return entry, lookupError(err, "changelog entry", id)
	}
	return entry, nil
}

// GetWorklog implements the HistoryStore interface.
func (hs *HistoryStoreImpl) GetWorklog(ctx context.Context, id int64) (schema.Worklog, error) {
	row := hs.queryRow(ctx, `SELECT worklog_id, task_id, author, description, duration_minutes, occurred_at
		FROM board_worklogs WHERE worklog_id = ?`, id)
	wl, err := scanWorklog(row)
	if err != nil {
		return wl, lookupError(err, "worklog", id)
	}
	return wl, nil
}

// fingerprintQueries select every row that feeds the engine for a scope, in a fixed order.
var fingerprintQueries = []string{
	`SELECT t.task_id, t.project_id, t.sprint_id, t.name, t.stage, t.original_estimate_minutes, t.created_at
		FROM board_tasks t WHERE t.%s = ? ORDER BY t.task_id`,
	`SELECT c.change_id, c.task_id, c.field, c.old_value, c.new_value, c.created_at
		FROM board_changelog c JOIN board_tasks t ON t.task_id = c.task_id WHERE t.%s = ? ORDER BY c.change_id`,
	`SELECT w.worklog_id, w.task_id, w.author, w.description, w.duration_minutes, w.occurred_at
		FROM board_worklogs w JOIN board_tasks t ON t.task_id = w.task_id WHERE t.%s = ? ORDER BY w.worklog_id`,
}

// Fingerprint implements the HistoryStore interface. It is a SHA-256 over the
// scope and the content of every task, changelog and worklog row in it, so any
// edited value yields a new fingerprint.
func (hs *HistoryStoreImpl) Fingerprint(ctx context.Context, scope schema.Scope) (string, error) {
	column, err := scopeColumn(scope.Kind)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	writeField(h, string(scope.Kind))
	writeField(h, strconv.FormatInt(scope.ID, 10))
	if scope.Start != nil {
		writeField(h, strconv.FormatInt(scope.Start.Unix(), 10))
	}
	for _, q := range fingerprintQueries {
		if err := hs.hashRows(ctx, h, fmt.Sprintf(q, column), scope.ID); err != nil {
			return "", fmt.Errorf("failed to fingerprint scope: %w", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashRows writes every column of every row of the query into h, with markers
// for table and row boundaries and for NULLs.
func (hs *HistoryStoreImpl) hashRows(ctx context.Context, h hash.Hash, query string, args ...any) error {
	rows, err := hs.query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	writeField(h, "table")
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		writeField(h, "row")
		for _, v := range values {
			if !v.Valid {
				writeField(h, "\x00null")
				continue
			}
			writeField(h, v.String)
		}
	}
	return rows.Err()
}

// writeField writes a length-prefixed value.
func writeField(h hash.Hash, value string) {
	_, _ = fmt.Fprintf(h, "%d:%s;", len(value), value)
}

// Close closes the underlying DB connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns row counts, the latest recorded activity and the storage size.
func (hs *HistoryStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
		TableRows: make(map[string]int64, len(boardTables)),
	}
	if hs.db == nil {
		return status, nil
	}

	for _, table := range boardTables {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows of %s: %w", table, err)
		}
		status.TableRows[table] = count
	}

	var latest int64
	row := hs.db.QueryRow(`SELECT COALESCE(MAX(ts), 0) FROM (
		SELECT MAX(created_at) AS ts FROM board_tasks
		UNION ALL SELECT MAX(created_at) FROM board_changelog
		UNION ALL SELECT MAX(occurred_at) FROM board_worklogs) activity`)
	if err := row.Scan(&latest); err != nil {
		return status, fmt.Errorf("failed to get latest activity: %w", err)
	}
	if latest > 0 {
		status.LatestActivity = unixTime(latest)
	}

	if hs.backend == schema.SQLiteBackend {
		status.SizeBytes = tableSize(hs.db, hs.backend, hs.connStr, "")
	} else {
		for _, table := range boardTables {
			status.SizeBytes += tableSize(hs.db, hs.backend, hs.connStr, table)
		}
	}
	return status, nil
}

// closeRows closes a result set and reports any iteration error.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

func lookupError(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", contract.ErrNotFound, entity, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func nullableTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := unixTime(v.Int64)
	return &t
}
