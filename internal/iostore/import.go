package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// LoadBoard decodes a YAML (or JSON) board snapshot.
func LoadBoard(r io.Reader) (schema.Board, error) {
	var board schema.Board
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&board); err != nil {
		if err == io.EOF {
			return board, fmt.Errorf("%w: empty board document", contract.ErrInvalidInput)
		}
		return board, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
	}
	return board, nil
}

// importPlan is a validated board flattened into table rows.
type importPlan struct {
	projects [][]any
	sprints  [][]any
	tasks    [][]any
	changes  [][]any
	worklogs [][]any
}

func (p *importPlan) summary() schema.ImportSummary {
	return schema.ImportSummary{
		Projects:  len(p.projects),
		Sprints:   len(p.sprints),
		Tasks:     len(p.tasks),
		Changelog: len(p.changes),
		Worklogs:  len(p.worklogs),
	}
}

// ValidateBoard checks a snapshot without writing it.
func ValidateBoard(board schema.Board) (schema.ImportSummary, error) {
	plan, err := planImport(board)
	if err != nil {
		return schema.ImportSummary{}, err
	}
	return plan.summary(), nil
}

// planImport validates every entity of the board and converts it into insert arguments.
func planImport(board schema.Board) (*importPlan, error) {
	plan := &importPlan{}
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", contract.ErrInvalidInput, fmt.Sprintf(format, args...))
	}
	seen := map[string]map[int64]bool{
		"project": {}, "sprint": {}, "task": {}, "change": {}, "worklog": {},
	}
	claim := func(kind string, id int64) error {
		if id <= 0 {
			return invalid("%s id must be positive (got %d)", kind, id)
		}
		if seen[kind][id] {
			return invalid("duplicate %s id %d", kind, id)
		}
		seen[kind][id] = true
		return nil
	}

	for _, p := range board.Projects {
		if err := claim("project", p.ID); err != nil {
			return nil, err
		}
		plan.projects = append(plan.projects, []any{p.ID, p.Name, p.Created.Unix()})

		sprints := make(map[int64]bool, len(p.Sprints))
		for _, s := range p.Sprints {
			if err := claim("sprint", s.ID); err != nil {
				return nil, err
			}
			sprints[s.ID] = true
			plan.sprints = append(plan.sprints, []any{s.ID, p.ID, s.Name, unixOrNil(s.Started), unixOrNil(s.Ends)})
		}

		for _, t := range p.Tasks {
			if err := claim("task", t.ID); err != nil {
				return nil, err
			}
			var sprintID any
			if t.Sprint != 0 {
				if !sprints[t.Sprint] {
					return nil, invalid("task %d references sprint %d outside project %d", t.ID, t.Sprint, p.ID)
				}
				sprintID = t.Sprint
			}
			stage, err := schema.ParseStage(t.Stage)
			if err != nil {
				return nil, invalid("task %d: %v", t.ID, err)
			}
			estimate, err := boardMinutes(t.Estimate)
			if err != nil {
				return nil, invalid("task %d estimate: %v", t.ID, err)
			}
			if t.Created.IsZero() {
				return nil, invalid("task %d has no creation instant", t.ID)
			}
			plan.tasks = append(plan.tasks, []any{t.ID, p.ID, sprintID, t.Name, string(stage), estimate, t.Created.Unix()})

			for _, c := range t.Changelog {
				if err := claim("change", c.ID); err != nil {
					return nil, err
				}
				oldValue, newValue, err := boardChangeValues(c)
				if err != nil {
					return nil, invalid("task %d change %d: %v", t.ID, c.ID, err)
				}
				plan.changes = append(plan.changes, []any{c.ID, t.ID, c.Field, oldValue, newValue, c.At.Unix()})
			}

			for _, w := range t.Worklogs {
				if err := claim("worklog", w.ID); err != nil {
					return nil, err
				}
				minutes, err := boardMinutes(w.Duration)
				if err != nil {
					return nil, invalid("task %d worklog %d: %v", t.ID, w.ID, err)
				}
				plan.worklogs = append(plan.worklogs, []any{w.ID, t.ID, w.Author, w.Description, minutes, w.At.Unix()})
			}
		}
	}
	return plan, nil
}

// boardChangeValues converts a changelog record to its stored form: minutes
// for estimates, canonical names for stages.
func boardChangeValues(c schema.BoardChange) (string, string, error) {
	switch schema.ChangeField(c.Field) {
	case schema.EstimateField:
		oldValue, err := boardMinutes(c.Old)
		if err != nil {
			return "", "", err
		}
		newValue, err := boardMinutes(c.New)
		if err != nil {
			return "", "", err
		}
		return strconv.FormatInt(oldValue, 10), strconv.FormatInt(newValue, 10), nil
	case schema.StageField:
		from, err := schema.ParseStage(c.Old)
		if err != nil {
			return "", "", err
		}
		to, err := schema.ParseStage(c.New)
		if err != nil {
			return "", "", err
		}
		return string(from), string(to), nil
	default:
		return "", "", fmt.Errorf("unknown field %q (expected estimate or stage)", c.Field)
	}
}

// boardMinutes parses a Go duration that must be a non-negative whole number of minutes.
func boardMinutes(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %s is negative", s)
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("duration %s is not a whole number of minutes", s)
	}
	return int64(d / time.Minute), nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

// ImportBoard implements the HistoryStore interface. Every entity in the board
// replaces the stored row with the same id; a task's changelog and worklogs
// are replaced as a whole.
func (hs *HistoryStoreImpl) ImportBoard(ctx context.Context, board schema.Board) (schema.ImportSummary, error) {
	plan, err := planImport(board)
	if err != nil {
		return schema.ImportSummary{}, err
	}

	tx, err := hs.db.BeginTx(ctx, nil)
	if err != nil {
		return schema.ImportSummary{}, fmt.Errorf("failed to begin import: %w", err)
	}
	if err := hs.writePlan(ctx, tx, plan); err != nil {
		_ = tx.Rollback()
		return schema.ImportSummary{}, err
	}
	if err := tx.Commit(); err != nil {
		return schema.ImportSummary{}, fmt.Errorf("failed to commit import: %w", err)
	}

	summary := plan.summary()
	contract.Logger.Info().
		Int("projects", summary.Projects).
		Int("sprints", summary.Sprints).
		Int("tasks", summary.Tasks).
		Int("changelog", summary.Changelog).
		Int("worklogs", summary.Worklogs).
		Msg("board imported")
	return summary, nil
}

func (hs *HistoryStoreImpl) writePlan(ctx context.Context, tx *sql.Tx, plan *importPlan) error {
	exec := func(query string, args ...any) error {
		if _, err := tx.ExecContext(ctx, rebind(hs.backend, query), args...); err != nil {
			return fmt.Errorf("import failed on %q: %w", query, err)
		}
		return nil
	}

	for _, row := range plan.projects {
		if err := exec(`DELETE FROM board_projects WHERE project_id = ?`, row[0]); err != nil {
			return err
		}
		if err := exec(`INSERT INTO board_projects (project_id, name, created_at) VALUES (?, ?, ?)`, row...); err != nil {
			return err
		}
	}
	for _, row := range plan.sprints {
		if err := exec(`DELETE FROM board_sprints WHERE sprint_id = ?`, row[0]); err != nil {
			return err
		}
		if err := exec(`INSERT INTO board_sprints (sprint_id, project_id, name, started_at, ends_at) VALUES (?, ?, ?, ?, ?)`, row...); err != nil {
			return err
		}
	}
	for _, row := range plan.tasks {
		for _, q := range []string{
			`DELETE FROM board_tasks WHERE task_id = ?`,
			`DELETE FROM board_changelog WHERE task_id = ?`,
			`DELETE FROM board_worklogs WHERE task_id = ?`,
		} {
			if err := exec(q, row[0]); err != nil {
				return err
			}
		}
		if err := exec(`INSERT INTO board_tasks (task_id, project_id, sprint_id, name, stage, original_estimate_minutes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, row...); err != nil {
			return err
		}
	}
	for _, row := range plan.changes {
		if err := exec(`DELETE FROM board_changelog WHERE change_id = ?`, row[0]); err != nil {
			return err
		}
		if err := exec(`INSERT INTO board_changelog (change_id, task_id, field, old_value, new_value, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`, row...); err != nil {
			return err
		}
	}
	for _, row := range plan.worklogs {
		if err := exec(`DELETE FROM board_worklogs WHERE worklog_id = ?`, row[0]); err != nil {
			return err
		}
		if err := exec(`INSERT INTO board_worklogs (worklog_id, task_id, author, description, duration_minutes, occurred_at)
			VALUES (?, ?, ?, ?, ?, ?)`, row...); err != nil {
			return err
		}
	}
	return nil
}
