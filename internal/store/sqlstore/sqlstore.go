package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/project-tracker-api/internal/platform/metrics"
	"github.com/nulzo/project-tracker-api/internal/store"
	"github.com/nulzo/project-tracker-api/internal/store/model"
	"go.uber.org/zap"
)

const (
	clientColumns  = `id, name, email, phone, created_at`
	projectColumns = `id, client_id, name, description, status, start_date, due_date, created_at`
	taskColumns    = `id, project_id, title, description, status, priority, deadline, created_at`

	// id breaks ties between rows created within the same clock tick
	newestFirst = ` ORDER BY created_at DESC, id DESC`
)

// Store implements store.Repository on top of sqlx. Queries are written with
// '?' placeholders and rebound for the active driver.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func New(db *sqlx.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Clients() store.ClientRepository {
	return &clientRepo{s: s}
}

func (s *Store) Projects() store.ProjectRepository {
	return &projectRepo{s: s}
}

func (s *Store) Tasks() store.TaskRepository {
	return &taskRepo{s: s}
}

// get scans a single row into dest, mapping sql.ErrNoRows to store.ErrNotFound.
func (s *Store) get(ctx context.Context, op, table string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQueryDuration(op, table, time.Since(start))
		return store.ErrNotFound
	}
	s.observe(op, table, start, err)
	return err
}

func (s *Store) selectRows(ctx context.Context, op, table string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
	s.observe(op, table, start, err)
	return err
}

func (s *Store) observe(op, table string, start time.Time, err error) {
	metrics.RecordDBQueryDuration(op, table, time.Since(start))
	if err != nil {
		metrics.IncrementDBQueryErrors(op, table)
		s.logger.Debug("Store query failed",
			zap.String("operation", op),
			zap.String("table", table),
			zap.Error(err),
		)
	}
}

func (s *Store) count(ctx context.Context, table, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := s.get(ctx, "count", table, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) delete(ctx context.Context, table string, id int64) error {
	var deleted int64
	return s.get(ctx, "delete", table, &deleted, `DELETE FROM `+table+` WHERE id = ? RETURNING id`, id)
}

type clientRepo struct {
	s *Store
}

func (r *clientRepo) List(ctx context.Context) ([]model.Client, error) {
	clients := []model.Client{}
	err := r.s.selectRows(ctx, "select", "clients", &clients, `SELECT `+clientColumns+` FROM clients`+newestFirst)
	return clients, err
}

func (r *clientRepo) Count(ctx context.Context) (int64, error) {
	return r.s.count(ctx, "clients", `SELECT COUNT(*) FROM clients`)
}

func (r *clientRepo) Get(ctx context.Context, id int64) (*model.Client, error) {
	var c model.Client
	if err := r.s.get(ctx, "select", "clients", &c, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, f model.ClientFields) (*model.Client, error) {
	var c model.Client
	query := `
	INSERT INTO clients (name, email, phone)
	VALUES (?, ?, ?)
	RETURNING ` + clientColumns
	if err := r.s.get(ctx, "insert", "clients", &c, query, f.Name, f.Email, f.Phone); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Update(ctx context.Context, id int64, f model.ClientFields) (*model.Client, error) {
	var c model.Client
	query := `
	UPDATE clients SET name = ?, email = ?, phone = ?
	WHERE id = ?
	RETURNING ` + clientColumns
	if err := r.s.get(ctx, "update", "clients", &c, query, f.Name, f.Email, f.Phone, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	return r.s.delete(ctx, "clients", id)
}

type projectRepo struct {
	s *Store
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	err := r.s.selectRows(ctx, "select", "projects", &projects, `SELECT `+projectColumns+` FROM projects`+newestFirst)
	return projects, err
}

func (r *projectRepo) Count(ctx context.Context) (int64, error) {
	return r.s.count(ctx, "projects", `SELECT COUNT(*) FROM projects`)
}

func (r *projectRepo) Recent(ctx context.Context, limit int) ([]model.RecentProject, error) {
	projects := []model.RecentProject{}
	query := `
	SELECT
		p.id, p.client_id, p.name, p.description, p.status, p.start_date, p.due_date, p.created_at,
		c.id AS "client.id",
		c.name AS "client.name"
	FROM projects p
	JOIN clients c ON c.id = p.client_id
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT ?`
	err := r.s.selectRows(ctx, "select", "projects", &projects, query, limit)
	return projects, err
}

func (r *projectRepo) Get(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	if err := r.s.get(ctx, "select", "projects", &p, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListByClient(ctx context.Context, clientID int64) ([]model.Project, error) {
	projects := []model.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE client_id = ?` + newestFirst
	err := r.s.selectRows(ctx, "select", "projects", &projects, query, clientID)
	return projects, err
}

func (r *projectRepo) Create(ctx context.Context, f model.ProjectFields) (*model.Project, error) {
	var p model.Project
	query := `
	INSERT INTO projects (client_id, name, description, status, start_date, due_date)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING ` + projectColumns
	err := r.s.get(ctx, "insert", "projects", &p, query,
		f.ClientID, f.Name, f.Description, nullString(f.Status), nullDate(f.StartDate), nullDate(f.DueDate),
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Update(ctx context.Context, id int64, f model.ProjectFields) (*model.Project, error) {
	var p model.Project
	query := `
	UPDATE projects
	SET client_id = ?, name = ?, description = ?, status = ?, start_date = ?, due_date = ?
	WHERE id = ?
	RETURNING ` + projectColumns
	err := r.s.get(ctx, "update", "projects", &p, query,
		f.ClientID, f.Name, f.Description, nullString(f.Status), nullDate(f.StartDate), nullDate(f.DueDate), id,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	return r.s.delete(ctx, "projects", id)
}

type taskRepo struct {
	s *Store
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.s.selectRows(ctx, "select", "tasks", &tasks, `SELECT `+taskColumns+` FROM tasks`+newestFirst)
	return tasks, err
}

func (r *taskRepo) Count(ctx context.Context) (int64, error) {
	return r.s.count(ctx, "tasks", `SELECT COUNT(*) FROM tasks`)
}

func (r *taskRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.s.count(ctx, "tasks", `SELECT COUNT(*) FROM tasks WHERE status = ?`, status)
}

func (r *taskRepo) Get(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	if err := r.s.get(ctx, "select", "tasks", &t, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	tasks := []model.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ?` + newestFirst
	err := r.s.selectRows(ctx, "select", "tasks", &tasks, query, projectID)
	return tasks, err
}

func (r *taskRepo) Create(ctx context.Context, f model.TaskFields) (*model.Task, error) {
	var t model.Task
	query := `
	INSERT INTO tasks (project_id, title, description, status, priority, deadline)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING ` + taskColumns
	err := r.s.get(ctx, "insert", "tasks", &t, query,
		f.ProjectID, f.Title, f.Description, nullString(f.Status), nullString(f.Priority), nullDate(f.Deadline),
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Update(ctx context.Context, id int64, f model.TaskFields) (*model.Task, error) {
	var t model.Task
	query := `
	UPDATE tasks
	SET project_id = ?, title = ?, description = ?, status = ?, priority = ?, deadline = ?
	WHERE id = ?
	RETURNING ` + taskColumns
	err := r.s.get(ctx, "update", "tasks", &t, query,
		f.ProjectID, f.Title, f.Description, nullString(f.Status), nullString(f.Priority), nullDate(f.Deadline), id,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	return r.s.delete(ctx, "tasks", id)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullDate(d *model.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
