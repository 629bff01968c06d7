package model

// TaskStatusInProgress is the task status counted by the overview.
const TaskStatusInProgress = "in_progress"

// Client is a customer that owns projects.
type Client struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}

// Project belongs to exactly one client.
type Project struct {
	ID          int64     `db:"id" json:"id"`
	ClientID    int64     `db:"client_id" json:"client_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Status      *string   `db:"status" json:"status"`
	StartDate   *Date     `db:"start_date" json:"start_date"`
	DueDate     *Date     `db:"due_date" json:"due_date"`
	CreatedAt   Timestamp `db:"created_at" json:"created_at"`
}

// ClientSummary is the slice of a client embedded in project listings.
type ClientSummary struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// RecentProject is a project joined with its owning client.
type RecentProject struct {
	Project
	Client ClientSummary `db:"client" json:"client"`
}

// Task belongs to exactly one project.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	ProjectID   int64     `db:"project_id" json:"project_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      *string   `db:"status" json:"status"`
	Priority    *string   `db:"priority" json:"priority"`
	Deadline    *Date     `db:"deadline" json:"deadline"`
	CreatedAt   Timestamp `db:"created_at" json:"created_at"`
}

// ClientFields are the editable columns of a client.
type ClientFields struct {
	Name  string
	Email string
	Phone string
}

// ProjectFields are the editable columns of a project. Nil pointers are stored as NULL.
type ProjectFields struct {
	ClientID    int64
	Name        string
	Description string
	Status      *string
	StartDate   *Date
	DueDate     *Date
}

// TaskFields are the editable columns of a task. Nil pointers are stored as NULL.
type TaskFields struct {
	ProjectID   int64
	Title       string
	Description string
	Status      *string
	Priority    *string
	Deadline    *Date
}
