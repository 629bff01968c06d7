package api

import "github.com/nulzo/project-tracker-api/internal/store/model"

// Presence checks use the validator's "required" tag, which treats "" and 0
// as missing.

// ClientRequest is the body of both POST /clients and PUT /clients/:id.
type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func (r ClientRequest) Fields() model.ClientFields {
	return model.ClientFields{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type CreateProjectRequest struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r CreateProjectRequest) Fields() model.ProjectFields {
	return model.ProjectFields{
		ClientID:    r.ClientID,
		Name:        r.Name,
		Description: r.Description,
		Status:      optional(r.Status),
		StartDate:   optionalDate(r.StartDate),
		DueDate:     optionalDate(r.DueDate),
	}
}

// UpdateProjectRequest replaces every editable column, so all are required.
type UpdateProjectRequest struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	DueDate     string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

func (r UpdateProjectRequest) Fields() model.ProjectFields {
	return model.ProjectFields{
		ClientID:    r.ClientID,
		Name:        r.Name,
		Description: r.Description,
		Status:      optional(r.Status),
		StartDate:   optionalDate(r.StartDate),
		DueDate:     optionalDate(r.DueDate),
	}
}

type CreateTaskRequest struct {
	ProjectID   int64  `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

func (r CreateTaskRequest) Fields() model.TaskFields {
	return model.TaskFields{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      optional(r.Status),
		Priority:    optional(r.Priority),
		Deadline:    optionalDate(r.Deadline),
	}
}

// UpdateTaskRequest replaces every editable column, so all are required.
type UpdateTaskRequest struct {
	ProjectID   int64  `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Deadline    string `json:"deadline" binding:"required,datetime=2006-01-02"`
}

func (r UpdateTaskRequest) Fields() model.TaskFields {
	return model.TaskFields{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      optional(r.Status),
		Priority:    optional(r.Priority),
		Deadline:    optionalDate(r.Deadline),
	}
}

// optional maps an omitted (empty) value to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalDate expects s to have passed the datetime validator already.
func optionalDate(s string) *model.Date {
	if s == "" {
		return nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
