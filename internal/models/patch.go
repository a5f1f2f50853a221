package models

import (
	"net/mail"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TaskPatch is a partial task update. Nil fields keep their stored value.
type TaskPatch struct {
	Title          *string       `json:"title,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Status         *TaskStatus   `json:"status,omitempty"`
	Priority       *TaskPriority `json:"priority,omitempty"`
	AssigneeID     *int64        `json:"assigneeId,omitempty"`
	DueDate        *string       `json:"dueDate,omitempty"`
	EstimatedHours *int          `json:"estimatedHours,omitempty"`
	ActualHours    *int          `json:"actualHours,omitempty"`
}

// Fields lists the JSON names of the fields present in the patch.
func (p TaskPatch) Fields() []string {
	var fields []string
	add := func(present bool, name string) {
		if present {
			fields = append(fields, name)
		}
	}
	add(p.Title != nil, "title")
	add(p.Description != nil, "description")
	add(p.Status != nil, "status")
	add(p.Priority != nil, "priority")
	add(p.AssigneeID != nil, "assigneeId")
	add(p.DueDate != nil, "dueDate")
	add(p.EstimatedHours != nil, "estimatedHours")
	add(p.ActualHours != nil, "actualHours")
	return fields
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Validate checks the fields present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("task title must not be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("unknown task status %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return invalid("unknown task priority %q", *p.Priority)
	}
	if err := validateDate("dueDate", p.DueDate); err != nil {
		return err
	}
	if p.EstimatedHours != nil && *p.EstimatedHours < 0 {
		return invalid("estimatedHours must not be negative")
	}
	if p.ActualHours != nil && *p.ActualHours < 0 {
		return invalid("actualHours must not be negative")
	}
	return nil
}

// ValidateNewTask checks a task about to be created and fills defaults.
func ValidateNewTask(t *Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return invalid("task title must not be empty")
	}
	if t.ProjectID <= 0 {
		return invalid("projectId is required")
	}
	if t.Status == "" {
		t.Status = StatusBacklog
	}
	if !t.Status.Valid() {
		return invalid("unknown task status %q", t.Status)
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !t.Priority.Valid() {
		return invalid("unknown task priority %q", t.Priority)
	}
	if t.EstimatedHours < 0 || t.ActualHours < 0 {
		return invalid("hours must not be negative")
	}
	return validateDate("dueDate", t.DueDate)
}

// ProjectPatch is a partial project update.
type ProjectPatch struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
	StartDate   *string        `json:"startDate,omitempty"`
	EndDate     *string        `json:"endDate,omitempty"`
}

// Fields lists the JSON names of the fields present in the patch.
func (p ProjectPatch) Fields() []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Progress != nil {
		fields = append(fields, "progress")
	}
	if p.StartDate != nil {
		fields = append(fields, "startDate")
	}
	if p.EndDate != nil {
		fields = append(fields, "endDate")
	}
	return fields
}

// Validate checks the fields present in the patch.
func (p ProjectPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("project name must not be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("unknown project status %q", *p.Status)
	}
	if p.Progress != nil {
		if err := validateProgress(*p.Progress); err != nil {
			return err
		}
	}
	if err := validateDate("startDate", p.StartDate); err != nil {
		return err
	}
	return validateDate("endDate", p.EndDate)
}

// ValidateNewProject checks a project about to be created and fills defaults.
func ValidateNewProject(p *Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("project name must not be empty")
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	if !p.Status.Valid() {
		return invalid("unknown project status %q", p.Status)
	}
	if err := validateProgress(p.Progress); err != nil {
		return err
	}
	if err := validateDate("startDate", p.StartDate); err != nil {
		return err
	}
	return validateDate("endDate", p.EndDate)
}

// TeamPatch is a partial team update.
type TeamPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	MemberIDs   *IDList `json:"memberIds,omitempty"`
}

// Validate checks the fields present in the patch.
func (p TeamPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("team name must not be empty")
	}
	return nil
}

// PositionPatch is a partial position update.
type PositionPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UserPatch is a partial user update. Password is hashed by the caller.
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ValidateEmail checks the address format used at registration.
func ValidateEmail(email string) error {
	if email == "" {
		return invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return invalid("invalid email format")
	}
	return nil
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// ValidatePassword checks the password length rule.
func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password is required")
	}
	if len(password) < MinPasswordLength {
		return invalid("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return invalid("progress must be between 0 and 100")
	}
	return nil
}

func validateDate(field string, v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, *v); err != nil {
		return invalid("%s must be formatted as YYYY-MM-DD", field)
	}
	return nil
}
