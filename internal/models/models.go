package models

import (
	"time"
)

// User is an account that can sign in and be assigned work.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Project groups tasks and the teams working on them.
type Project struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	Progress    int           `json:"progress" db:"progress"`
	StartDate   *string       `json:"startDate" db:"start_date"`
	EndDate     *string       `json:"endDate" db:"end_date"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// Task represents a single card on the board.
type Task struct {
	ID             int64        `json:"id" db:"id"`
	Title          string       `json:"title" db:"title"`
	Description    string       `json:"description" db:"description"`
	Status         TaskStatus   `json:"status" db:"status"`
	Priority       TaskPriority `json:"priority" db:"priority"`
	ProjectID      int64        `json:"projectId" db:"project_id"`
	AssigneeID     *int64       `json:"assigneeId" db:"assignee_id"`
	DueDate        *string      `json:"dueDate" db:"due_date"`
	EstimatedHours int          `json:"estimatedHours" db:"estimated_hours"`
	ActualHours    int          `json:"actualHours" db:"actual_hours"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// Team is a named group of users.
type Team struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	MemberIDs   IDList    `json:"memberIds" db:"member_ids"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProjectTeam links a team to a project. Name and Description come from the team.
type ProjectTeam struct {
	ID          int64     `json:"id" db:"id"`
	ProjectID   int64     `json:"projectId" db:"project_id"`
	TeamID      int64     `json:"teamId" db:"team_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Position is a role scoped to a team.
type Position struct {
	ID          int64     `json:"id" db:"id"`
	TeamID      int64     `json:"teamId" db:"team_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProjectTeamMember places a user on a project through one of its teams.
type ProjectTeamMember struct {
	ID           int64     `json:"id" db:"id"`
	ProjectID    int64     `json:"projectId" db:"project_id"`
	TeamID       int64     `json:"teamId" db:"team_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	PositionID   *int64    `json:"positionId" db:"position_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	Name         string    `json:"name,omitempty" db:"name"`
	Email        string    `json:"email,omitempty" db:"email"`
	PositionName *string   `json:"positionName,omitempty" db:"position_name"`
	TeamName     *string   `json:"teamName,omitempty" db:"team_name"`
}

// Activity is an append-only audit record describing a successful mutation.
type Activity struct {
	ID         int64        `json:"id" db:"id"`
	Type       ActivityType `json:"type" db:"type"`
	EntityType EntityType   `json:"entityType" db:"entity_type"`
	EntityID   int64        `json:"entityId" db:"entity_id"`
	UserID     *int64       `json:"userId" db:"user_id"`
	UserName   string       `json:"userName" db:"user_name"`
	Message    string       `json:"message" db:"message"`
	Metadata   Metadata     `json:"metadata,omitempty" db:"metadata"`
	Timestamp  time.Time    `json:"timestamp" db:"timestamp"`
}
