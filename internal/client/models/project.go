package models

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          ID            `json:"id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
	OwnerID     ID            `json:"owner_id,omitempty"`
	ClassID     ID            `json:"class_id,omitempty"`
	Deadline    string        `json:"deadline,omitempty"`
	Members     []Member      `json:"members,omitempty"`
}

// Member is a user's participation in a project.
type Member struct {
	UserID ID     `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// Invitation is a pending request to join a project.
type Invitation struct {
	ID          ID     `json:"id"`
	ProjectID   ID     `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
	InvitedBy   string `json:"invited_by,omitempty"`
	Status      string `json:"status,omitempty"`
}

type StatusRequest struct {
	Status ProjectStatus `json:"status"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role,omitempty"`
}

type RemoveMemberRequest struct {
	UserID ID `json:"user_id"`
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}
