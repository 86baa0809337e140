package models

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type Task struct {
	ID          ID         `json:"id,omitempty"`
	ProjectID   ID         `json:"project_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	AssigneeID  ID         `json:"assignee_id,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
}

// Class is a course grouping projects, managed by admins.
type Class struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeacherID   ID     `json:"teacher_id,omitempty"`
}

// Cohort is a group of students.
type Cohort struct {
	ID      ID     `json:"id,omitempty"`
	Name    string `json:"name"`
	ClassID ID     `json:"class_id,omitempty"`
	Year    int    `json:"year,omitempty"`
}
