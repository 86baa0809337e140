package api

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// TasksAPI: the collection lives at "/tasks/" with a trailing slash.
type TasksAPI struct {
	r Requester
}

func NewTasksAPI(r Requester) *TasksAPI {
	return &TasksAPI{r: r}
}

func (t *TasksAPI) GetAll(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := t.r.Get(ctx, "/tasks/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TasksAPI) GetByID(ctx context.Context, id models.ID) (*models.Task, error) {
	var out models.Task
	if err := t.r.Get(ctx, "/tasks/"+segment(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) GetByProject(ctx context.Context, projectID models.ID) ([]models.Task, error) {
	var out []models.Task
	if err := t.r.Get(ctx, "/tasks/project/"+segment(projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TasksAPI) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	var out models.Task
	if err := t.r.Post(ctx, "/tasks/", task, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) Update(ctx context.Context, id models.ID, task models.Task) (*models.Task, error) {
	var out models.Task
	if err := t.r.Put(ctx, "/tasks/"+segment(id), task, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) Delete(ctx context.Context, id models.ID) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := t.r.Delete(ctx, "/tasks/"+segment(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
