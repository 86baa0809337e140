// Package api holds the resource modules of the taskboard service. Each
// module maps its operations onto fixed REST paths and returns the
// dispatcher's errors unchanged.
package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// Requester is the dispatcher surface used by the resource modules.
// *client.Dispatcher implements it.
type Requester interface {
	Get(ctx context.Context, path string, params *client.Params, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// API groups every resource module over one Requester.
type API struct {
	Auth     *AuthAPI
	Projects *ProjectsAPI
	Tasks    *TasksAPI
	Classes  *ClassesAPI
	Cohorts  *CohortsAPI
	Members  *MembersAPI
}

func New(r Requester) *API {
	return &API{
		Auth:     NewAuthAPI(r),
		Projects: NewProjectsAPI(r),
		Tasks:    NewTasksAPI(r),
		Classes:  NewClassesAPI(r),
		Cohorts:  NewCohortsAPI(r),
		Members:  NewMembersAPI(r),
	}
}

func segment(id models.ID) string {
	return url.PathEscape(id.String())
}
