package api

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/validate"
)

type ProjectsAPI struct {
	r Requester
}

func NewProjectsAPI(r Requester) *ProjectsAPI {
	return &ProjectsAPI{r: r}
}

// GetAll lists projects. params, if not nil, becomes the query string in
// insertion order.
func (p *ProjectsAPI) GetAll(ctx context.Context, params *client.Params) ([]models.Project, error) {
	var out []models.Project
	if err := p.r.Get(ctx, "/projects", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProjectsAPI) GetByID(ctx context.Context, id models.ID) (*models.Project, error) {
	var out models.Project
	if err := p.r.Get(ctx, "/projects/"+segment(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Create(ctx context.Context, project models.Project) (*models.Project, error) {
	var out models.Project
	if err := p.r.Post(ctx, "/projects", project, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Update(ctx context.Context, id models.ID, project models.Project) (*models.Project, error) {
	var out models.Project
	if err := p.r.Put(ctx, "/projects/"+segment(id), project, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Delete(ctx context.Context, id models.ID) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := p.r.Delete(ctx, "/projects/"+segment(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) UpdateStatus(ctx context.Context, id models.ID, status models.ProjectStatus) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := p.r.Patch(ctx, "/projects/"+segment(id)+"/status", models.StatusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) InviteMember(ctx context.Context, id models.ID, invite models.InviteRequest) (*models.ActionResponse, error) {
	if err := validate.Struct(invite); err != nil {
		return nil, err
	}
	var out models.ActionResponse
	if err := p.r.Post(ctx, "/members/projects/"+segment(id)+"/invite", invite, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) RemoveMember(ctx context.Context, id, userID models.ID) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := p.r.Post(ctx, "/members/projects/"+segment(id)+"/remove", models.RemoveMemberRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) RespondToInvitation(ctx context.Context, id models.ID, accept bool) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := p.r.Post(ctx, "/members/projects/"+segment(id)+"/respond", models.RespondRequest{Accept: accept}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
