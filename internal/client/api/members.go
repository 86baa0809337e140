package api

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// MembersAPI reads membership state. Invite/remove/respond live on
// ProjectsAPI because they are scoped to a project.
type MembersAPI struct {
	r Requester
}

func NewMembersAPI(r Requester) *MembersAPI {
	return &MembersAPI{r: r}
}

// Invitations lists the current user's pending invitations.
func (m *MembersAPI) Invitations(ctx context.Context) ([]models.Invitation, error) {
	var out []models.Invitation
	if err := m.r.Get(ctx, "/members/invitations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MembersAPI) ProjectMembers(ctx context.Context, projectID models.ID) ([]models.Member, error) {
	var out []models.Member
	if err := m.r.Get(ctx, "/members/projects/"+segment(projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
