package api

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/validate"
)

// AuthAPI covers registration, login and second-factor management. Request
// bodies are validated before anything is sent.
type AuthAPI struct {
	r Requester
}

func NewAuthAPI(r Requester) *AuthAPI {
	return &AuthAPI{r: r}
}

func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp models.RegisterResponse
	if err := a.r.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := a.r.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Verify2FA(ctx context.Context, userID models.ID, code string) (*models.VerifyResponse, error) {
	req := models.VerifyRequest{UserID: userID, Code: code}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp models.VerifyResponse
	if err := a.r.Post(ctx, "/auth/verify-2fa", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Enable2FA(ctx context.Context, userID models.ID) (*models.Enable2FAResponse, error) {
	req := models.TwoFactorRequest{UserID: userID}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp models.Enable2FAResponse
	if err := a.r.Post(ctx, "/auth/enable-2fa", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Disable2FA(ctx context.Context, userID models.ID) (*models.ActionResponse, error) {
	req := models.TwoFactorRequest{UserID: userID}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp models.ActionResponse
	if err := a.r.Post(ctx, "/auth/disable-2fa", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
