package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/dmitrijs2005/taskboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and an optional role and
// creates the account. The session is not changed.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Choose password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, "Enter role (Admin/Student, empty for default)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.session.Register(ctx, models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Role:     models.Role(role),
	})
	if err != nil {
		return err
	}

	msg := resp.Message
	if msg == "" {
		msg = "Success!"
	}
	a.println(msg)
	return nil
}

// Login prompts for credentials and authenticates. When the service asks
// for a second factor the code is requested right away; an empty answer
// leaves the challenge pending for the verify command.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.session.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return err
	}
	return a.afterLogin(ctx, res)
}

func (a *App) afterLogin(ctx context.Context, res services.LoginResult) error {
	if res.Success {
		return a.enterDashboard(ctx)
	}

	a.println("Two-factor authentication is enabled for this account.")
	code, err := getSimpleText(a.reader, "Enter authentication code (empty to enter it later with 'verify')", a.out)
	if err != nil {
		return err
	}
	if code == "" {
		return nil
	}
	return a.verifyCode(ctx, code)
}

// Verify completes a pending second-factor login.
func (a *App) Verify(ctx context.Context) error {
	if _, ok, err := a.session.PendingSecondFactor(ctx); err != nil {
		return err
	} else if !ok {
		return services.ErrNoPendingChallenge
	}

	code, err := getSimpleText(a.reader, "Enter authentication code", a.out)
	if err != nil {
		return err
	}
	return a.verifyCode(ctx, code)
}

func (a *App) verifyCode(ctx context.Context, code string) error {
	if _, err := a.session.Verify2FA(ctx, code); err != nil {
		if errors.Is(err, services.ErrSecondFactorRejected) {
			a.println("Code rejected. Try 'verify' again or 'resend' for a new code.")
		}
		return err
	}
	return a.enterDashboard(ctx)
}

// Resend repeats the pending login so the service issues a new code.
func (a *App) Resend(ctx context.Context) error {
	res, err := a.session.ResendSecondFactor(ctx)
	if err != nil {
		return err
	}
	if res.Success {
		return a.enterDashboard(ctx)
	}
	a.println("A new code was requested. Use 'verify' to enter it.")
	return nil
}

// CancelSecondFactor drops a pending second-factor login.
func (a *App) CancelSecondFactor(ctx context.Context) error {
	if err := a.session.AbandonSecondFactor(ctx); err != nil {
		return err
	}
	a.println("Pending login cancelled.")
	return nil
}

func (a *App) enterDashboard(ctx context.Context) error {
	if a.nav != nil {
		a.nav.Navigate(ctx, navigator.DashboardPath)
	}
	u := a.session.Session().User
	if u == nil {
		return nil
	}
	a.printf("Logged in as %s (%s)\n", displayName(u), u.Role)
	return nil
}

// Logout ends the session. No request is sent to the service.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.guard(ctx, false); err != nil {
		return err
	}
	u := a.session.Session().User
	a.printf("id:    %s\nname:  %s\nemail: %s\nrole:  %s\n", u.ID, u.Name, u.Email, u.Role)
	return nil
}

// TwoFactor handles "2fa enable" and "2fa disable" for the current user.
func (a *App) TwoFactor(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: 2fa enable|disable", errUsage)
	}
	if err := a.guard(ctx, false); err != nil {
		return err
	}
	id := a.session.Session().User.ID

	switch args[0] {
	case "enable":
		resp, err := a.api.Auth.Enable2FA(ctx, id)
		if err != nil {
			return err
		}
		a.println("Two-factor authentication enabled.")
		if resp.Secret != "" {
			a.println("Secret:", resp.Secret)
		}
		if resp.QRCode != "" {
			a.println("QR code:", resp.QRCode)
		}
	case "disable":
		if _, err := a.api.Auth.Disable2FA(ctx, id); err != nil {
			return err
		}
		a.println("Two-factor authentication disabled.")
	default:
		return fmt.Errorf("%w: usage: 2fa enable|disable", errUsage)
	}
	return nil
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID.String()
}
