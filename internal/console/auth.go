package console

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/directory"
	"github.com/dmitrijs2005/rentdesk/internal/models"
)

// Login prompts for email and password and starts a session.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in as " + a.session.User.Email + ". Type 'logout' first.")
		return nil
	}

	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Password")
	if err != nil {
		return err
	}

	session, err := a.store.Login(ctx, email, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		a.println("Invalid email or password")
		return nil
	}
	if err != nil {
		return err
	}

	a.session = session
	a.println("Welcome, " + session.User.Name + "!")
	return a.land(ctx)
}

// SignUp collects the account form, checks the password confirmation and
// creates the account. The store validates the rest.
func (a *App) SignUp(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Please log out before creating a new account.")
		return nil
	}

	var req directory.SignUpRequest
	var err error
	if req.Name, err = a.ask("Full name"); err != nil {
		return err
	}
	if req.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if req.Phone, err = a.ask("Phone (10 digits)"); err != nil {
		return err
	}
	role, err := a.ask("Role [tenant/owner] (default tenant)")
	if err != nil {
		return err
	}
	req.Role = models.Role(strings.ToLower(role))
	if req.Role == "" {
		req.Role = models.RoleTenant
	}
	if req.Password, err = a.askPassword("Password"); err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}

	if req.Password != "" {
		if msg := check(newPasswordForm{Confirm: confirm, Password: req.Password}); msg != "" {
			a.println(msg)
			return nil
		}
	}

	res, err := a.store.SignUp(ctx, req)
	if err != nil {
		return err
	}
	a.println(res.Message)
	if !res.Success {
		return nil
	}

	a.session = res.Session
	return a.land(ctx)
}

// ForgotPassword walks through phone entry, code verification and the new
// password. The code is displayed because nothing is sent.
func (a *App) ForgotPassword(ctx context.Context) error {
	phone, err := a.ask("Phone number registered with your account")
	if err != nil {
		return err
	}
	if msg := check(phoneForm{Phone: phone}); msg != "" {
		a.println(msg)
		return nil
	}

	req, err := a.store.InitiatePasswordReset(ctx, phone)
	if err != nil {
		return err
	}
	a.println(req.Message)
	if !req.Success {
		return nil
	}

	code, err := a.ask("Enter the 6-digit code sent to " + phone)
	if err != nil {
		return err
	}
	codeCheck, err := a.store.ValidateResetCode(ctx, code)
	if err != nil {
		return err
	}
	if !codeCheck.Valid {
		a.println("Invalid or expired reset code")
		return nil
	}

	password, err := a.askPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}
	if msg := check(newPasswordForm{Confirm: confirm, Password: password}); msg != "" {
		a.println(msg)
		return nil
	}

	res, err := a.store.ResetPassword(ctx, code, password)
	if err != nil {
		return err
	}
	a.println(res.Message)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	a.println("Logged out.")
	return nil
}
