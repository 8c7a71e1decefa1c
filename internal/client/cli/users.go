package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// Profile prints the caller's identity as the server currently sees it.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	u, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("ID:       %s", u.ID))
	printlnFn(fmt.Sprintf("Username: %s", u.Username))
	printlnFn(fmt.Sprintf("Email:    %s", u.Email))
	printlnFn(fmt.Sprintf("Roles:    %s", strings.Join(u.Roles, ", ")))
	return nil
}

// Users lists all accounts. The server rejects this for non-admins.
func (a *App) Users(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	list, err := a.authService.ListUsers(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		printlnFn("No users")
		return nil
	}
	for _, u := range list {
		printlnFn(formatUser(u))
	}
	return nil
}

func formatUser(u models.User) string {
	status := "active"
	if u.IsActive != nil && !*u.IsActive {
		status = "inactive"
	}
	return fmt.Sprintf("%s  %-16s %-28s %-22s %s", u.ID, u.Username, u.Email, strings.Join(u.Roles, ","), status)
}
