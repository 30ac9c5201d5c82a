// Package console is the operator's interactive user administration menu.
// It runs against the same database as the server and calls the same
// operations the web handlers use.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"softgym/internal/adapters/storage/txn"
	"softgym/internal/application/orchestrators"
	"softgym/internal/application/projections"
	"softgym/internal/domain/apperr"
)

// Deps holds the storage the menu operates on.
type Deps struct {
	Stores txn.Stores
	Tx     txn.Transactor
}

// Console reads menu choices from in and writes prompts to out.
type Console struct {
	in   *bufio.Scanner
	out  *bufio.Writer
	deps Deps
}

// New creates a Console over in and out.
func New(in io.Reader, out io.Writer, deps Deps) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanLines)
	return &Console{
		in:   scanner,
		out:  bufio.NewWriter(out),
		deps: deps,
	}
}

// Run shows the menu until the operator exits or input ends.
// Operation failures are reported and the menu continues; only storage
// errors that are not user mistakes end the session.
func (c *Console) Run(ctx context.Context) error {
	defer c.out.Flush()
	for {
		c.say("")
		c.say("SoftGym user administration")
		c.say("1. List users")
		c.say("2. Change password")
		c.say("3. Delete user")
		c.say("4. Create gym and user")
		c.say("5. Exit")

		choice, ok := c.askLine("Choose an option")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = c.listUsers(ctx)
		case "2":
			err = c.changePassword(ctx)
		case "3":
			err = c.deleteUser(ctx)
		case "4":
			err = c.createGymWithUser(ctx)
		case "5":
			c.say("Bye.")
			return nil
		default:
			c.say("Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) listUsers(ctx context.Context) error {
	result, err := projections.QueryGetUserList(ctx, projections.GetUserListDeps{
		UserStore: c.deps.Stores.Users,
		GymStore:  c.deps.Stores.Gyms,
	})
	if err != nil {
		return err
	}
	if len(result.Users) == 0 {
		c.say("No users.")
		return nil
	}
	c.say("Registered users:")
	for _, u := range result.Users {
		c.say("  %s | gym %d %s", u.Username, u.GymID, u.GymName)
	}
	return nil
}

func (c *Console) changePassword(ctx context.Context) error {
	username, _ := c.askLine("Username")
	password, _ := c.askLine("New password")

	err := orchestrators.ExecuteResetPassword(ctx, orchestrators.ResetPasswordInput{
		Username:    username,
		NewPassword: password,
	}, orchestrators.ChangePasswordDeps{UserStore: c.deps.Stores.Users})
	if c.reported(err) {
		return nil
	}
	if err != nil {
		return err
	}
	c.say("Password updated.")
	return nil
}

func (c *Console) deleteUser(ctx context.Context) error {
	username, _ := c.askLine("Username to delete")
	if username == "" {
		c.say("Username is required.")
		return nil
	}
	answer, _ := c.askLine(fmt.Sprintf("Delete %q? (y/n)", username))
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		c.say("Cancelled.")
		return nil
	}

	err := orchestrators.ExecuteDeleteUser(ctx, username, orchestrators.DeleteUserDeps{UserStore: c.deps.Stores.Users})
	if c.reported(err) {
		return nil
	}
	if err != nil {
		return err
	}
	c.say("User deleted.")
	return nil
}

func (c *Console) createGymWithUser(ctx context.Context) error {
	gymName, _ := c.askLine("Gym name")
	location, _ := c.askLine("Gym location")
	username, _ := c.askLine("Username")
	password, _ := c.askLine("Password")

	result, err := orchestrators.ExecuteCreateGymWithUser(ctx, orchestrators.CreateGymWithUserInput{
		GymName:  gymName,
		Location: location,
		Username: username,
		Password: password,
	}, orchestrators.CreateGymWithUserDeps{Tx: c.deps.Tx})
	if c.reported(err) {
		return nil
	}
	if err != nil {
		return err
	}
	c.say("Created gym %d %q with user %s.", result.Gym.ID, result.Gym.Name, result.User.Username)
	return nil
}

// reported prints operator mistakes and reports whether err was one.
func (c *Console) reported(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, orchestrators.ErrUserNotFound):
		c.say("User not found.")
	case apperr.IsValidation(err):
		c.say("Error: %s", apperr.UserMessage(err))
	default:
		return false
	}
	return true
}

func (c *Console) askLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt+": ")
	c.out.Flush()
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
	c.out.Flush()
}
