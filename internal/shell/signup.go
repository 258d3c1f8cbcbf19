package shell

import (
	"context"
	"errors"

	"clubfin/internal/accounts"
	"clubfin/internal/core"
)

// createAccount asks for each field until it is valid, then creates a Member
// or Coach account.
func (s *Shell) createAccount(ctx context.Context) error {
	s.println("Creating a new account.")
	var n accounts.NewAccount
	var err error

	if n.FirstName, err = s.promptUntil("Enter first name: ", "First name cannot be empty. Please Re-Enter: ",
		func(v string) (bool, error) { return accounts.ValidateName("first name", v) == nil, nil }); err != nil {
		return err
	}
	if n.LastName, err = s.promptUntil("Enter last name: ", "Last name cannot be empty. Please Re-Enter: ",
		func(v string) (bool, error) { return accounts.ValidateName("last name", v) == nil, nil }); err != nil {
		return err
	}
	if n.Email, err = s.promptUntil("Enter email: ", "Invalid email. Please Re-Enter: ",
		func(v string) (bool, error) {
			if accounts.ValidateEmail(v) != nil {
				return false, nil
			}
			taken, err := s.deps.Accounts.EmailTaken(ctx, v)
			return !taken, err
		}); err != nil {
		return err
	}
	if n.Username, err = s.promptUntil("Choose a username: ", "Invalid Username. Please Re-Enter: ",
		func(v string) (bool, error) {
			if accounts.ValidateUsername(v) != nil {
				return false, nil
			}
			taken, err := s.deps.Accounts.UsernameTaken(ctx, v)
			return !taken, err
		}); err != nil {
		return err
	}
	if n.Password, err = s.promptUntil("Choose a password. Password must be at least 6 characters: ", "Invalid password. Please Re-Enter: ",
		func(v string) (bool, error) { return accounts.ValidatePassword(v) == nil, nil }); err != nil {
		return err
	}
	if n.Permissions, err = s.promptRole(); err != nil {
		return err
	}

	_, err = s.deps.Accounts.Create(ctx, n)
	var dup *accounts.DuplicateAccountError
	switch {
	case errors.As(err, &dup):
		s.println("Account Creation Failed.")
		return nil
	case err != nil:
		return err
	}
	s.println("Account created successfully.")
	s.println("You may now login with your new account.")
	return nil
}

func (s *Shell) promptRole() (core.Permission, error) {
	const question = "Are you a Member (1) or Coach (2)?\nInput your role as a number: "
	for {
		status, err := s.prompt(question)
		if err != nil {
			return "", err
		}
		switch status {
		case "1":
			return core.PermissionMember, nil
		case "2":
			return core.PermissionCoach, nil
		}
		s.println("Invalid Status.\n")
	}
}

// promptUntil re-prompts with retry until ok accepts the answer.
func (s *Shell) promptUntil(first, retry string, ok func(string) (bool, error)) (string, error) {
	text := first
	for {
		v, err := s.prompt(text)
		if err != nil {
			return "", err
		}
		good, err := ok(v)
		if err != nil {
			return "", err
		}
		if good {
			return v, nil
		}
		text = retry
	}
}
