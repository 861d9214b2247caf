package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scamshield/internal/domain/models"
)

func newSignupCmd(a *app) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account (password is read from stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			u, err := a.client.Signup(cmd.Context(), models.SignupRequest{Name: name, Email: email, Password: password})
			if err != nil {
				return err
			}
			return a.out.user(u)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "e-mail address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token for --token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			t, err := a.client.Login(cmd.Context(), models.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			return a.out.token(t)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "e-mail address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the account behind --token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.out.user(u)
		},
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := a.client.Health(cmd.Context())
			if err := a.out.health(h, a.client.BaseURL()); err != nil {
				return err
			}
			if !h.Reachable {
				return fmt.Errorf("backend unreachable")
			}
			return nil
		},
	}
}

// readPassword takes the first line of stdin
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	in := bufio.NewScanner(cmd.InOrStdin())
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no password given")
	}
	password := strings.TrimRight(in.Text(), "\r\n")
	if password == "" {
		return "", fmt.Errorf("no password given")
	}
	return password, nil
}
