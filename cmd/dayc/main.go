package main

import (
	"fmt"
	"os"

	"github.com/daybookhq/daybook/internal/client"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "dayc",
		Short:   "Daybook client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(signupCmd)
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(meCmd)
	c.AddCommand(listCmd)
	c.AddCommand(addCmd)
	c.AddCommand(showCmd)
	c.AddCommand(editCmd)
	c.AddCommand(rmCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	signupCmd = &cobra.Command{
		Use:   "signup",
		Short: "Register a new account on the Daybook server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.SignUp()
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the Daybook server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Login()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from a Daybook server session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}

	meCmd = &cobra.Command{
		Use:   "me",
		Short: "Display the identity of the current session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Me()
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List your journal entries",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.List()
		},
	}

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Write a new journal entry",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Add()
		},
	}

	showCmd = &cobra.Command{
		Use:   "show ID",
		Short: "Display a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Show(args[0])
		},
	}

	editCmd = &cobra.Command{
		Use:   "edit ID",
		Short: "Rewrite a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Edit(args[0])
		},
	}

	rmCmd = &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Rm(args[0])
		},
	}
)
