package main

import (
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the local session",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSessionShow),
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored session key",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSessionClear),
}

var sessionClearYes bool

func init() {
	sessionClearCmd.Flags().BoolVarP(&sessionClearYes, "yes", "y", false, "Clear without asking")
	sessionCmd.AddCommand(sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionShow(cmd *cobra.Command, a *app, _ []string) error {
	keys, err := a.session.Describe(cmd.Context())
	if err != nil {
		return err
	}
	a.printer.PrintSession(keys)
	return nil
}

func runSessionClear(cmd *cobra.Command, a *app, _ []string) error {
	if !sessionClearYes {
		ok, err := a.prompt.Confirm("Clear the resume, answers, saved resumes, profile and login?")
		if err != nil {
			return err
		}
		if !ok {
			a.printf("Nothing cleared.\n")
			return nil
		}
	}
	if err := a.session.Clear(cmd.Context()); err != nil {
		return err
	}
	a.printf("Session cleared.\n")
	return nil
}
