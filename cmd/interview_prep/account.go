package main

import (
	"github.com/jonathan/interview-prep/internal/profile"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Args:  cobra.NoArgs,
	RunE:  withApp(runLogin),
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSignup),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored login token",
	Args:  cobra.NoArgs,
	RunE:  withApp(runLogout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the login status",
	Args:  cobra.NoArgs,
	RunE:  withApp(runWhoami),
}

var (
	loginEmail    string
	loginRemember bool

	signupName     string
	signupEmail    string
	signupLinkedIn string
	signupLeetCode string
	signupSkills   string
	signupBio      string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when empty)")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", false, "Keep the login for the configured session TTL")

	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name (prompted when empty)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email (prompted when empty)")
	signupCmd.Flags().StringVar(&signupLinkedIn, "linkedin", "", "LinkedIn username")
	signupCmd.Flags().StringVar(&signupLeetCode, "leetcode", "", "LeetCode username")
	signupCmd.Flags().StringVar(&signupSkills, "skills", "", "Comma separated skills")
	signupCmd.Flags().StringVar(&signupBio, "bio", "", "Short bio")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, a *app, _ []string) error {
	ctx := cmd.Context()

	email, err := a.prompt.Line("Email", loginEmail)
	if err != nil {
		return err
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password, loginRemember)
	if err != nil {
		return err
	}

	if err := profile.NewService(a.session, a.api).SeedFromUser(ctx, user); err != nil {
		a.log.Warn().Err(err).Msg("failed to seed profile from account")
	}

	name := email
	if user != nil && user.Name != "" {
		name = user.Name
	}
	a.printf("Login successful. Welcome, %s!\n", name)
	return nil
}

func runSignup(cmd *cobra.Command, a *app, _ []string) error {
	name, err := a.prompt.Line("Name", signupName)
	if err != nil {
		return err
	}
	email, err := a.prompt.Line("Email", signupEmail)
	if err != nil {
		return err
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return err
	}
	confirm, err := a.prompt.Password("Confirm password")
	if err != nil {
		return err
	}

	req := types.SignupRequest{
		Name:          name,
		Email:         email,
		Password:      password,
		LinkedinUname: signupLinkedIn,
		LeetcodeUname: signupLeetCode,
		Skills:        signupSkills,
		Bio:           signupBio,
	}
	if _, err := a.auth.Signup(cmd.Context(), req, confirm); err != nil {
		return err
	}
	a.printf("Account created. Log in with `prep login --email %s`.\n", email)
	return nil
}

func runLogout(cmd *cobra.Command, a *app, _ []string) error {
	if err := a.auth.Logout(cmd.Context()); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

func runWhoami(cmd *cobra.Command, a *app, _ []string) error {
	st, err := a.auth.Status(cmd.Context())
	if err != nil {
		return err
	}
	a.printer.PrintStatus(st)
	return nil
}
