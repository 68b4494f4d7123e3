package main

import (
	"errors"
	"sort"

	"github.com/jonathan/interview-prep/internal/profile"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the local user profile",
	Args:  cobra.NoArgs,
	RunE:  withApp(runProfileShow),
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the profile; fields not given as flags are prompted",
	Args:  cobra.NoArgs,
	RunE:  withApp(runProfileEdit),
}

var profileLeetCodeCmd = &cobra.Command{
	Use:   "leetcode [username]",
	Short: "Show LeetCode solve statistics",
	Long:  "Shows statistics for username, or for the LeetCode username in the profile.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runProfileLeetCode),
}

var profileFields struct {
	name, email, skills, bio, linkedin, leetcode string
}

func init() {
	f := profileEditCmd.Flags()
	f.StringVar(&profileFields.name, "name", "", "Full name")
	f.StringVar(&profileFields.email, "email", "", "Email")
	f.StringVar(&profileFields.skills, "skills", "", "Comma separated skills")
	f.StringVar(&profileFields.bio, "bio", "", "Short bio")
	f.StringVar(&profileFields.linkedin, "linkedin", "", "LinkedIn username")
	f.StringVar(&profileFields.leetcode, "leetcode", "", "LeetCode username")

	profileCmd.AddCommand(profileEditCmd, profileLeetCodeCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, a *app, _ []string) error {
	p, err := profile.NewService(a.session, a.api).Show(cmd.Context())
	if err != nil {
		return err
	}
	a.printer.PrintProfile(p)
	return nil
}

func runProfileEdit(cmd *cobra.Command, a *app, _ []string) error {
	ctx := cmd.Context()
	svc := profile.NewService(a.session, a.api)

	cur, err := svc.Show(ctx)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	// flags win; anything else is prompted with the current value as default
	field := func(flag, label, current string) (string, error) {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			return v, nil
		}
		return a.prompt.Line(label, current)
	}

	var next types.UserProfile
	for _, f := range []struct {
		flag, label string
		cur         string
		dst         *string
	}{
		{"name", "Name", cur.Name, &next.Name},
		{"email", "Email", cur.Email, &next.Email},
		{"skills", "Skills", cur.Skills, &next.Skills},
		{"bio", "Bio", cur.Bio, &next.Bio},
		{"linkedin", "LinkedIn username", cur.LinkedinUname, &next.LinkedinUname},
		{"leetcode", "LeetCode username", cur.LeetcodeUname, &next.LeetcodeUname},
	} {
		if *f.dst, err = field(f.flag, f.label, f.cur); err != nil {
			return err
		}
	}

	saved, err := svc.Edit(ctx, next)
	var verr *profile.ValidationError
	if errors.As(err, &verr) {
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.printf("  %s: %s\n", k, verr.Fields[k])
		}
		return errors.New("profile not saved")
	}
	if err != nil {
		return err
	}

	a.printf("Profile saved.\n")
	a.printer.PrintProfile(saved)
	return nil
}

func runProfileLeetCode(cmd *cobra.Command, a *app, args []string) error {
	var username string
	if len(args) == 1 {
		username = args[0]
	}
	lp, err := profile.NewService(a.session, a.api).LeetCode(cmd.Context(), username)
	if err != nil {
		return err
	}
	a.printer.PrintLeetCode(lp)
	return nil
}
