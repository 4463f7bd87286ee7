package main

import (
	"context"
	"fmt"
	"io"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/placement/core"
	"github.com/trezcool/placement/core/directory"
)

var (
	defaultReadPasswordFunc = term.ReadPassword
	readPasswordFunc        = defaultReadPasswordFunc // mockable

	errEmptyPassword = errors.New("password is required")
	errNotLoggedIn   = errors.New("not logged in")
)

type commandLine struct {
	svc *directory.Service
	out io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Placement portal administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.AddCommand(cli.loginCmd(), cli.logoutCmd(), cli.whoamiCmd(), cli.rosterCmd(), cli.statsCmd())
	return root
}

// run executes the command line; args do not include the program name.
func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (cli *commandLine) loginCmd() *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; the password is prompted next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := directory.Role(role)
			if !r.Valid() {
				return errors.Errorf("role must be one of %s or %s", directory.RoleAdmin, directory.RoleStudent)
			}

			fmt.Fprint(cli.out, "Enter password:")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Fprintln(cli.out)
			if err != nil {
				return errors.Wrap(err, "reading password")
			}
			if len(pwd) == 0 {
				return errEmptyPassword
			}

			acc, err := cli.svc.Login(cmd.Context(), email, string(pwd), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Welcome back, %s!\n", acc.Ident().Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&role, "role", string(directory.RoleAdmin), "admin or student")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.svc.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cli.out, "You've been successfully logged out.")
			return nil
		},
	}
}

func (cli *commandLine) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, ok := cli.svc.Current()
			if !ok {
				return errNotLoggedIn
			}
			ident := acc.Ident()
			fmt.Fprintf(cli.out, "%s <%s> (%s, %s)\n", ident.Name, ident.Email, ident.Role, ident.ID)
			return nil
		},
	}
}

// requireAdmin fails unless the stored session belongs to the admin.
func (cli *commandLine) requireAdmin() error {
	acc, ok := cli.svc.Current()
	if !ok {
		return errNotLoggedIn
	}
	if _, isAdmin := acc.(directory.Admin); !isAdmin {
		return errors.New("permission denied")
	}
	return nil
}

func (cli *commandLine) rosterCmd() *cobra.Command {
	var pending, placed bool
	var format, ordering string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List the students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.requireAdmin(); err != nil {
				return err
			}
			var filter directory.QueryFilter
			if pending {
				approved := false
				filter.IsApproved = &approved
			}
			if placed {
				isPlaced := true
				filter.IsPlaced = &isPlaced
			}
			students, err := cli.svc.Query(filter, core.ParseOrdering(ordering))
			if err != nil {
				return err
			}
			return printStudents(cli.out, format, students)
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "only students awaiting approval")
	cmd.Flags().BoolVar(&placed, "placed", false, "only placed students")
	cmd.Flags().StringVar(&ordering, "ordering", "", "comma-separated sort fields, \"-\" prefix for descending")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table, json or yaml")
	return cmd
}

func (cli *commandLine) statsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show placement analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.requireAdmin(); err != nil {
				return err
			}
			stats, err := cli.svc.Stats()
			if err != nil {
				return err
			}
			return printStats(cli.out, format, stats)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table, json or yaml")
	return cmd
}
