package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/enroll/internal/password"
)

func newPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password <password> [confirmation]",
		Short: "Evaluate a password against the password policy",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := args[0]
			confirm := pw
			if len(args) == 2 {
				confirm = args[1]
			}

			out := cmd.OutOrStdout()
			c := password.Evaluate(pw)
			check := func(ok bool, label string) {
				mark := "x"
				if ok {
					mark = "ok"
				}
				fmt.Fprintf(out, "  [%s] %s\n", mark, label)
			}
			check(c.MinLength, fmt.Sprintf("at least %d characters", password.MinLength))
			check(c.HasLower, "lowercase letter")
			check(c.HasUpper, "uppercase letter")
			check(c.HasDigit, "number")
			check(c.HasSpecial, "special character")
			fmt.Fprintf(out, "strength: %s\n", password.StrengthOf(pw))

			if password.Accepted(pw, confirm) == "" {
				if problem := password.Problem(pw); problem != "" {
					fmt.Fprintln(out, problem)
				} else {
					fmt.Fprintln(out, password.MsgMismatch)
				}
				return errInvalid
			}
			fmt.Fprintln(out, "accepted")
			return nil
		},
	}
}
