package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfrund/enroll/internal/validation"
)

// errInvalid makes the command exit non-zero after the message was printed.
var errInvalid = errors.New("value is invalid")

func newValidateCmd() *cobra.Command {
	var (
		idType   string
		email    string
		password string
	)
	cmd := &cobra.Command{
		Use:   "validate <field> <value>",
		Short: "Check a form value against the rule for its field",
		Long: `Check a form value the same way the registration wizard does on blur.

Field names are the form input names, for example firstName, birthDate, zip,
subscriberId, ssn, code, desiredUsername, email, verifiedEmail, mobileNumber.

Examples:
  enroll-cli validate birthDate 01/02/1990
  enroll-cli validate subscriberId R123456789 --id-type subID
  enroll-cli validate verifiedEmail a@b.com --email a@b.com`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := validation.Field(args[0])
			ctx := validation.Context{
				IDType:   validation.ParseIDType(idType),
				Email:    email,
				Password: password,
				Now:      time.Now(),
			}
			if msg := validation.Validate(field, args[1], ctx); msg != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid %s: %s\n", field, msg)
				return errInvalid
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s\n", field)
			return nil
		},
	}
	cmd.Flags().StringVar(&idType, "id-type", string(validation.IDTypeCode), "selected ID type: code, subID or ssn")
	cmd.Flags().StringVar(&email, "email", "", "email to compare verifiedEmail against")
	cmd.Flags().StringVar(&password, "password", "", "password to compare confirmPassword against")
	return cmd
}
