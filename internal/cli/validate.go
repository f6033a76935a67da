package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/modelkit/pkg/model"
)

func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate model files against their variant's schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var errs []error

			for _, path := range args {
				err := model.ValidateFile(path)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))

					continue
				}

				fmt.Fprintf(out, "%s: OK\n", path)
			}

			return errors.Join(errs...)
		},
	}
}
