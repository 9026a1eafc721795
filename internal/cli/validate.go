package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool `json:"valid"`
	Steps int  `json:"steps"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "validate <script>",
		Short:         "Check a gesture script without replaying it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sc, err := loadScriptFile(formatter, path)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Steps: sc.Len()})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s: %d step(s)\n", path, sc.Len())
	return nil
}
