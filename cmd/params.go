package cmd

import (
	"fmt"

	"github.com/kayz/promptkit/internal/definition"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newParamsCommand())
}

func newParamsCommand() *cobra.Command {
	var (
		paramsPath string
		sets       []string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "params <definition>",
		Short: "List the parameters a definition refers to",
		Long: `List every ${name} placeholder used by a definition, in order of first
use. With --params or --set, each name is marked as provided or missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			params, err := loadParams(paramsPath, sets)
			if err != nil {
				return err
			}

			missing, checkErr := definition.CheckParams(def, params, strict)
			absent := make(map[string]bool, len(missing))
			for _, name := range missing {
				absent[name] = true
			}

			out := cmd.OutOrStdout()
			for _, name := range definition.Placeholders(def) {
				status := "provided"
				if absent[name] {
					status = "missing"
				}
				if _, err := fmt.Fprintf(out, "%s\t%s\n", name, status); err != nil {
					return err
				}
			}
			return checkErr
		},
	}

	cmd.Flags().StringVar(&paramsPath, "params", "", "Path to a YAML or JSON parameters file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when a parameter is missing")
	return cmd
}
