package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kayz/promptkit/internal/definition"
	"github.com/kayz/promptkit/internal/logger"
	"github.com/kayz/promptkit/pkg/promptbuild"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRenderCommand())
}

func newRenderCommand() *cobra.Command {
	var (
		paramsPath    string
		sets          []string
		outputPath    string
		defaultLabels bool
		separator     string
		strict        bool
	)

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a prompt definition with parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			params, err := loadParams(paramsPath, sets)
			if err != nil {
				return err
			}
			if strict {
				if _, err := definition.CheckParams(def, params, true); err != nil {
					return err
				}
			}

			b, err := definition.NewBuilder(def)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("default-labels") {
				defaultLabels = cfg.Render.DefaultLabels
			}
			if cmd.Flags().Changed("separator") {
				separator = unescapeSeparator(separator)
			} else {
				separator = string(cfg.Render.Separator)
			}

			var out string
			if !defaultLabels && separator == "\n\n" && cfg.Render.SkipEmpty {
				out, err = b.Build(params)
			} else {
				out, err = renderWith(b, params,
					promptbuild.WithLabels(true),
					promptbuild.WithLabelFormatter(labelFormatter(defaultLabels)),
					promptbuild.WithSeparator(separator),
					promptbuild.WithSkipEmpty(cfg.Render.SkipEmpty),
				)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", def.Name, err)
			}

			if outputPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Info("Wrote %s (%d bytes)", outputPath, len(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&paramsPath, "params", "", "Path to a YAML or JSON parameters file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write output to file (default: stdout)")
	cmd.Flags().BoolVar(&defaultLabels, "default-labels", false, "Label unlabeled sections with their kind's default label")
	cmd.Flags().StringVar(&separator, "separator", "\n\n", "Text placed between sections")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a placeholder has no parameter")
	return cmd
}

// renderWith runs the builder pipeline with custom render options.
func renderWith(b *promptbuild.Builder, params promptbuild.Params, opts ...promptbuild.RenderOption) (string, error) {
	active, err := promptbuild.FilterComponentsByCondition(b.Components(), params)
	if err != nil {
		return "", err
	}
	return promptbuild.RenderComponents(promptbuild.SortComponents(active), params, opts...)
}

// unescapeSeparator lets "\n" and "\t" be typed literally on the command line.
func unescapeSeparator(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}

func labelFormatter(defaults bool) promptbuild.LabelFormatter {
	if defaults {
		return promptbuild.DefaultLabel
	}
	return promptbuild.ExplicitLabel
}
