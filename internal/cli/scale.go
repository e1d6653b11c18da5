package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specview/specview/pkg/dataset"
	"github.com/specview/specview/pkg/pipeline"
	"github.com/specview/specview/pkg/scale"
)

// optionsFor builds pipeline options from a dataset with overridden
// axis labels.
func optionsFor(labels []string, ds *dataset.Dataset) pipeline.Options {
	return pipeline.Options{
		AxisLabels: labels,
		StateNames: ds.StateNames,
		Title:      ds.Title,
	}
}

// scaleCommand creates the "scale" command: analyze a dataset's
// magnitudes without building a viewer.
func (c *CLI) scaleCommand() *cobra.Command {
	var (
		axes  string
		apply string
	)

	cmd := &cobra.Command{
		Use:   "scale <dataset>",
		Short: "Analyze display scaling for a dataset",
		Long: `Scale reports the decade factors the viewer would apply to a dataset,
without opening a viewer. With a states axis, each state is analyzed
independently. Use --apply to write the scaled dataset to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			labels := ds.Axes
			if axes != "" {
				labels = splitList(axes)
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			spec, states, err := runner.Validate(cmd.Context(), ds.Array, optionsFor(labels, ds))
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			scaled, result, err := scale.Scale(ds.Array, spec, true)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Analyzed %d values", ds.Array.Size()))

			if !result.IsScaled() {
				printInfo("All magnitudes already legible, no scaling needed")
				return nil
			}

			info := result.Info()
			if info.Global != nil {
				printKeyValue("scale", info.Global.Label)
				printDetail("factor %g", info.Global.Factor)
			}
			for i, e := range info.States {
				name := fmt.Sprintf("state %d", i+1)
				if states != nil && i < len(states.Names) {
					name = states.Names[i]
				}
				label := e.Label
				if e.Factor == 1.0 {
					label = "unchanged"
				}
				printDetail("%s %s %s", name, iconArrow, label)
			}

			if apply != "" {
				out := &dataset.Dataset{
					Title:      ds.Title,
					Axes:       labels,
					StateNames: ds.StateNames,
					Array:      scaled,
				}
				if err := dataset.ExportJSON(out, apply); err != nil {
					return err
				}
				printFile(apply)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&axes, "axes", "", "override axis roles (comma-separated)")
	cmd.Flags().StringVar(&apply, "apply", "", "write the scaled dataset JSON to this path")

	return cmd
}
