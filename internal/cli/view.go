package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specview/specview/pkg/dataset"
	"github.com/specview/specview/pkg/pipeline"
)

// viewCommand creates the "view" command: load a dataset, run the full
// display pipeline, and report the resulting viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		axes         string
		states       string
		title        string
		noScale      bool
		noCache      bool
		refresh      bool
		metadataPath string
		dataPath     string
	)

	cmd := &cobra.Command{
		Use:   "view <dataset>",
		Short: "Prepare a dataset and open its viewer",
		Long: `View loads a dataset (.json or .toml manifest), validates its axis
roles, rearranges the dimensions into the canonical viewer order,
scales each state into a legible magnitude range, and reports the
selected viewer.

Axis roles, state names, and the title from the dataset file can be
overridden with flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(args[0])
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				AxisLabels:       ds.Axes,
				StateNames:       ds.StateNames,
				Title:            ds.Title,
				DisableAutoScale: noScale,
				Refresh:          refresh,
				Logger:           c.Logger,
			}
			if axes != "" {
				opts.AxisLabels = splitList(axes)
			}
			if states != "" {
				opts.StateNames = splitList(states)
			}
			if title != "" {
				opts.Title = title
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinnerWithContext(cmd.Context(), "Preparing dataset...")
			spin.Start()
			result, err := runner.Display(cmd.Context(), ds.Array, opts)
			spin.Stop()
			if err != nil {
				return err
			}

			printSuccess("Prepared %s", args[0])
			printKeyValue("viewer", string(result.Handle.Kind))
			printKeyValue("axes", result.Axes.String())
			printKeyValue("shape", fmt.Sprint(result.Data.Shape()))
			if result.Metadata.States != nil {
				printKeyValue("states", strings.Join(result.Metadata.States.Names, ", "))
			}
			printScale(result)
			printStats(result.Data.Shape(), result.Stats.Permuted, result.CacheInfo.ScaleHit)
			if result.Handle.Pending {
				printWarning("%s", result.Handle.Message)
			}

			if metadataPath != "" {
				if err := dataset.ExportMetadata(result.Metadata, metadataPath); err != nil {
					return err
				}
				printFile(metadataPath)
			}
			if dataPath != "" {
				out := &dataset.Dataset{
					Title:      opts.Title,
					Axes:       result.Axes.Strings(),
					StateNames: opts.StateNames,
					Array:      result.Data,
				}
				if err := dataset.ExportJSON(out, dataPath); err != nil {
					return err
				}
				printFile(dataPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&axes, "axes", "", "override axis roles (comma-separated: states,spectral,spatial,time)")
	cmd.Flags().StringVar(&states, "states", "", "override state names (comma-separated)")
	cmd.Flags().StringVar(&title, "title", "", "override the display title")
	cmd.Flags().BoolVar(&noScale, "no-scale", false, "disable decade display scaling")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the scale-analysis cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute scale analysis, ignoring the cache")
	cmd.Flags().StringVar(&metadataPath, "export-metadata", "", "write viewer metadata JSON to this path")
	cmd.Flags().StringVar(&dataPath, "export-data", "", "write the prepared dataset JSON to this path")

	return cmd
}

// printScale prints the applied scale factors, one line per scope.
func printScale(result *pipeline.Result) {
	if !result.Scale.IsScaled() {
		printDetail("no scaling needed")
		return
	}
	info := result.Scale.Info()
	if info.Global != nil && info.Global.Factor != 1.0 {
		printKeyValue("scale", info.Global.Label)
		return
	}
	names := []string(nil)
	if result.Metadata.States != nil {
		names = result.Metadata.States.Names
	}
	for i, e := range info.States {
		if e.Factor == 1.0 {
			continue
		}
		name := fmt.Sprintf("state %d", i+1)
		if i < len(names) {
			name = names[i]
		}
		printDetail("%s %s %s", name, iconArrow, e.Label)
	}
}

// splitList parses a comma-separated flag value, trimming whitespace.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
