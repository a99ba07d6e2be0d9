package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/sparkline"
)

// SparklineOptions holds options for the sparkline command.
type SparklineOptions struct {
	Source string
	Values []float64
}

// NewSparklineCommand creates the sparkline command.
func NewSparklineCommand() *cobra.Command {
	opts := &SparklineOptions{}

	cmd := &cobra.Command{
		Use:   "sparkline [values...]",
		Short: "Project a numeric series onto a sparkline plot",
		Long: `Project a numeric series onto a width x height plot area.

The minimum sample lands on the bottom edge and the maximum on the top
edge. A flat series is drawn along the bottom edge.`,
		Example: `  # Project an ad-hoc series
  meshx sparkline 3 5 4 8 6

  # Negative samples go after -- or through --values
  meshx sparkline -- -2 0 3
  meshx sparkline --values -2,0,3

  # Project the volume series of a catalog source
  meshx sparkline --source sap-erp --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSparkline(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Use the volume series of a catalog source")
	cmd.Flags().Float64SliceVar(&opts.Values, "values", nil, "Comma-separated samples (accepts negative values)")
	cmd.Flags().Float64("width", 0, "Plot width (default 200)")
	cmd.Flags().Float64("height", 0, "Plot height (default 40)")
	_ = cmd.RegisterFlagCompletionFunc("source", completeNodeIDs)

	return cmd
}

func runSparkline(cmd *cobra.Command, args []string, opts *SparklineOptions) error {
	cmdCtx := NewCommandContext(cmd)

	series, err := seriesFor(args, opts)
	if err != nil {
		return err
	}

	width, height := cmdCtx.Cfg.Sparkline.Width, cmdCtx.Cfg.Sparkline.Height
	points, err := sparkline.Project(series, width, height)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("projected series", "samples", len(series), "width", width, "height", height)

	out := output.SparklineOutput{
		Width:  width,
		Height: height,
		Points: make([]output.PointOutput, len(points)),
	}
	for i, p := range points {
		out.Points[i] = output.PointOutput{X: p.X, Y: p.Y}
	}
	if sparkline.CanDrawLine(points) {
		out.Polyline = sparkline.Polyline(points)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Sparkline"))
		r.Println("")
		r.Table(sparklineTable(series, points))
		r.Println("")
		if out.Polyline != "" {
			r.Println(output.FormatCodeBlock("text", out.Polyline))
		}
	default:
		r.Header(1, "Sparkline")
		r.Table(sparklineTable(series, points))
		if out.Polyline != "" {
			r.Println("")
			r.Println(r.Styles().Muted.Render("polyline: ") + out.Polyline)
		}
	}
	return nil
}

// seriesFor parses args as numbers, or returns the --values samples or
// the volume series of a catalog source.
func seriesFor(args []string, opts *SparklineOptions) ([]float64, error) {
	given := 0
	for _, set := range []bool{len(args) > 0, len(opts.Values) > 0, opts.Source != ""} {
		if set {
			given++
		}
	}
	if given > 1 {
		return nil, fmt.Errorf("positional values, --values and --source are mutually exclusive")
	}

	if opts.Source != "" {
		d, ok := catalog.Detail(opts.Source)
		if !ok {
			return nil, fmt.Errorf("no volume series for %q", opts.Source)
		}
		return d.Volume, nil
	}
	if len(opts.Values) > 0 {
		return opts.Values, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("at least one value is required")
	}
	series := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", arg, err)
		}
		series[i] = v
	}
	return series, nil
}

func sparklineTable(series []float64, points []sparkline.Point) ([]string, [][]string) {
	header := []string{"#", "VALUE", "X", "Y"}
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.FormatFloat(series[i], 'g', -1, 64),
			strconv.FormatFloat(p.X, 'f', 2, 64),
			strconv.FormatFloat(p.Y, 'f', 2, 64),
		}
	}
	return header, rows
}
