package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/stopshape/gtfs"
	"github.com/stopshape/gtfs/config"
	"github.com/stopshape/gtfs/export"
	"github.com/stopshape/gtfs/warnings"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "only print records whose column equals the value, as column=value; repeatable",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML configuration file",
		},
		&cli.BoolFlag{
			Name:  "collect-errors",
			Usage: "skip rows that fail to parse instead of failing",
		},
		&cli.BoolFlag{
			Name:  "unique",
			Usage: "drop repeated records",
		},
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "GTFS stops and shapes",
		Usage:     "parse and query the stops and shapes of a GTFS static feed",
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			{
				Name:      "stops",
				Usage:     "parse and query a stops.txt file or GTFS zip",
				ArgsUsage: "path",
				Flags: append(queryFlags(), &cli.StringFlag{
					Name:  "output",
					Usage: "output format: text, csv",
				}),
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					path, err := pathArg(ctx)
					if err != nil {
						return err
					}
					stops, staticWarnings, err := readStops(path, cfg)
					if err != nil {
						return err
					}
					printWarnings(out, staticWarnings)
					if cfg.Unique {
						stops = gtfs.Deduplicate(stops)
					}
					filter, err := gtfs.ParseStopFilter(cfg.Filters)
					if err != nil {
						return err
					}
					stops, err = gtfs.Query(stops, filter)
					if err != nil {
						return err
					}
					var b []byte
					switch cfg.Output {
					case config.OutputCsv:
						b, err = export.StopsCsv(stops)
					default:
						fmt.Fprintf(out, "%s stops:\n", color.New(color.FgCyan).Sprint(len(stops)))
						b, err = export.StopsText(stops)
					}
					if err != nil {
						return fmt.Errorf("failed to render stops: %w", err)
					}
					_, err = out.Write(b)
					return err
				},
			},
			{
				Name:      "shapes",
				Usage:     "parse a shapes.txt file or GTFS zip and print the length of each shape",
				ArgsUsage: "path",
				Flags:     queryFlags(),
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					path, err := pathArg(ctx)
					if err != nil {
						return err
					}
					points, staticWarnings, err := readShapePoints(path, cfg)
					if err != nil {
						return err
					}
					printWarnings(out, staticWarnings)
					if cfg.Unique {
						points = gtfs.Deduplicate(points)
					}
					filter, err := gtfs.ParseShapePointFilter(cfg.Filters)
					if err != nil {
						return err
					}
					points, err = gtfs.Query(points, filter)
					if err != nil {
						return err
					}
					shapes, err := gtfs.LinkShapes(points)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s shapes:\n", color.New(color.FgCyan).Sprint(len(shapes)))
					for _, shape := range shapes {
						fmt.Fprintf(out, "- %s\n", formatShape(shape))
					}
					return nil
				},
			},
			{
				Name:      "static",
				Usage:     "summarize the stops and shapes of a GTFS zip",
				ArgsUsage: "path",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "collect-errors",
						Usage: "skip rows that fail to parse instead of failing",
					},
				},
				Action: func(ctx *cli.Context) error {
					path, err := pathArg(ctx)
					if err != nil {
						return err
					}
					opts := gtfs.ParseStaticOptions{}
					if ctx.Bool("collect-errors") {
						opts.Strategy = gtfs.CollectErrors
					}
					static, err := readStatic(path, opts)
					if err != nil {
						return err
					}
					printWarnings(out, static.Warnings)
					fmt.Fprintln(out, "Num stops", len(static.Stops))
					fmt.Fprintln(out, "Num shape points", len(static.ShapePoints))
					fmt.Fprintln(out, "Num shapes", len(static.Shapes))
					return nil
				},
			},
		},
	}
}

// loadConfig reads the --config file, if any, and applies the command line flags on top of it.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if ctx.Bool("collect-errors") {
		cfg.Errors = config.ErrorsCollect
	}
	if ctx.Bool("unique") {
		cfg.Unique = true
	}
	if output := ctx.String("output"); output != "" {
		if output != config.OutputText && output != config.OutputCsv {
			return cfg, fmt.Errorf("unknown output format %q", output)
		}
		cfg.Output = output
	}
	filters, err := parseFilterFlags(ctx.StringSlice("filter"))
	if err != nil {
		return cfg, err
	}
	if len(filters) > 0 && cfg.Filters == nil {
		cfg.Filters = map[string]string{}
	}
	for k, v := range filters {
		cfg.Filters[k] = v
	}
	return cfg, nil
}

func parseFilterFlags(raw []string) (map[string]string, error) {
	filters := map[string]string{}
	for _, f := range raw {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("filter %q is not of the form column=value", f)
		}
		filters[k] = v
	}
	return filters, nil
}

func pathArg(ctx *cli.Context) (string, error) {
	if ctx.Args().Len() == 0 {
		return "", fmt.Errorf("a path to the GTFS file was not provided")
	}
	return ctx.Args().First(), nil
}

func readStatic(path string, opts gtfs.ParseStaticOptions) (*gtfs.Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	static, err := gtfs.ParseStatic(b, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS static data: %w", err)
	}
	return static, nil
}

func readStops(path string, cfg config.Config) ([]gtfs.Stop, []warnings.StaticWarning, error) {
	opts := gtfs.ParseStaticOptions{Strategy: cfg.Strategy()}
	if strings.HasSuffix(path, ".zip") {
		static, err := readStatic(path, opts)
		if err != nil {
			return nil, nil, err
		}
		return static.Stops, static.Warnings, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return gtfs.ParseStopsFile(f, opts)
}

func readShapePoints(path string, cfg config.Config) ([]gtfs.ShapePoint, []warnings.StaticWarning, error) {
	opts := gtfs.ParseStaticOptions{Strategy: cfg.Strategy()}
	if strings.HasSuffix(path, ".zip") {
		static, err := readStatic(path, opts)
		if err != nil {
			return nil, nil, err
		}
		return static.ShapePoints, static.Warnings, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return gtfs.ParseShapesFile(f, opts)
}

func printWarnings(out io.Writer, staticWarnings []warnings.StaticWarning) {
	wc := color.New(color.FgYellow)
	for _, w := range staticWarnings {
		fmt.Fprintf(out, "%s %s\n", wc.Sprint("warning:"), w.Error())
	}
}

func formatShape(shape *gtfs.Shape) string {
	tc := color.New(color.FgCyan)
	vc := color.New(color.FgMagenta)
	first := shape.Point(shape.First())
	last := shape.Point(shape.Last())
	return fmt.Sprintf(
		"ShapeID %s  Points %s  From (%s, %s)  To (%s, %s)  Length %s deg  %s m",
		tc.Sprint(shape.Id),
		tc.Sprint(shape.Len()),
		vc.Sprint(first.Latitude), vc.Sprint(first.Longitude),
		vc.Sprint(last.Latitude), vc.Sprint(last.Longitude),
		vc.Sprintf("%.6f", shape.Length()),
		vc.Sprintf("%.0f", shape.GreatCircleDistanceToEnd(shape.First())),
	)
}
