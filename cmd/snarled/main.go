// Command snarled runs the layout connectivity checker end to end: it
// reads geometry through a pluggable GeometrySource, a connectivity spec
// and (optionally) a layer map and label remap, traces electrical
// connectivity, and reports nets, shorts, and opens (spec §6.4).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/scale"
	"github.com/katalvlaran/snarled/specio"
	"github.com/katalvlaran/snarled/trace"
)

type options struct {
	layerMapPath     string
	topCell          string
	labelsRemapPath  string
	lfilePath        string
	lremapPath       string
	llayerMapPath    string
	ltopCell         string
	outputPath       string
	rawLabelNames    bool
	format           string
	scaleFactor      int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "snarled file_path connectivity_path",
		Short: "layout connectivity checker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.layerMapPath, "layermap", "m", "", "layer map file")
	flags.StringVarP(&opts.topCell, "top", "t", "", "top cell name")
	flags.StringVarP(&opts.labelsRemapPath, "labels-remap", "p", "", "label remap file")
	flags.StringVarP(&opts.lfilePath, "lfile-path", "l", "", "alternate label-source file")
	flags.StringVarP(&opts.lremapPath, "lremap", "r", "", "remap file for the alternate label source")
	flags.StringVarP(&opts.llayerMapPath, "llayermap", "n", "", "layer map for the alternate label source")
	flags.StringVarP(&opts.ltopCell, "ltop", "s", "", "top cell for the alternate label source")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "diagnostic output layout path")
	flags.BoolVarP(&opts.rawLabelNames, "raw-label-names", "u", false, "do not strip trailing _<integer> suffixes from label text")
	flags.StringVar(&opts.format, "format", "json", "geometry source format (only \"json\" is bundled; OASIS/GDSII readers are external)")
	flags.Int64Var(&opts.scaleFactor, "scale-factor", scale.DefaultFactor, "polygon-Boolean engine scale factor")

	return cmd
}

func run(filePath, connectivityPath string, opts *options) error {
	if opts.format != "json" {
		return fmt.Errorf("snarled: unsupported --format %q; only \"json\" is bundled (OASIS/GDSII readers are an external collaborator)", opts.format)
	}
	if opts.lfilePath != "" || opts.llayerMapPath != "" || opts.ltopCell != "" {
		return fmt.Errorf("snarled: -l/-n/-s (alternate label-source file) require an OASIS/GDSII GeometrySource, which is outside this module's scope")
	}
	if opts.topCell != "" {
		return fmt.Errorf("snarled: -t/--top requires a hierarchical layout reader, which is outside this module's scope")
	}
	if opts.outputPath != "" {
		return fmt.Errorf("snarled: -o/--output (diagnostic layout rendering) is outside this module's scope")
	}

	var layerMap map[string]layer.ID
	if opts.layerMapPath != "" {
		m, err := specio.ReadLayerMap(opts.layerMapPath)
		if err != nil {
			return err
		}
		layerMap = m
	}

	refs, err := specio.ReadConnectivity(connectivityPath)
	if err != nil {
		return err
	}
	connectivity := make([]trace.Triple, len(refs))
	for i, ref := range refs {
		top, err := ref.Top.Resolve(layerMap)
		if err != nil {
			return err
		}
		bot, err := ref.Bot.Resolve(layerMap)
		if err != nil {
			return err
		}
		tr := trace.Triple{Top: top, Bot: bot}
		if ref.ViaPresent {
			via, err := ref.Via.Resolve(layerMap)
			if err != nil {
				return err
			}
			tr.Via = via
			tr.ViaPresent = true
		}
		connectivity[i] = tr
	}

	var labelsRemap map[string]string
	if opts.labelsRemapPath != "" {
		m, err := specio.ReadRemap(opts.labelsRemapPath)
		if err != nil {
			return err
		}
		labelsRemap = m
	}

	src := trace.JSONGeometrySource{Path: filePath}
	polys, err := src.Polys()
	if err != nil {
		return err
	}
	labels, err := src.Labels()
	if err != nil {
		return err
	}
	applyLabelsRemap(labels, labelsRemap)

	result, err := trace.Run(trace.Input{
		Polys:            polys,
		Labels:           labels,
		Connectivity:     connectivity,
		ScaleFactor:      opts.scaleFactor,
		StripLabelSuffix: !opts.rawLabelNames,
	})
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// applyLabelsRemap rewrites label text in place using remap's "old : new"
// entries (spec §6.3), before labels ever reach the assigner (C5). Labels
// whose text is not a key of remap are left untouched.
func applyLabelsRemap(labels map[layer.ID][]trace.Label, remap map[string]string) {
	if len(remap) == 0 {
		return
	}
	for _, layerLabels := range labels {
		for i, lb := range layerLabels {
			if mapped, ok := remap[lb.Text]; ok {
				layerLabels[i].Text = mapped
			}
		}
	}
}

func printResult(result *trace.Result) {
	fmt.Println("Nets:")
	for _, n := range result.Nets {
		fmt.Printf("  %s\n", n)
	}

	fmt.Println("Shorts:")
	for _, set := range result.Shorts {
		fmt.Print("  (")
		for i, n := range set {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(n)
		}
		fmt.Println(")")
	}

	fmt.Println("Opens:")
	for text, members := range result.Opens {
		fmt.Printf("  %s: %v\n", text, members)
	}
}
