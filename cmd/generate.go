package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/autoviz/internal/classify"
	"github.com/KaramelBytes/autoviz/internal/dataset"
	"github.com/KaramelBytes/autoviz/internal/report"
	"github.com/KaramelBytes/autoviz/internal/utils"
	"github.com/KaramelBytes/autoviz/internal/viz"
)

var (
	genOutputDir string
	genSeed      int64
	genZip       bool
	genHTML      bool
	genQuiet     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate charts for a CSV or Excel dataset",
	Long: `Generate loads the dataset, classifies its columns and renders the
chart battery: histograms and boxplots for numeric columns, bar charts
for categorical columns, a correlation heatmap and pairwise scatter grid
when more than one numeric column exists, and a time series per
datetime column. Results are written as a ZIP of PNGs and/or a
self-contained HTML report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !genZip && !genHTML {
			genZip, genHTML = true, true
		}

		ds, err := dataset.LoadFile(args[0])
		if err != nil {
			return err
		}
		if !genQuiet {
			fmt.Printf("✓ Loaded %s: %d rows, %d columns\n", ds.Name, ds.NumRows(), ds.NumColumns())
		}

		c := classify.Classify(ds)
		if !genQuiet {
			fmt.Printf("  %d numeric, %d categorical, %d datetime\n",
				len(c.Numeric), len(c.Categorical), len(c.Datetime))
		}

		seed := genSeed
		if seed == 0 && cfg != nil {
			seed = cfg.SampleSeed
		}

		var sink viz.ProgressSink
		if !genQuiet {
			sink = viz.ProgressFunc(func(done, total int) {
				fmt.Printf("  [%d/%d] charts rendered\n", done, total)
			})
		}

		res := viz.Generate(ds, c, viz.Options{SampleSeed: seed}, sink)
		for _, sk := range res.Skipped {
			fmt.Printf("⚠ Skipped %s for %s: %v\n", sk.Kind, sk.Label, sk.Err)
		}
		if len(res.Artifacts) == 0 {
			return fmt.Errorf("no charts could be generated: dataset has no numeric, categorical or datetime columns")
		}

		if genZip {
			data, err := report.Zip(res.Artifacts)
			if err != nil {
				return fmt.Errorf("build zip archive: %w", err)
			}
			path := filepath.Join(genOutputDir, report.ZipFileName)
			if err := utils.SafeWriteFile(path, data); err != nil {
				return err
			}
			if !genQuiet {
				fmt.Printf("✓ Wrote %s (%d plots)\n", path, len(res.Artifacts))
			}
		}
		if genHTML {
			data, err := report.HTML(res.Artifacts)
			if err != nil {
				return fmt.Errorf("build html report: %w", err)
			}
			path := filepath.Join(genOutputDir, report.HTMLFileName)
			if err := utils.SafeWriteFile(path, data); err != nil {
				return err
			}
			if !genQuiet {
				fmt.Printf("✓ Wrote %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genOutputDir, "output", "o", ".", "directory to write reports into")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "pairplot sampling seed (overrides config)")
	generateCmd.Flags().BoolVar(&genZip, "zip", false, "write the ZIP archive of PNGs")
	generateCmd.Flags().BoolVar(&genHTML, "html", false, "write the self-contained HTML report")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(generateCmd)
}
