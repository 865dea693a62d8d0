package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	seg_math "github.com/drakos74/free-segment/internal/math"
	"github.com/drakos74/free-segment/internal/metrics"
	"github.com/drakos74/free-segment/internal/model"
	"github.com/drakos74/free-segment/internal/segment"
	"github.com/drakos74/free-segment/internal/storage"
	"github.com/drakos74/free-segment/internal/storage/file/csv"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type runOptions struct {
	input  string
	method string
	store  bool
	dir    string
	cfg    model.Config
}

func newRunCmd() *cobra.Command {
	opts := runOptions{cfg: model.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster the customers of a csv file",
		Long: `Cluster the customers of a csv file and print the cluster summaries.

The first row of the file is the header, the first column the customer id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := run(cmd.OutOrStdout(), opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "csv file with the customer features")
	flags.StringVarP(&opts.method, "method", "m", string(model.KMeans), fmt.Sprintf("clustering method %v", model.Methods()))
	flags.IntVar(&opts.cfg.K, "k", model.DefaultK, "number of clusters for kmeans")
	flags.Float64Var(&opts.cfg.Eps, "eps", model.DefaultEps, "neighbourhood radius for dbscan")
	flags.IntVar(&opts.cfg.MinSamples, "min-samples", model.DefaultMinSamples, "neighbours of a core point for dbscan")
	flags.IntVar(&opts.cfg.NComponents, "components", model.DefaultNComponents, "number of components for gmm")
	flags.BoolVar(&opts.cfg.Standardize, "standardize", model.DefaultStandardize, "standardise the features before clustering")
	flags.Int64Var(&opts.cfg.RandomState, "seed", model.DefaultRandomState, "seed of the centroid selection")
	flags.IntVar(&opts.cfg.MaxIterations, "iterations", 0, "iteration budget, 0 for the method default")
	flags.IntVar(&opts.cfg.Workers, "workers", model.DefaultWorkers, "parallel workers")
	flags.BoolVar(&opts.store, "store", false, "persist the report")
	flags.StringVar(&opts.dir, "dir", storage.DefaultDir, "storage directory for persisted reports")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func run(out io.Writer, opts runOptions) (*segment.Report, error) {
	table, err := csv.Import(opts.input)
	if err != nil {
		return nil, err
	}

	cfg := opts.cfg
	cfg.Method = model.Method(opts.method)

	start := time.Now()
	report, err := segment.NewReport(table.IDs, table.Features, cfg)
	if err != nil {
		metrics.Observer.Observe(cfg.Method, nil, err, time.Since(start))
		return nil, err
	}
	metrics.Observer.Observe(report.Result.Method, &report.Result, nil, time.Since(start))

	if opts.store {
		store, registry, err := persistence(opts.dir)
		if err != nil {
			return nil, err
		}
		if err := segment.Save(store, registry, report); err != nil {
			return nil, err
		}
		log.Info().Str("id", report.ID).Str("dir", opts.dir).Msg("stored report")
	}

	render(out, table.Header, report)
	return report, nil
}

// render prints the quality scores and one row per cluster.
func render(out io.Writer, header []string, report *segment.Report) {
	result := report.Result
	fmt.Fprintf(out, "method: %s clusters: %d noise: %d iterations: %d converged: %v\n",
		result.Method, result.Clusters, result.Noise, result.Iterations, result.Converged)

	scores := make([]string, 0, 3)
	if s := result.Quality.Silhouette; s != nil {
		scores = append(scores, fmt.Sprintf("silhouette: %s", seg_math.Format(*s)))
	}
	if db := result.Quality.DaviesBouldin; db != nil {
		scores = append(scores, fmt.Sprintf("davies-bouldin: %s", seg_math.Format(*db)))
	}
	if nr := result.Quality.NoiseRatio; nr != nil {
		scores = append(scores, fmt.Sprintf("noise-ratio: %s", seg_math.Format(*nr)))
	}
	if len(scores) > 0 {
		fmt.Fprintln(out, strings.Join(scores, " "))
	}

	table := tablewriter.NewWriter(out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(append([]string{"cluster", "size", "%"}, header...))
	for _, summary := range report.Summaries {
		row := []string{
			summary.Label.String(),
			fmt.Sprintf("%d", summary.Size),
			seg_math.Format(summary.Percentage),
		}
		table.Append(append(row, seg_math.FormatAll(summary.Averages)...))
	}
	table.Render()
}
