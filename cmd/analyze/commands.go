package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/hooplab/internal/adapters/report"
	"github.com/okian/hooplab/internal/domain/catalog"
)

func newClusterCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cluster",
		Short: "Cluster the dataset and export the cluster means workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cfg, err := f.run(cmd)
			if err != nil {
				return err
			}
			run := svc.Current()
			path := filepath.Join(cfg.ReportDir, report.MeansFileName)
			if err := report.WriteClusterMeans(path, run.Profile, run.Roles, catalog.Default()); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLUSTER\tSIZE\tROLE")
			for _, c := range run.Profile.Clusters {
				fmt.Fprintf(tw, "%d\t%d\t%s\n", c.ID, c.Size, run.Roles[c.ID])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inertia %.4f, cluster means written to %s\n", run.Assignment.Inertia, path)
			return nil
		},
	}
}

func newElbowCmd(f *flags) *cobra.Command {
	var maxK int
	cmd := &cobra.Command{
		Use:   "elbow",
		Short: "Print the inertia curve for k = 1..max-k",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := f.run(cmd)
			if err != nil {
				return err
			}
			pts, err := svc.Sweep(cmd.Context(), maxK)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "K\tINERTIA")
			for _, p := range pts {
				fmt.Fprintf(tw, "%d\t%.4f\n", p.K, p.Inertia)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&maxK, "max-k", 0, "largest k to try (default max_k from config)")
	return cmd
}

func newPlayerCmd(f *flags) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "player NAME",
		Short: "Write the weak-spot report of one player as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := f.run(cmd)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			a, err := svc.Analyze(cmd.Context(), name)
			if err != nil {
				return err
			}
			if !save {
				return report.WriteJSON(cmd.OutOrStdout(), a)
			}
			path := filepath.Join(cfg.ReportDir, reportFileName(a.Name))
			if err := report.SaveJSON(path, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the report into the report directory instead of stdout")
	return cmd
}

// reportFileName turns a player name into a file name, e.g. "bob_big_report.json".
func reportFileName(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.ToLower(strings.TrimSpace(name)))
	return slug + "_report.json"
}
