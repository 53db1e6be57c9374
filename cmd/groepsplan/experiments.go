package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/groepsplan/internal/experiments"
)

var experimentsCmd = &cobra.Command{
	Use:   "experiments [id]",
	Short: "List prompt experiments and their variants",
	Long:  "List every prompt experiment. With an id and --subject, show which variant that subject key is assigned.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExperiments,
}

var experimentsSubject string

func init() {
	experimentsCmd.Flags().StringVar(&experimentsSubject, "subject", "", "Subject key to assign, e.g. rekenen/niveauverschillen/na_middentoets")

	rootCmd.AddCommand(experimentsCmd)
}

func runExperiments(cmd *cobra.Command, args []string) error {
	all := experiments.Experiments()
	if len(args) == 1 {
		variants, err := experiments.PromptVariants(args[0])
		if err != nil {
			return err
		}
		all = filterExperiments(all, args[0])
		if experimentsSubject != "" {
			v, err := experiments.SelectVariant(args[0], experimentsSubject)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Assigned: %s (weight %d of %d variants)\n\n", v.Name, variants[v.Name].Weight, len(variants))
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "EXPERIMENT\tDIMENSION\tVARIANT\tWEIGHT")
	for _, exp := range all {
		for _, v := range exp.Variants {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", exp.ID, exp.Dimension, v.Name, v.Weight)
		}
	}
	return tw.Flush()
}

func filterExperiments(all []experiments.Experiment, id string) []experiments.Experiment {
	for _, exp := range all {
		if exp.ID == id {
			return []experiments.Experiment{exp}
		}
	}
	return nil
}
