package cli

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/macropower/modelkit/api/v1beta1"
	"github.com/macropower/modelkit/api/v1beta1/rulelists"
	"github.com/macropower/modelkit/pkg/config"
	"github.com/macropower/modelkit/pkg/model"
)

const describeExamples = `  # Render a rule model as a readable rule list:
  modelkit describe model.yaml

  # Substitute feature names for feature indices:
  modelkit describe model.yaml --feature-names age,workclass,education

  # Label the output vector:
  modelkit describe model.yaml --label "positive prob"`

type DescribeArgs struct {
	*RootArgs

	ConfigPath   string
	Label        string
	FeatureNames []string
}

func NewDescribeArgs(rootArgs *RootArgs) *DescribeArgs {
	return &DescribeArgs{
		RootArgs: rootArgs,
	}
}

func (da *DescribeArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&da.ConfigPath, "config", "", "Path to the modelkit configuration file")
	cmd.Flags().StringSliceVar(&da.FeatureNames, "feature-names", nil,
		"Display names for feature indices, in index order")
	cmd.Flags().StringVar(&da.Label, "label", "",
		"Label for rule output vectors")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewDescribeCmd(da *DescribeArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "describe <file>",
		Short:   "Render a model file as a readable rule list",
		Example: describeExamples,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.LoadFile(args[0])
			if err != nil {
				return err
			}

			if !v1beta1.IsRule(m) {
				return fmt.Errorf("%s: cannot describe %q models", args[0], m.GetType())
			}

			rl, ok := m.(*rulelists.RuleList)
			if !ok {
				return fmt.Errorf("%s: unexpected rule model representation", args[0])
			}

			slog.Debug("loaded model", slog.String("model", rl.String()))

			configPath := da.ConfigPath
			if configPath == "" {
				configPath = config.GetPath()
			}

			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}

			label := da.Label
			if label == "" {
				label = cfg.LabelFor(rl.GetDataset())
			}

			featureNames := da.FeatureNames
			if len(featureNames) == 0 {
				featureNames = cfg.FeatureNamesFor(rl.GetDataset())
			}

			out := cmd.OutOrStdout()

			fmt.Fprintln(out, rl.Describe(rulelists.DescribeOptions{
				FeatureNames: featureNames,
				Label:        label,
			}))
			fmt.Fprintln(out, summarize(rl))

			return nil
		},
	}

	da.AddFlags(cmd)

	return cmd
}

func summarize(rl *rulelists.RuleList) string {
	var total float64

	for _, support := range rl.Supports {
		for _, v := range support {
			total += v
		}
	}

	return fmt.Sprintf("%d rules covering %s training instances",
		len(rl.Rules), humanize.Commaf(total))
}
