package rulelists

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultLabel is used for rule outputs when no label is configured.
const DefaultLabel = "prob"

// DescribeOptions control how rules are rendered.
type DescribeOptions struct {
	// Categories overrides the display of a category value, for example
	// with the interval a discretizer assigned to the bucket. When nil,
	// categories render as "= <value>".
	Categories func(feature, category int) string
	// FeatureNames maps feature indices to display names. Features
	// without a name render as X<index>.
	FeatureNames []string
	// Label names the output vector, e.g. "positive prob".
	Label string
}

// Describe renders the rule in a readable IF/THEN form, e.g.
//
//	IF (X0 = 1) and (X2 = 3) THEN prob: [0.9000, 0.1000]
//
// A rule without conditions renders as a DEFAULT rule.
func (r Rule) Describe(opts DescribeOptions) string {
	label := opts.Label
	if label == "" {
		label = DefaultLabel
	}

	output := fmt.Sprintf("%s: %s", label, formatOutput(r.Output))
	if len(r.Conditions) == 0 {
		return "DEFAULT " + output
	}

	clauses := make([]string, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		feature := "X" + strconv.Itoa(c.Feature)
		if c.Feature >= 0 && c.Feature < len(opts.FeatureNames) {
			feature = opts.FeatureNames[c.Feature]
		}

		category := " = " + strconv.Itoa(c.Category)
		if opts.Categories != nil {
			category = " in " + opts.Categories(c.Feature, c.Category)
		}

		clauses = append(clauses, fmt.Sprintf("(%s%s)", feature, category))
	}

	return "IF " + strings.Join(clauses, " and ") + " THEN " + output
}

// Describe renders the whole rule list, chaining rules with ELSE:
//
//	The rule list is:
//
//	IF (X1 = 0) THEN prob: [0.9667, 0.0333] [29/1]
//
//	ELSE DEFAULT prob: [0.0500, 0.9500] [1/19]
//
// Each rule that has a support vector gets a trailing annotation with
// the per-class counts.
func (rl *RuleList) Describe(opts DescribeOptions) string {
	var b strings.Builder

	b.WriteString("The rule list is:\n\n")

	for i, r := range rl.Rules {
		if i > 0 {
			b.WriteString("\nELSE ")
		}

		b.WriteString(r.Describe(opts))

		if i < len(rl.Supports) && len(rl.Supports[i]) > 0 {
			b.WriteString(" [" + formatSupport(rl.Supports[i]) + "]")
		}

		b.WriteString("\n")
	}

	return b.String()
}

func formatOutput(output []float64) string {
	if len(output) == 1 {
		return strconv.FormatFloat(output[0], 'f', 4, 64)
	}

	parts := make([]string, 0, len(output))
	for _, v := range output {
		parts = append(parts, strconv.FormatFloat(v, 'f', 4, 64))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func formatSupport(support []float64) string {
	parts := make([]string, 0, len(support))
	for _, v := range support {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}

	return strings.Join(parts, "/")
}
