// Package report renders the analysis for humans: chart panels as one PNG
// and a plain-text summary for standard output.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hashforge/gasplot-cli/internal/dataset"
	"github.com/hashforge/gasplot-cli/internal/regression"
)

// Console assembles the text report. Full and Small are nil when the
// corresponding fit was skipped; each section is simply omitted then.
type Console struct {
	Full           *regression.Result
	Small          *regression.Result
	SmallThreshold int
	Special        []dataset.Row
}

// String renders the report. Costs print to 2 decimals, R-squared to 4;
// the special-format rows dump in original order with both raw fields.
func (c Console) String() string {
	var b strings.Builder

	if c.Full != nil {
		b.WriteString("Gas Regression Analysis:\n")
		fmt.Fprintf(&b, "Base gas cost: %.2f gas units\n", c.Full.Intercept)
		fmt.Fprintf(&b, "Marginal cost per byte: %.2f gas units\n", c.Full.Slope)
		fmt.Fprintf(&b, "R-squared: %.4f\n", c.Full.R2)
	}

	if c.Small != nil {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Small Message Analysis (≤ %d bytes):\n", c.SmallThreshold)
		fmt.Fprintf(&b, "Base gas cost: %.2f gas units\n", c.Small.Intercept)
		fmt.Fprintf(&b, "Marginal cost per byte: %.2f gas units\n", c.Small.Slope)
		fmt.Fprintf(&b, "R-squared: %.4f\n", c.Small.R2)
	}

	if len(c.Special) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Special Format Analysis:\n")
		tw := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Message Length\tGas Used")
		for _, r := range c.Special {
			fmt.Fprintf(tw, "%s\t%s\n", r.Length, r.Gas)
		}
		tw.Flush()
	}

	return b.String()
}
