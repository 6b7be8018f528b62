package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/fondos/pipeline"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the account of a load run.
func SummaryMarkdown(s *pipeline.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	switch {
	case s.State == pipeline.Aborted:
		doc.H1(fmt.Sprintf("Load aborted in %v", s.Reached))
		doc.PlainText(md.Bold(fmt.Sprint(s.Err)))
	case s.Complete():
		doc.H1("Load complete")
	default:
		doc.H1("Load partially complete")
	}
	doc.PlainText(fmt.Sprintf("Run %v, duration: %v", s.RunID, s.Duration.Round(time.Millisecond)))

	if s.Reached > pipeline.ReadSources {
		doc.H2("Records")
		doc.Table(md.TableSet{
			Header: []string{"Collection", "Rows", "Built", "Loaded", "Dropped"},
			Rows: [][]string{
				{"Funds", count(s.Registry.ReturnRows + s.Registry.CostRows), count(s.Registry.Funds), count(s.FundsLoaded), count(s.Registry.Funds - s.FundsLoaded)},
				{"Returns", count(s.Returns.Rows), count(s.Returns.Built), count(s.ReturnsLoaded), count(s.Returns.Rows - s.ReturnsLoaded)},
				{"Costs", count(s.Costs.Rows), count(s.Costs.Built), count(s.CostsLoaded), count(s.Costs.Rows - s.CostsLoaded)},
			},
		})
	}
	if s.Reached >= pipeline.LoadCosts {
		doc.PlainText(fmt.Sprintf("Total assets under management: %s", formatCLP(s.Assets)))
	}

	var issues []string
	add := func(n int, format string) {
		if n > 0 {
			issues = append(issues, fmt.Sprintf(format, n))
		}
	}
	add(s.InvalidCells, "%d unreadable cells treated as not reported")
	add(s.Registry.InvalidKey, "%d source rows without a usable fo_run/fm_serie")
	add(s.Registry.Duplicates, "%d duplicate rows dropped (first row kept)")
	add(s.Returns.Unresolved+s.Costs.Unresolved, "%d fact rows of funds missing from the registry")
	add(s.Returns.DateCorrected, "%d return records dated with the fallback as-of date")
	add(s.FailedBatches, "%d batches rejected")
	if len(issues) > 0 {
		doc.H2("Issues")
		doc.BulletList(issues...)
	}
	return doc.String()
}
