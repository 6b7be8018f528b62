package renderer

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/etnz/fondos"
	md "github.com/nao1215/markdown"
)

// Plan is what a load would send to the registry, computed offline.
type Plan struct {
	ReturnsFile  string
	CostsFile    string
	InvalidCells int
	Registry     fondos.RegistryStats
	Classes      map[fondos.InvestorClass]int
}

// PlanMarkdown renders an offline plan.
func PlanMarkdown(p *Plan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%d funds to register", p.Registry.Funds))
	doc.Table(md.TableSet{
		Header: []string{"Extract", "File", "Rows"},
		Rows: [][]string{
			{"Returns", p.ReturnsFile, count(p.Registry.ReturnRows)},
			{"Costs", p.CostsFile, count(p.Registry.CostRows)},
		},
	})

	doc.H2("Investor classes")
	classes := make([]fondos.InvestorClass, 0, len(p.Classes))
	for c := range p.Classes {
		classes = append(classes, c)
	}
	slices.Sort(classes)
	rows := make([][]string, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, []string{string(c), count(p.Classes[c])})
	}
	doc.Table(md.TableSet{Header: []string{"Class", "Funds"}, Rows: rows})

	doc.H2("Data quality")
	doc.BulletList(
		fmt.Sprintf("Duplicate rows dropped: %d", p.Registry.Duplicates),
		fmt.Sprintf("Rows without key: %d", p.Registry.InvalidKey),
		fmt.Sprintf("Unreadable cells: %d", p.InvalidCells),
	)
	return doc.String()
}
