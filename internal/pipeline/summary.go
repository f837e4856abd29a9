package pipeline

import (
	"sort"

	"complaints/pkg/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize returns the number of distinct companies in a group and the
// largest share of its complaints held by one company, as a whole percentage.
// Each share is rounded half to even before taking the maximum.
func Summarize(record *models.GroupRecord) (companies int, highestPercentage int) {
	if record.Complaints == 0 {
		return len(record.Companies), 0
	}

	total := decimal.NewFromInt(int64(record.Complaints))
	for _, occurrences := range record.Companies {
		share := decimal.NewFromInt(int64(occurrences)).Mul(hundred).Div(total).RoundBank(0)
		if pct := int(share.IntPart()); pct > highestPercentage {
			highestPercentage = pct
		}
	}

	return len(record.Companies), highestPercentage
}

// Assemble finalizes every group and sorts the rows by all of their fields
func Assemble(groups map[models.GroupKey]*models.GroupRecord) []models.SummaryRow {
	rows := make([]models.SummaryRow, 0, len(groups))
	for _, record := range groups {
		companies, highest := Summarize(record)
		rows = append(rows, models.SummaryRow{
			Product:           record.Product,
			Year:              record.Year,
			Complaints:        record.Complaints,
			Companies:         companies,
			HighestPercentage: highest,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Less(rows[j])
	})
	return rows
}
