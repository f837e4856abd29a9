package pipeline

import (
	"complaints/pkg/models"
	"complaints/pkg/utils"

	mapset "github.com/deckarep/golang-set/v2"
)

// StatsCalculator handles run statistics calculation
type StatsCalculator struct{}

// NewStatsCalculator creates a new stats calculator
func NewStatsCalculator() *StatsCalculator {
	return &StatsCalculator{}
}

// GetRunStats returns statistics about a finished run
func (sc *StatsCalculator) GetRunStats(result *models.RunResult) map[string]interface{} {
	stats := make(map[string]interface{})

	stats["rows_read"] = result.RowsRead
	stats["rows_valid"] = result.RowsValid
	stats["input_format"] = result.InputFormat
	stats["input_size"] = result.InputSize
	stats["input_size_human"] = utils.FormatBytes(result.InputSize)
	stats["processing_duration"] = result.Duration.String()
	stats["groups"] = len(result.Rows)

	skipped := 0
	for _, n := range result.Skipped {
		skipped += n
	}
	stats["rows_skipped"] = skipped

	products := mapset.NewSet[string]()
	years := mapset.NewSet[int]()
	complaints := 0
	for _, row := range result.Rows {
		products.Add(row.Product)
		years.Add(row.Year)
		complaints += row.Complaints
	}
	stats["products"] = products.Cardinality()
	stats["years"] = years.Cardinality()
	stats["complaints"] = complaints

	return stats
}
