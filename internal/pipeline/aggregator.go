package pipeline

import "complaints/pkg/models"

// Aggregator groups complaints by (product, year)
type Aggregator struct {
	groups map[models.GroupKey]*models.GroupRecord
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{groups: make(map[models.GroupKey]*models.GroupRecord)}
}

// Fold adds one complaint to its group, creating the group on first sight
func (a *Aggregator) Fold(c models.Complaint) {
	key := models.GroupKey{Product: c.Product, Year: c.Year}

	record, ok := a.groups[key]
	if !ok {
		a.groups[key] = &models.GroupRecord{
			Product:    c.Product,
			Year:       c.Year,
			Complaints: 1,
			Companies:  map[string]int{c.Company: 1},
		}
		return
	}

	record.Complaints++
	record.Companies[c.Company]++
}

// Len returns the number of groups
func (a *Aggregator) Len() int {
	return len(a.groups)
}

// Groups returns the grouped records. Callers must not modify them.
func (a *Aggregator) Groups() map[models.GroupKey]*models.GroupRecord {
	return a.groups
}
