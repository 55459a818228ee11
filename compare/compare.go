// Package compare builds the side-by-side feature-comparison table from
// product snapshots held in the compare list.
package compare

import (
	"sort"

	"techfix/cartstore"
)

// missingCell marks an attribute a product does not carry.
const missingCell = "—"

// excludedKeys are snapshot internals that never appear as feature rows.
var excludedKeys = map[string]bool{
	"id":          true,
	"product_id":  true,
	"version":     true,
	"image":       true,
	"created_at":  true,
	"updated_at":  true,
	"reviews":     true,
	"description": true,
}

// Column identifies one compared product.
type Column struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
}

// Row is one feature with a value cell per column.
type Row struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// BuildTable computes the union of attribute keys across all snapshots,
// drops the excluded internals, pins price and sale_price first and sorts the
// remaining keys alphabetically. Duplicate product ids collapse into a single
// column; the first snapshot wins.
func BuildTable(snapshots []cartstore.ProductSnapshot) Table {
	deduped := make([]cartstore.ProductSnapshot, 0, len(snapshots))
	seen := make(map[uint]bool, len(snapshots))
	for _, s := range snapshots {
		if seen[s.ProductID] {
			continue
		}
		seen[s.ProductID] = true
		deduped = append(deduped, s)
	}

	table := Table{}
	if len(deduped) == 0 {
		return table
	}

	for _, s := range deduped {
		table.Columns = append(table.Columns, Column{
			ProductID: s.ProductID,
			Name:      s.Name,
			Image:     s.Image,
		})
	}

	keySet := make(map[string]bool)
	for _, s := range deduped {
		for key := range s.Attributes {
			if !excludedKeys[key] {
				keySet[key] = true
			}
		}
	}
	// price and sale_price come from the snapshot itself, not the free-form
	// attribute map, so strip them from the union before pinning.
	delete(keySet, "price")
	delete(keySet, "sale_price")

	extraKeys := make([]string, 0, len(keySet))
	for key := range keySet {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)

	table.Rows = append(table.Rows, priceRow(deduped), salePriceRow(deduped))
	for _, key := range extraKeys {
		row := Row{Key: key}
		for _, s := range deduped {
			value, ok := s.Attributes[key]
			if !ok {
				value = missingCell
			}
			row.Values = append(row.Values, value)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func priceRow(snapshots []cartstore.ProductSnapshot) Row {
	row := Row{Key: "price"}
	for _, s := range snapshots {
		row.Values = append(row.Values, s.Price.String())
	}
	return row
}

func salePriceRow(snapshots []cartstore.ProductSnapshot) Row {
	row := Row{Key: "sale_price"}
	for _, s := range snapshots {
		if s.SalePrice.IsPositive() {
			row.Values = append(row.Values, s.SalePrice.String())
		} else {
			row.Values = append(row.Values, missingCell)
		}
	}
	return row
}
