package core

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"pantrycore/internal/catalog"
)

// InventoryCSV renders the current inventory of one domain as CSV, one row
// per known item (catalog plus custom), sorted by category then name. Items
// with no record yet report a zero count.
func InventoryCSV(domain catalog.Domain, state State) ([]byte, error) {
	items := MergedItems(domain, state.Items)
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := items[ids[i]], items[ids[j]]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Name < b.Name
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Item", "Category", "Count", "Unit"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, id := range ids {
		item := items[id]
		rec := state.Inventory[id]
		row := []string{item.Name, item.Category, formatAmount(rec.Count), item.Unit}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ListCSV renders a prep or reorder list snapshot as CSV.
func ListCSV(entries []ListEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Item", "Category", "Amount", "Unit", "Current Count"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{e.Name, e.Category, formatAmount(e.Amount), e.Unit, formatAmount(e.CurrentCount)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatAmount prints whole numbers without a decimal point and fractional
// quantities with up to two places.
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
