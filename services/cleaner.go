package services

import (
	"strings"

	"immoweb-scraper/models"
	"immoweb-scraper/utils"
)

// dedupeKeyColumns form the composite address key two records must share to
// count as the same property.
var dedupeKeyColumns = []string{"postal_code", "street", "number", "box"}

// CleanRecords drops records with no extracted data, dedupes the rest by
// address key keeping the first occurrence, and re-indexes sequentially.
// Records that all lack an address collapse into one, the same way
// missing-key rows compare equal to each other.
func CleanRecords(records []models.PropertyRecord) []models.PropertyRecord {
	seen := make(map[string]bool)
	cleaned := make([]models.PropertyRecord, 0, len(records))

	for _, r := range records {
		if isEmptyRecord(r) {
			continue
		}

		key := addressKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true

		r.Index = len(cleaned)
		cleaned = append(cleaned, r)
	}

	utils.Success("Cleaned dataset: kept %d of %d records", len(cleaned), len(records))
	return cleaned
}

// isEmptyRecord reports whether nothing beyond the source URL was extracted.
func isEmptyRecord(r models.PropertyRecord) bool {
	for col, v := range r.Fields {
		if col == "url" {
			continue
		}
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func addressKey(r models.PropertyRecord) string {
	parts := make([]string, 0, len(dedupeKeyColumns))
	for _, col := range dedupeKeyColumns {
		parts = append(parts, strings.ToLower(strings.TrimSpace(r.Fields[col])))
	}
	return strings.Join(parts, "|")
}
