package services

import (
	"testing"

	"immoweb-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(index int, fields map[string]string) models.PropertyRecord {
	return models.PropertyRecord{Index: index, Fields: fields}
}

func TestCleanRecords_DedupesByAddressKey(t *testing.T) {
	records := []models.PropertyRecord{
		record(0, map[string]string{"postal_code": "1000", "street": "Rue Haute", "number": "1", "box": "", "url": "u0"}),
		record(1, map[string]string{"postal_code": "1000", "street": "Rue Haute", "number": "1", "box": "", "url": "u1"}),
		record(2, map[string]string{"postal_code": "1000", "street": "Rue Haute", "number": "2", "box": "", "url": "u2"}),
	}

	cleaned := CleanRecords(records)

	require.Len(t, cleaned, 2)
	// First occurrence wins.
	assert.Equal(t, "u0", cleaned[0].Fields["url"])
	assert.Equal(t, "u2", cleaned[1].Fields["url"])
}

func TestCleanRecords_KeyIsCaseAndSpaceInsensitive(t *testing.T) {
	records := []models.PropertyRecord{
		record(0, map[string]string{"postal_code": "1000", "street": "Rue Haute", "number": "1", "url": "u0"}),
		record(1, map[string]string{"postal_code": " 1000", "street": "rue haute ", "number": "1", "url": "u1"}),
	}

	cleaned := CleanRecords(records)
	require.Len(t, cleaned, 1)
}

func TestCleanRecords_DropsEmptyRows(t *testing.T) {
	records := []models.PropertyRecord{
		record(0, map[string]string{"url": "u0"}),
		record(1, map[string]string{"url": "u1", "typeOfSale": "", "postal_code": "  "}),
		record(2, map[string]string{"url": "u2", "typeOfSale": "PublicSale"}),
	}

	cleaned := CleanRecords(records)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "u2", cleaned[0].Fields["url"])
}

func TestCleanRecords_ReindexesSequentially(t *testing.T) {
	records := []models.PropertyRecord{
		record(4, map[string]string{"postal_code": "1000", "street": "A", "number": "1", "url": "u0"}),
		record(7, map[string]string{"postal_code": "1000", "street": "A", "number": "1", "url": "u1"}),
		record(9, map[string]string{"postal_code": "2000", "street": "B", "number": "2", "url": "u2"}),
	}

	cleaned := CleanRecords(records)

	require.Len(t, cleaned, 2)
	assert.Equal(t, 0, cleaned[0].Index)
	assert.Equal(t, 1, cleaned[1].Index)
}

func TestGenerateReport(t *testing.T) {
	raw := []models.PropertyRecord{
		record(0, map[string]string{"url": "u0"}),
		record(1, map[string]string{"url": "u1", "typeOfSale": "PublicSale", "postal_code": "1000", "street": "A", "number": "1"}),
		record(2, map[string]string{"url": "u2", "typeOfSale": "PublicSale", "postal_code": "2000", "street": "B", "number": "2"}),
		record(3, map[string]string{"url": "u3", "typeOfSale": "NotarySale", "postal_code": "3000", "street": "C", "number": "3"}),
		record(4, map[string]string{"url": "u4", "postal_code": "4000", "street": "D", "number": "4"}),
	}
	cleaned := CleanRecords(raw)

	report := GenerateReport(raw, cleaned)

	assert.Equal(t, 5, report.TotalRecords)
	assert.Equal(t, 4, report.CleanedRecords)
	assert.Equal(t, 1, report.DroppedRecords)
	assert.Equal(t, 2, report.ByCategory["PublicSale"])
	assert.Equal(t, 1, report.ByCategory["NotarySale"])
	assert.Equal(t, 1, report.Unclassified)
}
