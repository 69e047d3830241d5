package services

import (
	"fmt"
	"sort"

	"immoweb-scraper/models"
)

type Report struct {
	TotalRecords   int
	CleanedRecords int
	DroppedRecords int
	ByCategory     map[string]int
	Unclassified   int
}

// GenerateReport summarizes a harvest run from the raw and cleaned record
// sets. Category counts are computed over the cleaned set.
func GenerateReport(raw, cleaned []models.PropertyRecord) Report {
	report := Report{
		TotalRecords:   len(raw),
		CleanedRecords: len(cleaned),
		DroppedRecords: len(raw) - len(cleaned),
		ByCategory:     make(map[string]int),
	}

	for _, r := range cleaned {
		category := r.Fields["typeOfSale"]
		if category == "" {
			report.Unclassified++
			continue
		}
		report.ByCategory[category]++
	}

	return report
}

func PrintReport(report Report) {
	fmt.Println()
	fmt.Println("┌──────────────────────────────────────────────────────────────┐")
	fmt.Println("│                     Property Harvest Summary                 │")
	fmt.Println("├───────────────────────────────┬──────────────────────────────┤")
	fmt.Printf("│ %-29s │ %-28d │\n", "Records Harvested", report.TotalRecords)
	fmt.Printf("│ %-29s │ %-28d │\n", "Records After Cleaning", report.CleanedRecords)
	fmt.Printf("│ %-29s │ %-28d │\n", "Duplicates / Empty Dropped", report.DroppedRecords)
	fmt.Printf("│ %-29s │ %-28d │\n", "Unclassified Sales", report.Unclassified)
	fmt.Println("└───────────────────────────────┴──────────────────────────────┘")

	if len(report.ByCategory) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("┌──────────────────────────────────────────────┬───────────────┐")
	fmt.Println("│ Sale Category                                │ Count         │")
	fmt.Println("├──────────────────────────────────────────────┼───────────────┤")
	for _, category := range sortedCategories(report.ByCategory) {
		fmt.Printf("│ %-44s │ %-13d │\n", category, report.ByCategory[category])
	}
	fmt.Println("└──────────────────────────────────────────────┴───────────────┘")
}

func sortedCategories(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
