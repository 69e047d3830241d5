package immoweb

import "strings"

// saleFlags in priority order. Only the first true flag is reported even
// when several are set at once.
var saleFlags = []string{
	"isPublicSale",
	"isNotarySale",
	"isLifeAnnuitySale",
	"isAnInteractiveSale",
	"isNewlyBuilt",
	"isInvestmentProject",
	"isUnderOption",
	"isNewRealEstateProject",
}

// ClassifySale returns the sale category of a listing with the "is" prefix
// stripped (isPublicSale → PublicSale), or "" when none of the flags is true.
func ClassifySale(data map[string]any) string {
	for _, flag := range saleFlags {
		if NestedValue(data, []string{"flags", flag}, false) == true {
			return strings.TrimPrefix(flag, "is")
		}
	}
	return ""
}
