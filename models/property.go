package models

import "time"

// PropertyRecord holds the extracted fields for one listing. Index is the
// position of the listing's URL at dispatch time and stays stable no matter
// in which order the detail tasks finish.
type PropertyRecord struct {
	Index  int
	Fields map[string]string
}

// RecordColumns is the header of the detail CSV, in write order.
var RecordColumns = []string{
	"typeOfSale",
	"postal_code",
	"street",
	"number",
	"box",
	"locality",
	"price",
	"url",
}

type PageJob struct {
	BaseURL string
	Page    int
}

type PageResult struct {
	Page    int
	URLs    []string
	Elapsed time.Duration
	Err     error
}

type DetailJob struct {
	Index int
	URL   string
}

type DetailResult struct {
	Index  int
	Fields map[string]string
}
