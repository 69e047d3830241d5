package immoweb

import (
	"sync"
	"time"

	"immoweb-scraper/config"
	"immoweb-scraper/models"
	"immoweb-scraper/utils"
)

// Harvester drives the two crawl stages over a bounded worker pool. Workers
// own their output and send typed results over a channel; merging happens
// here after the pool drains, so nothing mutates shared state concurrently.
type Harvester struct {
	fetcher  *Fetcher
	workers  int
	minDelay time.Duration
	maxDelay time.Duration
}

func NewHarvester(fetcher *Fetcher, cfg *config.Config) *Harvester {
	workers := cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	return &Harvester{
		fetcher:  fetcher,
		workers:  workers,
		minDelay: cfg.MinDelay,
		maxDelay: cfg.MaxDelay,
	}
}

// HarvestPages dispatches one fetch-and-extract task per page number in
// [FirstPage, LastPage) and returns the merged URL multiset once every task
// has finished. Failed pages contribute nothing and never abort siblings;
// duplicates across overlapping segments are kept.
func (h *Harvester) HarvestPages(seg config.SearchSegment) []string {
	total := seg.LastPage - seg.FirstPage
	if total <= 0 {
		return nil
	}

	jobs := make(chan models.PageJob, total)
	results := make(chan models.PageResult, total)

	workerCount := h.workers
	if total < workerCount {
		workerCount = total
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go h.pageWorker(jobs, results, &wg)
	}

	for page := seg.FirstPage; page < seg.LastPage; page++ {
		jobs <- models.PageJob{BaseURL: seg.BaseURL, Page: page}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var urls []string
	failed := 0
	for res := range results {
		if res.Err != nil {
			utils.Error("Failed to process page %d: %v", res.Page, res.Err)
			failed++
			continue
		}
		utils.Info("Page %d processed in %.4f seconds | %d urls", res.Page, res.Elapsed.Seconds(), len(res.URLs))
		urls = append(urls, res.URLs...)
	}

	utils.Success("Segment %s: %d urls | failed pages: %d", seg.Name, len(urls), failed)
	return urls
}

func (h *Harvester) pageWorker(jobs <-chan models.PageJob, results chan<- models.PageResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		start := time.Now()
		urls, err := h.fetcher.FetchPageURLs(job.BaseURL, job.Page)
		results <- models.PageResult{
			Page:    job.Page,
			URLs:    urls,
			Elapsed: time.Since(start),
			Err:     err,
		}
	}
}

// HarvestDetails fetches every listing URL on the pool and produces exactly
// one PropertyRecord per URL, stored at the URL's dispatch index so the
// output is addressable in input order regardless of completion order. A
// listing whose payload could not be fetched still yields a record, with
// only its URL filled in.
func (h *Harvester) HarvestDetails(urls []string) []models.PropertyRecord {
	if len(urls) == 0 {
		return nil
	}

	jobs := make(chan models.DetailJob, len(urls))
	results := make(chan models.DetailResult, len(urls))

	workerCount := h.workers
	if len(urls) < workerCount {
		workerCount = len(urls)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go h.detailWorker(jobs, results, &wg)
	}

	for i, url := range urls {
		jobs <- models.DetailJob{Index: i, URL: url}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]models.PropertyRecord, len(urls))
	for res := range results {
		records[res.Index] = models.PropertyRecord{Index: res.Index, Fields: res.Fields}
	}

	utils.Success("Harvested details for %d properties", len(records))
	return records
}

func (h *Harvester) detailWorker(jobs <-chan models.DetailJob, results chan<- models.DetailResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		if h.minDelay > 0 {
			utils.RandomDelay(h.minDelay, h.maxDelay)
		}
		data := h.fetcher.FetchListingData(job.URL)
		results <- models.DetailResult{
			Index:  job.Index,
			Fields: ExtractFields(job.URL, data),
		}
	}
}
