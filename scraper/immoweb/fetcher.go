package immoweb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"immoweb-scraper/config"
	"immoweb-scraper/utils"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Title anchor of each result card on a search-result page.
	listingCardSelector = "article.card.card--result div.card--result__body a.card__title-link"

	// Detail pages carry the full listing payload as JSON in a custom
	// element attribute.
	classifiedElement = "iw-load-advertisements"
	classifiedAttr    = ":classified"
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.RequestTimeout},
		userAgent: cfg.UserAgent,
	}
}

func (f *Fetcher) get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	return f.client.Do(req)
}

// FetchPageURLs fetches one search-result page and extracts the listing URLs
// it links to. A page with no result cards yields an empty slice and no
// error; only transport problems and non-2xx statuses are failures.
func (f *Fetcher) FetchPageURLs(baseURL string, page int) ([]string, error) {
	target := fmt.Sprintf("%s&page=%d", baseURL, page)

	resp, err := f.get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("received status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return ExtractListingURLs(doc), nil
}

// ExtractListingURLs pulls the href of every result-card title anchor.
func ExtractListingURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find(listingCardSelector).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			urls = append(urls, href)
		}
	})
	return urls
}

// FetchListingData fetches a detail page and decodes the embedded listing
// payload. It returns nil when the fetch fails, the payload element or
// attribute is absent, or the payload is malformed; each case is logged
// distinctly and none aborts the harvest.
func (f *Fetcher) FetchListingData(url string) map[string]any {
	resp, err := f.get(url)
	if err != nil {
		utils.Error("Fetch failed for %s: %v", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.Error("Listing %s returned status %d", url, resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		utils.Error("Parse failed for %s: %v", url, err)
		return nil
	}

	raw, ok := doc.Find(classifiedElement).First().Attr(classifiedAttr)
	if !ok {
		// Valid outcome, not a failure: some pages ship without the payload.
		utils.Debug("No embedded listing payload at %s", url)
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		utils.Error("Malformed listing payload at %s: %v", url, err)
		return nil
	}
	return data
}

// ExtractFields flattens the columns we keep from the decoded payload into
// CSV-ready strings. A nil payload yields a record that only carries its
// source URL.
func ExtractFields(url string, data map[string]any) map[string]string {
	fields := map[string]string{"url": url}
	if data == nil {
		return fields
	}

	fields["typeOfSale"] = ClassifySale(data)
	fields["postal_code"] = stringValue(NestedValue(data, []string{"property", "location", "postalCode"}, ""))
	fields["street"] = stringValue(NestedValue(data, []string{"property", "location", "street"}, ""))
	fields["number"] = stringValue(NestedValue(data, []string{"property", "location", "number"}, ""))
	fields["box"] = stringValue(NestedValue(data, []string{"property", "location", "box"}, ""))
	fields["locality"] = stringValue(NestedValue(data, []string{"property", "location", "locality"}, ""))
	fields["price"] = stringValue(NestedValue(data, []string{"price", "mainValue"}, ""))
	return fields
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
