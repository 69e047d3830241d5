package immoweb

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"immoweb-scraper/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHarvester(t *testing.T, cfg *config.Config) *Harvester {
	t.Helper()
	return NewHarvester(NewFetcher(cfg), cfg)
}

// Three pages: page 1 yields two listings, page 2 is the empty last page,
// page 3 fails transport. The harvest must contain exactly the two URLs.
func TestHarvestPages_PartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, resultPage("https://example.com/classified/1", "https://example.com/classified/2"))
		case "2":
			fmt.Fprint(w, "<html><body><p>No more results</p></body></html>")
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	h := newTestHarvester(t, testConfig())
	urls := h.HarvestPages(config.SearchSegment{
		Name:      "test",
		BaseURL:   srv.URL + "/search?countries=BE",
		FirstPage: 1,
		LastPage:  4,
	})

	assert.ElementsMatch(t, []string{
		"https://example.com/classified/1",
		"https://example.com/classified/2",
	}, urls)
}

func TestHarvestPages_EmptyRange(t *testing.T) {
	h := newTestHarvester(t, testConfig())
	urls := h.HarvestPages(config.SearchSegment{
		BaseURL:   "http://localhost/search?x=1",
		FirstPage: 5,
		LastPage:  5,
	})
	assert.Empty(t, urls)
}

func TestHarvestPages_MoreWorkersThanPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultPage("https://example.com/classified/1"))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxWorkers = 10

	h := newTestHarvester(t, cfg)
	urls := h.HarvestPages(config.SearchSegment{
		BaseURL:   srv.URL + "/search?countries=BE",
		FirstPage: 1,
		LastPage:  3,
	})
	assert.Len(t, urls, 2)
}

// Detail harvesting over M URLs must produce exactly M records, each stored
// at its dispatch index, no matter in which order the tasks complete. The
// server sleeps a random amount per request to scramble completion order.
func TestHarvestDetails_PreservesIndexOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(rand.Intn(30)) * time.Millisecond)
		id := strings.TrimPrefix(r.URL.Path, "/classified/")
		payload := fmt.Sprintf(`{"property":{"location":{"postalCode":"%s"}}}`, id)
		fmt.Fprint(w, detailPage(payload))
	}))
	defer srv.Close()

	const m = 25
	urls := make([]string, m)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/classified/%d", srv.URL, i)
	}

	h := newTestHarvester(t, testConfig())
	records := h.HarvestDetails(urls)

	require.Len(t, records, m)
	for i, r := range records {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, urls[i], r.Fields["url"])
		assert.Equal(t, fmt.Sprintf("%d", i), r.Fields["postal_code"])
	}
}

// A listing whose fetch fails still occupies its slot in the output, with
// nothing but the source URL filled in.
func TestHarvestDetails_FailedFetchKeepsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, detailPage(`{"flags":{"isPublicSale":true}}`))
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/classified/0",
		srv.URL + "/classified/1",
		srv.URL + "/classified/2",
	}

	h := newTestHarvester(t, testConfig())
	records := h.HarvestDetails(urls)

	require.Len(t, records, 3)
	assert.Equal(t, "PublicSale", records[0].Fields["typeOfSale"])
	assert.Equal(t, map[string]string{"url": urls[1]}, records[1].Fields)
	assert.Equal(t, "PublicSale", records[2].Fields["typeOfSale"])
}

func TestHarvestDetails_NoURLs(t *testing.T) {
	h := newTestHarvester(t, testConfig())
	assert.Nil(t, h.HarvestDetails(nil))
}
