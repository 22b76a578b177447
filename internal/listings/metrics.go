// internal/listings/metrics.go
package listings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unistay_listing_searches_total",
		Help: "Total number of hostel searches",
	})

	searchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "unistay_listing_search_results",
		Help:    "Number of listings matched per search",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	catalogCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unistay_catalog_cache_requests_total",
		Help: "Catalog cache lookups by outcome",
	}, []string{"outcome"})

	listingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unistay_listings_created_total",
		Help: "Total number of listings created",
	})

	photoUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unistay_listing_photo_upload_failures_total",
		Help: "Photo uploads that failed and were skipped",
	})
)
