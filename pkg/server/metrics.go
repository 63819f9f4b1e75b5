package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "realms_collection_pages_total",
		Help: "The total number of rendered collection pages",
	})
	pageCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "realms_collection_page_cache_hits_total",
		Help: "The total number of collection pages served from cache",
	})
	filterToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realms_filter_toggles_total",
		Help: "The total number of toggled query pairs",
	}, []string{"action"})
	totalCollections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realms_collections",
		Help: "The number of collections in the store",
	})
)

func countToggle(added bool) {
	if added {
		filterToggles.WithLabelValues("add").Inc()
	} else {
		filterToggles.WithLabelValues("remove").Inc()
	}
}
