package site

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var languageLoads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "site_language_loads_total",
		Help: "Language loads by language and result.",
	},
	[]string{"lang", "result"},
)
