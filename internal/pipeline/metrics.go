package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reciboscan_documents_total",
			Help: "Documents processed, by extraction engine and outcome",
		},
		[]string{"engine", "status"}, // engine: native-text, ocr, none; status: ok, no_text, error
	)

	processingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reciboscan_processing_duration_seconds",
			Help:    "End-to-end pipeline duration per document",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"engine"},
	)

	ocrPageFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reciboscan_ocr_page_failures_total",
			Help: "OCR worker invocations that failed or timed out",
		},
	)

	extractedTextLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reciboscan_extracted_text_length",
			Help:    "Length of successfully extracted text in bytes",
			Buckets: []float64{0, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)
)
