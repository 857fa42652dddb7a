// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Aggregation pipeline chunks, records and generated files
// - Matcher queries and the recommendation file cache
// - LLM requests and the circuit breaker in front of them

var (
	// Pipeline Metrics
	PipelineChunksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_pipeline_chunks_processed_total",
			Help: "Total number of chunk files folded into state",
		},
		[]string{"phase"}, // "movies", "users"
	)

	PipelineChunksSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_pipeline_chunks_skipped_total",
			Help: "Total number of chunk files skipped because they were already processed",
		},
		[]string{"phase"},
	)

	PipelineRecordsFolded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_pipeline_records_folded_total",
			Help: "Total number of records folded into state",
		},
		[]string{"kind"}, // "movie", "user", "rating"
	)

	PipelineRecordsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_pipeline_records_rejected_total",
			Help: "Total number of records skipped because they failed validation",
		},
		[]string{"kind", "field"},
	)

	PipelineFilesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_pipeline_files_generated_total",
			Help: "Total number of recommendation files written",
		},
		[]string{"type"}, // segment, mood, genre, era, fallback
	)

	PipelinePhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_pipeline_phase_duration_seconds",
			Help:    "Duration of pipeline phases in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8), // 10ms .. ~164s
		},
		[]string{"phase"},
	)

	PipelineErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_pipeline_errors_total",
			Help: "Total number of failed pipeline phases",
		},
		[]string{"phase"},
	)

	PipelineLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_pipeline_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful pipeline run",
		},
	)

	// Matcher Metrics
	MatcherQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_matcher_queries_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "matched", "cold_start"
	)

	MatcherMatchedFiles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_matcher_matched_files",
			Help:    "Number of recommendation files merged per query",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 7, 10, 15},
		},
	)

	MatcherDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_matcher_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Recommendation File Cache Metrics
	FileCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_file_cache_hits_total",
			Help: "Total number of recommendation file cache hits",
		},
	)

	FileCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_file_cache_misses_total",
			Help: "Total number of recommendation file cache misses",
		},
	)

	// Prime (collaborative filtering) Metrics
	PrimeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_prime_requests_total",
			Help: "Total number of collaborative filtering requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "unknown_user", "error"
	)

	// LLM Metrics
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_llm_request_duration_seconds",
			Help:    "Duration of chat completion requests in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"purpose"}, // "extract", "converse"
	)

	LLMRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_llm_request_errors_total",
			Help: "Total number of failed chat completion requests",
		},
		[]string{"purpose", "error_type"},
	)

	LLMRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_llm_retries_total",
			Help: "Total number of retried chat completion requests",
		},
		[]string{"purpose"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Conversation Metrics
	ChatSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_chat_sessions_total",
			Help: "Total number of chat sessions by how they ended",
		},
		[]string{"end_reason"}, // "quit", "accepted", "declined", "max_rounds", "eof", "canceled"
	)

	ChatRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_chat_rounds",
			Help:    "Number of conversation rounds per chat session",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10, 15},
		},
	)
)

// RecordChunk records one folded chunk and the number of records it contributed.
func RecordChunk(phase string, records int) {
	PipelineChunksProcessed.WithLabelValues(phase).Inc()
	kind := "movie"
	if phase == "users" {
		kind = "user"
	}
	PipelineRecordsFolded.WithLabelValues(kind).Add(float64(records))
}

// RecordChunkSkipped records a chunk that was already part of the state.
func RecordChunkSkipped(phase string) {
	PipelineChunksSkipped.WithLabelValues(phase).Inc()
}

// RecordRatingsFolded adds folded individual ratings.
func RecordRatingsFolded(n int) {
	PipelineRecordsFolded.WithLabelValues("rating").Add(float64(n))
}

// RecordRejected records a record dropped by validation.
func RecordRejected(kind, field string) {
	PipelineRecordsRejected.WithLabelValues(kind, field).Inc()
}

// RecordFileGenerated records one written recommendation file.
func RecordFileGenerated(fileType string) {
	PipelineFilesGenerated.WithLabelValues(fileType).Inc()
}

// RecordPhase records the duration and outcome of a pipeline phase.
func RecordPhase(phase string, duration time.Duration, err error) {
	PipelinePhaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
	if err != nil {
		PipelineErrors.WithLabelValues(phase).Inc()
	}
}

// RecordPipelineSuccess marks the end of a complete pipeline run.
func RecordPipelineSuccess() {
	PipelineLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordQuery records a matcher query.
func RecordQuery(coldStart bool, matchedFiles int, duration time.Duration) {
	outcome := "matched"
	if coldStart {
		outcome = "cold_start"
	}
	MatcherQueries.WithLabelValues(outcome).Inc()
	MatcherMatchedFiles.Observe(float64(matchedFiles))
	MatcherDuration.Observe(duration.Seconds())
}

// RecordLLMRequest records a chat completion request. An empty errorType
// means the request succeeded.
func RecordLLMRequest(purpose string, duration time.Duration, errorType string) {
	LLMRequestDuration.WithLabelValues(purpose).Observe(duration.Seconds())
	if errorType != "" {
		LLMRequestErrors.WithLabelValues(purpose, errorType).Inc()
	}
}

// RecordChatSession records a finished chat session.
func RecordChatSession(endReason string, rounds int) {
	ChatSessions.WithLabelValues(endReason).Inc()
	ChatRounds.Observe(float64(rounds))
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format, for the node_exporter textfile collector.
// The batch commands have no scrape endpoint, so this is their only export.
func WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
