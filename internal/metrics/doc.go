// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics for the pipeline, the matcher and
the chat layer.

Collectors are registered with promauto on the default registry. ReelMatch is
a batch-then-query tool without an HTTP listener, so metrics are exported by
writing a textfile snapshot when paths.metrics_file is configured:

	defer func() {
	    if cfg.Paths.MetricsFile != "" {
	        if err := metrics.WriteTextfile(cfg.Paths.MetricsFile); err != nil {
	            logging.Warn().Err(err).Msg("Failed to write metrics")
	        }
	    }
	}()

# Available Metrics

Pipeline:
  - reelmatch_pipeline_chunks_processed_total{phase}
  - reelmatch_pipeline_chunks_skipped_total{phase}
  - reelmatch_pipeline_records_folded_total{kind}
  - reelmatch_pipeline_records_rejected_total{kind,field}
  - reelmatch_pipeline_files_generated_total{type}
  - reelmatch_pipeline_phase_duration_seconds{phase}

Matcher:
  - reelmatch_matcher_queries_total{outcome}
  - reelmatch_matcher_matched_files
  - reelmatch_file_cache_hits_total, reelmatch_file_cache_misses_total

LLM:
  - reelmatch_llm_request_duration_seconds{purpose}
  - reelmatch_llm_request_errors_total{purpose,error_type}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}
*/
package metrics
