// Package middleware decorates an mkdom.Document so every host call can be
// observed.
//
// A decorator forwards each call to the wrapped document, times it and
// hands the operation name, duration and error to a list of observers.
// Two observers ship with the package:
//   - Prometheus metrics (host_calls_total, host_call_duration_seconds,
//     host_call_errors_total)
//   - log/slog records (debug for every call, warn for failures)
//
// # Usage
//
//	doc, _ := htmlhost.ParseString(page)
//	observed := middleware.Metrics(doc, middleware.WithNamespace("myapp"))
//	mkdom.All(observed, ".item").AddClass("seen")
//
// Combine observers in one decorator:
//
//	observed := middleware.Observe(doc,
//	    middleware.MetricsObserver(middleware.WithRegistry(reg)),
//	    middleware.LogObserver(logger),
//	)
//
// Then expose metrics:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Nodes pass through unchanged, so host specific helpers such as
// htmlhost.Document.Dispatch keep working on the wrapped document.
package middleware
