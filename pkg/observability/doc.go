/*
Package observability provides tools for monitoring the story engine.

It turns engine lifecycle hooks into structured log lines and Prometheus
counters. Both are plain domain.LifecycleHooks values and can be combined
with domain.ChainHooks.
*/
package observability
