/*
Package session keeps live reader sessions for the HTTP and MCP front-ends.

A Manager serializes access per session ID with an in-process mutex map and,
when configured, a distributed lock, so two requests for the same reader never
interleave. Sessions that reach an ending are removed: progress is not kept
once a story is over.
*/
package session
