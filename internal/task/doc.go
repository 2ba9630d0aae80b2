// Package task implements the asynchronous post-processing subsystem: an
// in-memory task registry with a strict status lifecycle, a buffered queue,
// a worker pool draining it, a handler table keyed by task type, and
// aggregate statistics over all known tasks.
package task
