// Package event carries messages from background goroutines to the
// dispatch thread. The queue is many-producer, single-consumer: watchers,
// command runners and other producers send from any goroutine, and the
// dispatcher drains everything pending before handling the next key.
package event
