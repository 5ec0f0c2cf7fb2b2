// Package kv provides a small persistent key-value store used to mirror
// in-memory state (demand activity logs, escalation windows) across restarts.
package kv

import "errors"

var ErrClosed = errors.New("kv store is closed")

type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// ForEach visits every key with the given prefix. Iteration stops on the
	// first error returned by fn.
	ForEach(prefix string, fn func(key string, value []byte) error) error
	Close() error
}
