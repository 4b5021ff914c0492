package db

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound signals a missing key.
var ErrKeyNotFound = errors.New("key not found")

// Op identifies a storage operation for error reporting.
type Op string

// Storage operations.
const (
	OpGet   Op = "get"
	OpSet   Op = "set"
	OpDel   Op = "del"
	OpScan  Op = "scan"
	OpMGet  Op = "mget"
	OpRPush Op = "rpush"
)

// Error wraps a driver error with the failed operation.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("db %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
