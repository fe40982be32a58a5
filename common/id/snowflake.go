package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets up the process-wide Snowflake node. Subsequent calls are no-ops.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	if err != nil {
		return fmt.Errorf("creating snowflake node: %w", err)
	}
	return nil
}

// New returns a time-ordered unique id. Init must have been called.
func New() snowflake.ID {
	return node.Generate()
}

// NewRequestID returns an id formatted for the X-Request-Id header.
func NewRequestID() string {
	return New().Base58()
}
