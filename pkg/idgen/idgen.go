// Package idgen hands out time-ordered int64 identifiers for transaction headers.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator produces unique, monotonically increasing ids.
type Generator interface {
	NextID() int64
}

type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflake returns a generator for the given node (0..1023). Distinct API
// instances sharing one database must use distinct nodes.
func NewSnowflake(node int64) (*SnowflakeGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeGenerator{node: n}, nil
}

func (g *SnowflakeGenerator) NextID() int64 {
	return g.node.Generate().Int64()
}
