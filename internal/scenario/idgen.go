package scenario

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces record ids of the form <prefix>_<suffix>.
type IDGenerator interface {
	NewID(prefix string) string
}

const idSuffixLen = 7

// RandomIDGenerator draws a 7-character suffix from a random UUID.
type RandomIDGenerator struct{}

func (RandomIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		prefix = "id"
	}
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:idSuffixLen]
}

// CounterIDGenerator yields sequential ids; used where output must be
// reproducible.
type CounterIDGenerator struct {
	n atomic.Int64
}

func (c *CounterIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s_%07d", prefix, c.n.Add(1))
}
