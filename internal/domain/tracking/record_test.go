package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordIsPacked(t *testing.T) {
	assert.True(t, Record{Status: "PACKED"}.IsPacked())
	assert.True(t, Record{Status: "packed"}.IsPacked())
	assert.True(t, Record{Status: "Packed"}.IsPacked())
	assert.False(t, Record{Status: "IN TRANSIT"}.IsPacked())
	assert.False(t, Record{}.IsPacked())
}
