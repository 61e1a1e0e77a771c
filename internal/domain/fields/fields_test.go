package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTimeMarshalJSON(t *testing.T) {
	ts := time.Date(2024, time.May, 3, 13, 4, 5, 987654321, time.UTC)
	b, err := DisplayTime(ts).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2024년 05월 03일 13:04:05"`, string(b))
}
