package fields

import (
	"strconv"
	"time"
)

// DisplayLayout renders a timestamp the way catalog responses show it,
// e.g. "2024년 05월 03일 13:04:05". Sub-second precision is dropped.
const DisplayLayout = "2006년 01월 02일 15:04:05"

type DisplayTime time.Time

func (t DisplayTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(t).Format(DisplayLayout))), nil
}
