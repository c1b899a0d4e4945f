package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{" 2024-01-15 ", "2024-01-15", true},
		{"2024/02/01", "2024-02-01", true},
		{"2024-03-04T10:11:12", "2024-03-04", true},
		{"2024-03-04T10:11:12Z", "2024-03-04", true},
		{"2024-13-01", "", false},
		{"2024-02-30", "", false},
		{"yesterday", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		assert.Equal(t, tc.want, got, "value for %q", tc.in)
		assert.Equal(t, tc.ok, IsValid(tc.in), "IsValid for %q", tc.in)
	}
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "2024-Feb-01", Human("2024-02-01"))
	assert.Equal(t, "garbage", Human("garbage"))
}

func TestToday(t *testing.T) {
	now := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "2024-03-10", Today(now))
}
