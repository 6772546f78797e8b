package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimit(t *testing.T) {
	a := assert.New(t)

	limit, err := ParseLimit("", 25, 100)
	a.NoError(err)
	a.Equal(25, limit)

	limit, err = ParseLimit("10", 25, 100)
	a.NoError(err)
	a.Equal(10, limit)

	limit, err = ParseLimit("500", 25, 100)
	a.NoError(err)
	a.Equal(100, limit)

	for _, bad := range []string{"0", "-1", "ten", "1.5"} {
		_, err := ParseLimit(bad, 25, 100)
		a.Error(err, bad)
	}

	_, err = ParseLimit("abc", 25, 100)
	a.EqualError(err, `limit must be a positive integer: got "abc"`)
}
