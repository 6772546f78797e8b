package handerr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	a := assert.New(t)

	err := New(RuleViolation, "seat %d cannot check", 3)
	a.EqualError(err, "seat 3 cannot check")
	a.Equal(RuleViolation, KindOf(err))
	a.True(Is(err, RuleViolation))
	a.False(Is(err, ValidationError))

	wrapped := fmt.Errorf("replay: %w", err)
	a.Equal(RuleViolation, KindOf(wrapped))

	a.Equal(Kind(""), KindOf(fmt.Errorf("plain")))
	a.Equal(Kind(""), KindOf(nil))
}
