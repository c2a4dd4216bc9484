package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrapKeepsCause(t *testing.T) {
	wrapped := Wrap(WithStack(io.EOF), "read body")

	assert.True(t, Is(wrapped, io.EOF))
	assert.Equal(t, "read body: EOF", wrapped.Error())
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "errors_test.go")
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
	assert.NoError(t, WithStack(nil))
}

func TestAs(t *testing.T) {
	err := Wrapf(&codedError{code: "E1"}, "step %d", 2)

	var target *codedError
	assert.True(t, As(err, &target))
	assert.Equal(t, "E1", target.code)
	assert.Equal(t, "step 2: E1", err.Error())
}
