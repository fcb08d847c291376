package console

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListen(t *testing.T) {
	var prompt bytes.Buffer

	c, err := New(&Config{In: strings.NewReader("hello device\n  2 kilo aloo  \n\nexit"), Prompt: &prompt})
	require.NoError(t, err)

	ctx := context.Background()

	for _, want := range []string{"hello device", "2 kilo aloo", "", "exit"} {
		got, err := c.Listen(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = c.Listen(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, strings.Repeat("> ", 5), prompt.String())
}

func TestListenLineTooLong(t *testing.T) {
	c, err := New(&Config{
		In:          strings.NewReader("milk\n" + strings.Repeat("a", 64) + "\nexit\n"),
		MaxLineSize: 16,
	})
	require.NoError(t, err)

	ctx := context.Background()

	got, err := c.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "milk", got)

	for i := 0; i < 2; i++ {
		_, err = c.Listen(ctx)
		assert.ErrorIs(t, err, bufio.ErrTooLong)
		assert.ErrorIs(t, err, io.EOF, "a broken input is the end of input")
	}
}

func TestListenLongLineWithinDefaultLimit(t *testing.T) {
	long := strings.Repeat("a", 70000)

	c, err := New(&Config{In: strings.NewReader(long + "\nexit\n")})
	require.NoError(t, err)

	got, err := c.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, long, got)

	got, err = c.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exit", got)
}

func TestListenCancelled(t *testing.T) {
	c, err := New(&Config{In: strings.NewReader("milk\n")})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Listen(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{})
	assert.Error(t, err)
}
