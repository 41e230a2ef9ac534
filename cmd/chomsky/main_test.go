package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearch_enter(t *testing.T) {
	var out bytes.Buffer
	r := &runner{in: strings.NewReader("\n"), out: &out}
	var err error
	r.search(func(ctx context.Context) {
		<-ctx.Done()
		err = ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "press Enter to cancel...\n", out.String())
}

func TestSearch_finished(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	r := &runner{in: in, out: io.Discard}
	called := false
	r.search(func(ctx context.Context) {
		called = true
		assert.NoError(t, ctx.Err())
	})
	assert.True(t, called)
}

func TestSearch_timeout(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	r := &runner{in: in, out: io.Discard, timeout: time.Millisecond}
	var err error
	r.search(func(ctx context.Context) {
		<-ctx.Done()
		err = ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
