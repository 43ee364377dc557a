package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/pricewatch/pkg/logger"
)

func TestServicesClose(t *testing.T) {
	t.Parallel()

	var order []string
	svc := &services{closers: []func() error{
		func() error { order = append(order, "store"); return nil },
		func() error { order = append(order, "amqp"); return errors.New("channel closed") },
	}}

	err := svc.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
	assert.Equal(t, []string{"amqp", "store"}, order, "closers run in reverse order")
}

func TestCloseServices_LogsFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info", "text")

	closeServices(&services{closers: []func() error{
		func() error { return errors.New("channel closed") },
	}}, log)

	assert.Contains(t, buf.String(), "closing services failed")
	assert.Contains(t, buf.String(), "channel closed")
}

func TestCloseServices_QuietOnSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	closeServices(&services{closers: []func() error{
		func() error { return nil },
	}}, logger.NewWithWriter(&buf, "info", "text"))

	assert.Empty(t, buf.String())
}
