package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/service"
)

type counter struct {
	*service.BaseService
	starts, stops int
	failStart     error
}

func newCounter() *counter {
	c := &counter{}
	c.BaseService = service.NewBaseService(c, "counter")
	return c
}

func (c *counter) OnStart() error {
	if c.failStart != nil {
		return c.failStart
	}
	c.starts++
	return nil
}

func (c *counter) OnStop() error {
	c.stops++
	return nil
}

func TestLifecycle(t *testing.T) {
	c := newCounter()
	assert.Equal(t, "counter", c.Name())
	assert.False(t, c.Started())

	assert.Equal(t, service.ErrStopped, c.Stop())
	assert.NoError(t, c.Start())
	assert.True(t, c.Started())
	assert.Equal(t, service.ErrStarted, c.Start())
	assert.NoError(t, c.Stop())
	assert.False(t, c.Started())
	assert.Equal(t, 1, c.starts)
	assert.Equal(t, 1, c.stops)
	assert.True(t, errors.Is(service.ErrStopped, errors.ErrServiceState))
}

func TestStartFailure(t *testing.T) {
	c := newCounter()
	c.failStart = errors.New(errors.ErrUnknown, "boom")
	assert.Equal(t, c.failStart, c.Start())
	assert.False(t, c.Started())

	c.failStart = nil
	assert.NoError(t, c.Start())
}
