package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPool(t *testing.T) {
	p := NewPool(3, nil)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.True(t, p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolRecoversPanics(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	p := NewPool(1, zap.New(core))
	ran := false
	p.Submit(func() { panic("boom") })
	p.Submit(nil)
	p.Submit(func() { ran = true })
	p.Stop()

	require.True(t, ran)
	require.Equal(t, 1, logs.FilterMessage("worker task panicked").Len())
}

func TestPoolSubmitAfterStop(t *testing.T) {
	p := NewPool(0, nil)
	p.Stop()
	p.Stop()
	require.False(t, p.Submit(func() {}))
}

func TestInline(t *testing.T) {
	ran := false
	require.True(t, Inline{}.Submit(func() { ran = true }))
	require.True(t, ran)
	require.True(t, Inline{}.Submit(nil))
	Inline{}.Stop()
}
