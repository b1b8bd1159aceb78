package monitoring

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestProgressMonitorCounts(t *testing.T) {
	pm := NewProgressMonitor(10, time.Hour, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pm.GameFinished(i%2 == 0, i%3 == 0)
		}(i)
	}
	wg.Wait()

	m := pm.GetMetrics()
	assert.Equal(t, 10, m.Total)
	assert.Equal(t, 6, m.Done)
	assert.Equal(t, 3, m.Won)
	assert.Equal(t, 2, m.Lost)
	assert.Positive(t, m.PeakGoroutines)
}

func TestProgressMonitorLogs(t *testing.T) {
	var buf syncBuffer
	pm := NewProgressMonitor(2, 5*time.Millisecond, zerolog.New(&buf))

	pm.Start()
	pm.GameFinished(true, false)
	assert.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("Simulation progress"))
	}, time.Second, 5*time.Millisecond)

	pm.Stop()
	pm.Stop()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Simulation finished")))
}

// syncBuffer is a bytes.Buffer safe for the monitor goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}
