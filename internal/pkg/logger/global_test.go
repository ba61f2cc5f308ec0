package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGlobalLogger_DefaultWhenUnset(t *testing.T) {
	assert.NotNil(t, GetGlobalLogger())
}

func TestGlobalLogger_ConcurrentSetAndGet(t *testing.T) {
	zl, err := NewZapLogger(ZapConfig{Level: "info"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobalLogger(zl)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, GetGlobalLogger())
		}()
	}
	wg.Wait()

	assert.Same(t, zl, GetGlobalLogger())
}
