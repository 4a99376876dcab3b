package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesOnlyWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	Log("sched", "dropped %d", 1)

	require.NoError(t, Enable(dir))
	t.Cleanup(Disable)
	assert.True(t, Enabled())

	Log("sched", "step %d", 7)
	for i := 0; i < 4; i++ {
		LogEvery(2, "pass", "tick")
	}
	Disable()
	assert.False(t, Enabled())
	Log("sched", "after disable")

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "Debug logging started")
	assert.Contains(t, body, "step 7")
	assert.Contains(t, body, "count=2")
	assert.Contains(t, body, "count=4")
	assert.NotContains(t, body, "dropped")
	assert.NotContains(t, body, "after disable")
}
