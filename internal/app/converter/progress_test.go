package converter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDisabledProgressManagerIsNoOp verifies disabled progress never panics,
// so callers can use it unconditionally.
func TestDisabledProgressManagerIsNoOp(t *testing.T) {
	manager := NewProgressManager(ProgressConfig{Enabled: false})

	bar := manager.CreateBar(10, "Converting")
	assert.NotPanics(t, func() {
		bar.Increment()
		bar.Complete()
		manager.Wait()
		manager.Shutdown()
	})
}

// TestEnabledProgressManagerRendersToWriter verifies bars can complete
// against a plain buffer.
func TestEnabledProgressManagerRendersToWriter(t *testing.T) {
	var buf bytes.Buffer
	manager := NewProgressManager(ProgressConfig{Enabled: true, Writer: &buf})

	bar := manager.CreateBar(2, "Converting")
	bar.Increment()
	bar.Increment()
	manager.Wait()
}

func TestShouldShowProgress(t *testing.T) {
	assert.True(t, ShouldShowProgress(true))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestFormatProgressDescription(t *testing.T) {
	assert.Equal(t, "Converting (standup)", FormatProgressDescription("Converting", "standup"))
	assert.Equal(t, "Converting", FormatProgressDescription("Converting", ""))
}
