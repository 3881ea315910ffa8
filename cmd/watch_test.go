package cmd

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

// TestWatchLimits tests that --timeout and --buffer go through viper
func TestWatchLimits(t *testing.T) {
	timeout, buffer := watchLimits()
	if timeout != 0 || buffer != 64 {
		t.Errorf("Expected defaults 0 and 64, got %v and %d", timeout, buffer)
	}

	if err := watchCmd.Flags().Set("timeout", "90s"); err != nil {
		t.Fatalf("Failed to set timeout flag: %v", err)
	}
	if err := watchCmd.Flags().Set("buffer", "8"); err != nil {
		t.Fatalf("Failed to set buffer flag: %v", err)
	}
	t.Cleanup(func() {
		watchCmd.Flags().Set("timeout", "0s")
		watchCmd.Flags().Set("buffer", "64")
	})
	timeout, buffer = watchLimits()
	if timeout != 90*time.Second || buffer != 8 {
		t.Errorf("Expected flag values 90s and 8, got %v and %d", timeout, buffer)
	}

	// Config file and environment values land in the same keys.
	viper.Set("watch.timeout", "2h")
	viper.Set("watch.buffer", 3)
	t.Cleanup(func() {
		viper.Set("watch.timeout", nil)
		viper.Set("watch.buffer", nil)
	})
	timeout, buffer = watchLimits()
	if timeout != 2*time.Hour || buffer != 3 {
		t.Errorf("Expected configured values 2h and 3, got %v and %d", timeout, buffer)
	}
}
