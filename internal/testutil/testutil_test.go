// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

func TestMustSetenvRestores(t *testing.T) {
	const key = "TEACTL_TESTUTIL_VAR"

	restoreOuter := MustUnsetenv(t, key)
	defer restoreOuter()

	restore := MustSetenv(t, key, "value")
	if got := os.Getenv(key); got != "value" {
		t.Fatalf("%s = %q, want value", key, got)
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after restore", key)
	}
}

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}

	original := os.Getenv(key)
	dir := t.TempDir()

	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}
	cleanup()
	if got := os.Getenv(key); got != original {
		t.Errorf("after cleanup %s = %q, want %q", key, got, original)
	}
}

func TestMustWriteReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	MustWriteFile(t, path, "hello")
	if got := MustReadFile(t, path); got != "hello" {
		t.Errorf("MustReadFile() = %q, want hello", got)
	}
}

func TestContainerParallelism(t *testing.T) {
	t.Setenv(ContainerParallelEnv, "5")
	if got := containerParallelism(); got != 5 {
		t.Errorf("containerParallelism() = %d, want 5", got)
	}

	t.Setenv(ContainerParallelEnv, "bogus")
	if got := containerParallelism(); got < 1 || got > 2 {
		t.Errorf("containerParallelism() = %d, want 1 or 2", got)
	}
}

func TestAcquireContainerSlotReleases(t *testing.T) {
	// More sequential acquisitions than slots only finish if each is released.
	for i := range cap(containerSlots()) + 2 {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			AcquireContainerSlot(t)
		})
	}
	if n := len(containerSlots()); n != 0 {
		t.Errorf("%d slots still held", n)
	}
}
