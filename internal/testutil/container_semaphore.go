// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"testing"
)

// ContainerParallelEnv overrides the number of container tests allowed to run at
// once.
const ContainerParallelEnv = "TEACTL_TEST_CONTAINER_PARALLEL"

var containerSlots = sync.OnceValue(func() chan struct{} {
	return make(chan struct{}, containerParallelism())
})

// AcquireContainerSlot blocks until a container slot is free and releases it when
// t finishes.
func AcquireContainerSlot(t testing.TB) {
	t.Helper()
	slots := containerSlots()
	slots <- struct{}{}
	t.Cleanup(func() { <-slots })
}

// containerParallelism is ContainerParallelEnv when it holds a positive integer,
// otherwise min(GOMAXPROCS, 2).
func containerParallelism() int {
	if n, err := strconv.Atoi(os.Getenv(ContainerParallelEnv)); err == nil && n > 0 {
		return n
	}
	return min(runtime.GOMAXPROCS(0), 2)
}
