// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	original := [4]string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = original[0], original[1], original[2], original[3]
	})

	Version, GitCommit, BuildTime = "1.2.3", "abc1234", "2026-10-18T00:00:00Z"

	GitDirty = "false"
	if got := Info(); got != "1.2.3 (abc1234, 2026-10-18T00:00:00Z)" {
		t.Errorf("Info() = %q", got)
	}
	GitDirty = "true"
	if got := Info(); got != "1.2.3 (abc1234-dirty, 2026-10-18T00:00:00Z)" {
		t.Errorf("Info() dirty = %q", got)
	}
	if Short() != "1.2.3" || Commit() != "abc1234" {
		t.Errorf("Short() = %q, Commit() = %q", Short(), Commit())
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()+"\n") {
		t.Errorf("Full() does not start with Info(): %q", full)
	}
	for _, want := range []string{"Known stream version: 0.17.79.0", "Go: " + runtime.Version(), "Platform: " + runtime.GOOS} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() lacks %q:\n%s", want, full)
		}
	}
}
