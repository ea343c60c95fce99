// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dirty string
		want  string
	}{
		{"false", "1.2.0 (abc1234, 2026-10-01T12:00:00Z)"},
		{"true", "1.2.0 (abc1234-dirty, 2026-10-01T12:00:00Z)"},
	}
	for _, test := range tests {
		if got := info("1.2.0", "abc1234", test.dirty, "2026-10-01T12:00:00Z"); got != test.want {
			t.Errorf("info(dirty=%s) = %q, want %q", test.dirty, got, test.want)
		}
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	t.Parallel()

	full := Full()
	if !strings.HasPrefix(full, Info()) || !strings.Contains(full, "Platform: ") {
		t.Errorf("Full() = %q", full)
	}
}
