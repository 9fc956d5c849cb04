// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
)

func TestLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "oops error carries code and context",
			err:      oops.Code("AURA_INVALID").With("aura_id", 7).Errorf("bad aura"),
			contains: []string{"bad aura", "code=AURA_INVALID", "aura_id"},
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			contains: []string{"error=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			LogError(logger, "failed", tt.err)

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "DB_QUERY", Code(oops.Code("DB_QUERY").Errorf("x")))
	assert.Equal(t, "", Code(errors.New("x")))
	AssertErrorCode(t, oops.Code("X").With("k", 1).Errorf("x"), "X")
	AssertErrorContext(t, oops.Code("X").With("k", 1).Errorf("x"), "k", 1)
}
