// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"testing"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{1536, "1.50K"},
		{3 * bytesInMB, "3.00M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeSize(tt.in))
	}
}

func TestSpan_RecordsServerTiming(t *testing.T) {
	t.Parallel()

	var header servertiming.Header

	ctx := servertiming.NewContext(context.Background(), &header)

	span := Span{Kind: KindRender, URL: "guide/introduction"}
	span.Begin(ctx)
	span.End()
	span.End()

	require.Len(t, header.Metrics, 1)
	assert.Equal(t, "render", header.Metrics[0].Name)
	assert.Equal(t, "guide/introduction", header.Metrics[0].Desc)
	assert.Equal(t, span.Duration(), header.Metrics[0].Duration)
}

func TestPhase_WithoutTiming(t *testing.T) {
	t.Parallel()

	stop := Phase(context.Background(), "markdown")
	stop()
}
