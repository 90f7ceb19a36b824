package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "--"},
		{-1, "--"},
		{512, "512 B/s"},
		{1024, "1.00 KB/s"},
		{1.5 * 1024 * 1024, "1.50 MB/s"},
		{2.5 * 1024 * 1024 * 1024, "2.50 GB/s"},
		{100 * 1024, "100 KB/s"},
		{15 * 1024, "15.0 KB/s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Rate(tt.input))
		})
	}
}

func TestItemRate(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "--"},
		{-5, "--"},
		{1, "1 it/s"},
		{850, "850 it/s"},
		{1500, "1.5K it/s"},
		{2_000_000, "2.0M it/s"},
		{3_200_000_000, "3.2G it/s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemRate(tt.input))
		})
	}
}

func TestETA(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "--"},
		{-1 * time.Second, "--"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{3661 * time.Second, "1h 01m 01s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ETA(tt.input))
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1000000, "1,000,000"},
		{14302, "14,302"},
		{-1000, "-1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.input))
		})
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Bytes(tt.input))
		})
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(0))
	assert.Equal(t, "30s", Duration(30*time.Second))
	assert.Equal(t, "3m 17s", Duration(3*time.Minute+17*time.Second))
	assert.Equal(t, "1h 02m 03s", Duration(1*time.Hour+2*time.Minute+3*time.Second))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "▪▪▪▪▪□□□□□", Bar(0.5, 10))
	assert.Equal(t, "□□□□□□□□□□", Bar(0, 10))
	assert.Equal(t, "▪▪▪▪▪▪▪▪▪▪", Bar(1.0, 10))

	// Edge cases.
	assert.Equal(t, "", Bar(0.5, 0))
	assert.Equal(t, "▪▪▪▪▪▪▪▪▪▪", Bar(1.5, 10)) // clamp
	assert.Equal(t, "□□□□□□□□□□", Bar(-0.5, 10))
}

func TestSpinner(t *testing.T) {
	assert.Equal(t, '|', Spinner(0))
	assert.Equal(t, '/', Spinner(1))
	assert.Equal(t, '-', Spinner(2))
	assert.Equal(t, '\\', Spinner(3))
	assert.Equal(t, '|', Spinner(4)) // wraps
}
