package report

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(text string) Report {
	r := New("/tmp/photos/holiday.png", "/tmp/out/holiday-marked.png", text, StatusSuccess,
		image.Point{X: 640, Y: 480}, time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC))
	r.Method = "Least Significant Bit (LSB)"
	r.EOFMarker = "1111111111111110"
	return r
}

func TestNewKeepsBaseNames(t *testing.T) {
	r := sampleReport("hello")
	assert.Equal(t, "holiday.png", r.OriginalImage)
	assert.Equal(t, "holiday-marked.png", r.WatermarkedImage)
	assert.Equal(t, 640, r.Width)
	assert.Equal(t, 480, r.Height)
}

func TestText(t *testing.T) {
	rendered, err := sampleReport("hello").Text()
	require.NoError(t, err)

	for _, expected := range []string{
		"Timestamp         : 2024-03-09 14:05:07",
		"Status            : Success",
		"Original Image    : holiday.png",
		"Watermarked Image : holiday-marked.png",
		"Image Size        : (640, 480)",
		"Watermark Text    : hello",
		"Encoding Method   : Least Significant Bit (LSB)",
		"EOF Marker        : 1111111111111110",
	} {
		assert.Contains(t, string(rendered), expected)
	}
}

func TestFileSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watermark_report.txt")
	sink := FileSink{Path: path}

	require.NoError(t, sink.Write(context.Background(), sampleReport("first")))
	require.NoError(t, sink.Write(context.Background(), sampleReport("second")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Watermark Text    : second")
	assert.NotContains(t, string(content), "first")
	assert.Equal(t, 1, strings.Count(string(content), "Watermarking Report"))
}

func TestFileSinkJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, FileSink{Path: path}.Write(context.Background(), sampleReport("hello")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, sampleReport("hello"), decoded)
}

func TestFileSinkHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "watermark_report.txt")
	assert.ErrorIs(t, FileSink{Path: path}.Write(ctx, sampleReport("hello")), context.Canceled)
	assert.NoFileExists(t, path)
}

type failingSink struct{ err error }

func (f failingSink) Write(context.Context, Report) error { return f.err }

type recordingSink struct{ reports []Report }

func (r *recordingSink) Write(_ context.Context, rep Report) error {
	r.reports = append(r.reports, rep)
	return nil
}

func TestMultiSink(t *testing.T) {
	first, last := &recordingSink{}, &recordingSink{}
	require.NoError(t, MultiSink{first, NopSink{}, last}.Write(context.Background(), sampleReport("x")))
	assert.Len(t, first.reports, 1)
	assert.Len(t, last.reports, 1)

	boom := errors.New("boom")
	skipped := &recordingSink{}
	assert.ErrorIs(t, MultiSink{failingSink{boom}, skipped}.Write(context.Background(), sampleReport("x")), boom)
	assert.Empty(t, skipped.reports)
}
