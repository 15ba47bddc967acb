package watermark

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"lsbmark/internal/imageio"
	"lsbmark/pkg/config"
	"lsbmark/pkg/report"
	"lsbmark/test"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingSink struct {
	reports []report.Report
	err     error
}

func (s *recordingSink) Write(_ context.Context, r report.Report) error {
	s.reports = append(s.reports, r)
	return s.err
}

func writeSourceImage(t *testing.T, dir string, img image.Image) (string, []byte) {
	t.Helper()
	path := filepath.Join(dir, "source.png")
	err := imageio.WriteAtomically(path, func(w io.Writer) error { return png.Encode(w, img) })
	if err != nil {
		t.Fatalf("Error writing source image: %s", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Error reading source image: %s", err)
	}
	return path, content
}

func checkSourceUntouched(t *testing.T, path string, original []byte) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Error reading source image: %s", err)
	}
	if !bytes.Equal(content, original) {
		t.Errorf("Source image bytes changed on disk")
	}
}

func TestEncodeFileDecodeFile(t *testing.T) {
	dir := t.TempDir()
	sourcePath, original := writeSourceImage(t, dir, test.GenerateImage(40, 30))
	outputPath := filepath.Join(dir, "encoded.png")
	sink := &recordingSink{}

	stats, err := EncodeFile(context.Background(), sourcePath, outputPath, "hidden message", config.DefaultWatermarkConfig(), sink)
	if err != nil {
		t.Fatalf("Error encoding file: %s", err)
	}
	if stats.PayloadBits != len("hidden message")*8+16 {
		t.Errorf("Unexpected payload bits %d", stats.PayloadBits)
	}
	checkSourceUntouched(t, sourcePath, original)

	result, _, err := DecodeFile(outputPath, config.DefaultWatermarkConfig())
	if err != nil {
		t.Fatalf("Error decoding file: %s", err)
	}
	if !result.Found || result.Text != "hidden message" {
		t.Errorf("Expected hidden message, got %+v", result)
	}

	if len(sink.reports) != 1 {
		t.Fatalf("Expected one report, got %d", len(sink.reports))
	}
	rep := sink.reports[0]
	if rep.Status != report.StatusSuccess || rep.OriginalImage != "source.png" || rep.WatermarkedImage != "encoded.png" ||
		rep.Width != 40 || rep.Height != 30 || rep.WatermarkText != "hidden message" || rep.Method != MethodName ||
		rep.EOFMarker != Sentinel {
		t.Errorf("Unexpected report %+v", rep)
	}
}

func TestEncodeFileCapacityLeavesEverythingUntouched(t *testing.T) {
	dir := t.TempDir()
	sourcePath, original := writeSourceImage(t, dir, test.GenerateImage(4, 4))
	outputPath := filepath.Join(dir, "encoded.png")
	sink := &recordingSink{}

	_, err := EncodeFile(context.Background(), sourcePath, outputPath, "too long", config.DefaultWatermarkConfig(), sink)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("Expected ErrCapacity, got %v", err)
	}
	checkSourceUntouched(t, sourcePath, original)
	if _, err = os.Stat(outputPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no output file, got %v", err)
	}
	if len(sink.reports) != 0 {
		t.Errorf("Expected no report on failure")
	}
}

func TestEncodeFileOutputFailures(t *testing.T) {
	jpegConfig := config.DefaultWatermarkConfig()
	jpegConfig.OutputFormat = config.JPEG
	alphaConfig := config.DefaultWatermarkConfig()
	alphaConfig.Channel = config.Channel(3)

	testCases := []struct {
		name    string
		output  func(dir, source string) string
		wConfig config.WatermarkConfig
	}{
		{"missing directory", func(dir, _ string) string { return filepath.Join(dir, "missing", "out.png") }, config.DefaultWatermarkConfig()},
		{"same as source", func(_, source string) string { return source }, config.DefaultWatermarkConfig()},
		{"lossy format", func(dir, _ string) string { return filepath.Join(dir, "out.jpg") }, jpegConfig},
		{"unknown channel", func(dir, _ string) string { return filepath.Join(dir, "out.png") }, alphaConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			sourcePath, original := writeSourceImage(t, dir, test.GenerateImage(16, 16))
			outputPath := tc.output(dir, sourcePath)
			sink := &recordingSink{}

			_, err := EncodeFile(context.Background(), sourcePath, outputPath, "text", tc.wConfig, sink)
			if !errors.Is(err, ErrOutput) {
				t.Fatalf("Expected ErrOutput, got %v", err)
			}
			checkSourceUntouched(t, sourcePath, original)
			if len(sink.reports) != 0 {
				t.Errorf("Expected no report on failure")
			}

			entries, _ := os.ReadDir(dir)
			for _, entry := range entries {
				if strings.HasSuffix(entry.Name(), ".tmp") || entry.Name() == "out.jpg" || entry.Name() == "out.png" {
					t.Errorf("Found leftover file %s", entry.Name())
				}
			}
		})
	}
}

func TestEncodeFileReportFailureKeepsOutput(t *testing.T) {
	dir := t.TempDir()
	sourcePath, _ := writeSourceImage(t, dir, test.GenerateImage(16, 16))
	outputPath := filepath.Join(dir, "encoded.png")

	_, err := EncodeFile(context.Background(), sourcePath, outputPath, "text", config.DefaultWatermarkConfig(),
		&recordingSink{err: errors.New("disk full")})
	if !errors.Is(err, ErrReport) {
		t.Fatalf("Expected ErrReport, got %v", err)
	}
	if _, err = os.Stat(outputPath); err != nil {
		t.Errorf("Expected output image to be kept, got %v", err)
	}
}

func TestEncodeFileInputFailures(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Error writing garbage file: %s", err)
	}

	for _, sourcePath := range []string{garbage, filepath.Join(dir, "missing.png")} {
		_, err := EncodeFile(context.Background(), sourcePath, filepath.Join(dir, "out.png"), "text", config.DefaultWatermarkConfig(), nil)
		if !errors.Is(err, ErrInput) {
			t.Errorf("Expected ErrInput for %s, got %v", sourcePath, err)
		}
		_, _, err = DecodeFile(sourcePath, config.DefaultWatermarkConfig())
		if !errors.Is(err, ErrInput) {
			t.Errorf("Expected ErrInput decoding %s, got %v", sourcePath, err)
		}
	}
}

func TestEncodeFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EncodeFile(ctx, "unused.png", "out.png", "text", config.DefaultWatermarkConfig(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestDecodeFileWithoutWatermark(t *testing.T) {
	dir := t.TempDir()
	sourcePath, _ := writeSourceImage(t, dir, generateImageWithoutSentinel(32, 32))

	result, stats, err := DecodeFile(sourcePath, config.DefaultWatermarkConfig())
	if err != nil {
		t.Fatalf("Error decoding file: %s", err)
	}
	if result.Found {
		t.Errorf("Expected no watermark, got %+v", result)
	}
	if stats.ScannedBits != 32*32 {
		t.Errorf("Expected the whole image to be scanned, got %d bits", stats.ScannedBits)
	}
}
