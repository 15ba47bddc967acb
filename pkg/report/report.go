// Package report produces the audit record written after an image has been watermarked.
//
// A report is written once per successful encode and replaces whatever the previous encode left behind. Nothing in the
// encode or decode path ever reads a report back.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"
	"text/template"
	"time"
)

const (
	StatusSuccess = "Success"

	TimestampLayout = "2006-01-02 15:04:05"
)

var textTemplate = template.Must(template.New("report").Parse(`
======= Watermarking Report =======

Timestamp         : {{.FormattedTimestamp}}
Status            : {{.Status}}

Original Image    : {{.OriginalImage}}
Watermarked Image : {{.WatermarkedImage}}

Image Size        : ({{.Width}}, {{.Height}})
Watermark Text    : {{.WatermarkText}}

Encoding Method   : {{.Method}}
EOF Marker        : {{.EOFMarker}}

====================================
`))

// Report ties an encoded image back to its source and payload
type Report struct {
	Timestamp        time.Time `json:"timestamp"`
	Status           string    `json:"status"`
	OriginalImage    string    `json:"original_image"`
	WatermarkedImage string    `json:"watermarked_image"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	WatermarkText    string    `json:"watermark_text"`
	Method           string    `json:"method"`
	EOFMarker        string    `json:"eof_marker"`
}

// New builds a report for an encode of the image at originalPath, whose dimensions were size, into encodedPath.
// Only the base names of both paths are kept
func New(originalPath, encodedPath, text, status string, size image.Point, now time.Time) Report {
	return Report{
		Timestamp:        now,
		Status:           status,
		OriginalImage:    filepath.Base(originalPath),
		WatermarkedImage: filepath.Base(encodedPath),
		Width:            size.X,
		Height:           size.Y,
		WatermarkText:    text,
	}
}

func (r Report) FormattedTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}

// Text renders the report as the human readable block written to report files
func (r Report) Text() ([]byte, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Sink stores the latest report, replacing the previous one
type Sink interface {
	Write(ctx context.Context, r Report) error
}

// NopSink discards reports
type NopSink struct{}

func (NopSink) Write(context.Context, Report) error {
	return nil
}

// MultiSink writes to every sink in order, stopping at the first failure
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, r Report) error {
	for _, sink := range m {
		if err := sink.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
