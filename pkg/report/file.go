package report

import (
	"context"
	"io"
	"lsbmark/internal/imageio"
	"path/filepath"
	"strings"
)

// FileSink overwrites the file at Path with the rendered report. Paths ending in .json get the JSON rendering
type FileSink struct {
	Path string
}

func (s FileSink) Write(ctx context.Context, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		rendered []byte
		err      error
	)
	if strings.EqualFold(filepath.Ext(s.Path), ".json") {
		rendered, err = r.JSON()
	} else {
		rendered, err = r.Text()
	}
	if err != nil {
		return err
	}

	return imageio.WriteAtomically(s.Path, func(w io.Writer) error {
		_, err := w.Write(rendered)
		return err
	})
}
