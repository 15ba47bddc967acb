package watermark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"lsbmark/internal/imageio"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"lsbmark/pkg/report"
	"time"
)

// EncodeFile hides text in the image at sourcePath and writes the result to outputPath. The source file is only ever
// read, and outputPath is replaced in a single rename once the encoded image has been fully written. After that a
// report is handed to sink
func EncodeFile(ctx context.Context, sourcePath, outputPath, text string, wConfig config.WatermarkConfig,
	sink report.Sink) (model.EncodeStats, error) {

	if err := ctx.Err(); err != nil {
		return model.EncodeStats{}, err
	}

	srcImage, _, err := imageio.Load(sourcePath)
	if err != nil {
		return model.EncodeStats{}, fmt.Errorf("%w: %s: %v", ErrInput, sourcePath, err)
	}

	encoder, err := NewImageEncoder(wConfig)
	if err != nil {
		return model.EncodeStats{}, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	encoded, err := encoder.Encode(srcImage, text)
	if err != nil {
		return encoder.Stats(), err
	}

	if err = imageio.CheckDistinct(sourcePath, outputPath); err != nil {
		return encoder.Stats(), fmt.Errorf("%w: %s: %v", ErrOutput, outputPath, err)
	}
	err = imageio.WriteAtomically(outputPath, func(w io.Writer) error {
		return encoder.WriteEncoded(w, encoded)
	})
	if errors.Is(err, ErrOutput) {
		return encoder.Stats(), err
	} else if err != nil {
		return encoder.Stats(), fmt.Errorf("%w: %s: %v", ErrOutput, outputPath, err)
	}

	if sink == nil {
		return encoder.Stats(), nil
	}
	rep := report.New(sourcePath, outputPath, text, report.StatusSuccess, srcImage.Bounds().Size(), time.Now())
	rep.Method = MethodName
	rep.EOFMarker = Sentinel
	if err = sink.Write(ctx, rep); err != nil {
		return encoder.Stats(), fmt.Errorf("%w: %v", ErrReport, err)
	}
	return encoder.Stats(), nil
}

// DecodeFile reads the image at sourcePath and looks for a watermark in it. Only unreadable images produce an error,
// an image without a watermark yields a result with Found set to false
func DecodeFile(sourcePath string, wConfig config.WatermarkConfig) (model.DecodeResult, model.DecodeStats, error) {
	srcImage, _, err := imageio.Load(sourcePath)
	if err != nil {
		return model.DecodeResult{}, model.DecodeStats{}, fmt.Errorf("%w: %s: %v", ErrInput, sourcePath, err)
	}

	decoder := NewImageDecoder(wConfig)
	result := decoder.Decode(srcImage)
	return result, decoder.Stats(), nil
}
