// Package imageio loads source images in any of the supported formats and writes output files without ever leaving a
// partially written file behind.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrSameFile = errors.New("output path points at the source image")
)

// Load opens and decodes the image at filePath, returning the decoded image and the name of its format
func Load(filePath string) (image.Image, string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (image.Image, string, error) {
	srcImage, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return srcImage, format, nil
}

// DecodeConfig reads only the header of the image at filePath
func DecodeConfig(filePath string) (image.Config, string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	return ReadConfig(f)
}

// ReadConfig is DecodeConfig for images that are already in memory or arriving over the network
func ReadConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("decode image config: %w", err)
	}
	return cfg, format, nil
}

// CheckDistinct fails when outputPath would overwrite sourcePath, either literally or through a link
func CheckDistinct(sourcePath, outputPath string) error {
	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return err
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if absSource == absOutput {
		return ErrSameFile
	}

	sourceStat, err := os.Stat(sourcePath)
	if err != nil {
		return nil
	}
	outputStat, err := os.Stat(outputPath)
	if err != nil {
		return nil
	}
	if os.SameFile(sourceStat, outputStat) {
		return ErrSameFile
	}
	return nil
}

// WriteAtomically writes to a temporary file next to filePath and renames it into place once write has succeeded.
// On any failure the temporary file is removed and filePath is left as it was
func WriteAtomically(filePath string, write func(w io.Writer) error) (retErr error) {
	dir := filepath.Dir(filePath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, filePath)
}
