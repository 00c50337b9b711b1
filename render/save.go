package render

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var outputTypes = []string{"png", "bmp", "tiff", "gif", "jpeg"}

func validFormat(format string) bool {
	switch format {
	case "", "same":
		return true
	}
	for _, t := range outputTypes {
		if format == t {
			return true
		}
	}
	return false
}

// outputType resolves "same" to the source type when it can be encoded
// and to png otherwise.
func outputType(format, srcType string) string {
	if format != "" && format != "same" {
		return format
	}
	for _, t := range outputTypes {
		if srcType == t {
			return t
		}
	}
	return "png"
}

// typeFromExt guesses a source type from a file name.
func typeFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".gif":
		return "gif"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".webp":
		return "webp"
	}
	return ""
}

func destName(srcName, outType string) string {
	oldExt := filepath.Ext(srcName)
	return fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], outType)
}

// checkDest fails when dest already exists.
func checkDest(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	return fmt.Errorf("destination file already exists: %q", destFileInfo.Name())
}

func save(img image.Image, outType, destDir, destName string) (err error) {
	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = encode(outFile, img, outType); err != nil {
		return fmt.Errorf("could not encode destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}

func encode(w io.Writer, img image.Image, outType string) error {
	switch outType {
	case "gif":
		return gif.Encode(w, img, nil)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported output format: %s", outType)
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
