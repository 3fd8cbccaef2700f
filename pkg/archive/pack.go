package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/klauspost/compress/zip"
)

// Pack creates the zip archive outputPath with the given files stored
// by their base names (without directories). An existing archive is replaced.
func Pack(ctx context.Context, outputPath string, inputPaths ...string) (_err error) {
	if len(inputPaths) == 0 {
		return ErrPack{Path: outputPath, Err: fmt.Errorf("no input files")}
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
		return ErrPack{Path: outputPath, Err: err}
	}

	out, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		return ErrPack{Path: outputPath, Err: err}
	}
	defer func() {
		if _err != nil {
			_ = out.Close()
			_ = os.Remove(out.Name())
		}
	}()

	w := zip.NewWriter(out)
	for _, inputPath := range inputPaths {
		if err := addFile(w, inputPath); err != nil {
			return ErrPack{Path: outputPath, Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return ErrPack{Path: outputPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return ErrPack{Path: outputPath, Err: err}
	}
	if err := os.Rename(out.Name(), outputPath); err != nil {
		return ErrPack{Path: outputPath, Err: err}
	}
	logger.FromCtx(ctx).Infof("packed %d file(s) to '%s'", len(inputPaths), outputPath)
	return nil
}

func addFile(w *zip.Writer, inputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("'%s' is not a regular file", inputPath)
	}

	hdr, err := zip.FileInfoHeader(stat)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(inputPath)
	hdr.Method = zip.Deflate

	dst, err := w.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}
