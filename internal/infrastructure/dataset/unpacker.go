package dataset

import (
	"archive/tar"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/usecase"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type archiveFormat int

const (
	formatZip archiveFormat = iota + 1
	formatTarGz
)

// Unpacker extracts the published dataset archive on the local filesystem.
type Unpacker struct {
	logger *logging.Logger
}

func NewUnpacker(logger *logging.Logger) *Unpacker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Unpacker{logger: logger}
}

// Unpack creates outputDir, extracts archivePath into it and then removes
// every top-level entry whose name is not in keep. outputDir must not exist
// yet, and it is only created once the archive is known to be present.
func (u *Unpacker) Unpack(ctx context.Context, archivePath, outputDir string, keep []string) error {
	if _, err := os.Stat(outputDir); err == nil {
		return crerr.Wrapf(usecase.ErrOutputDirExists, "output directory %q", outputDir)
	} else if !crerr.Is(err, fs.ErrNotExist) {
		return crerr.Wrapf(err, "stat output directory %q", outputDir)
	}

	info, err := os.Stat(archivePath)
	if crerr.Is(err, fs.ErrNotExist) {
		return crerr.Wrapf(usecase.ErrArchiveNotFound, "archive %q", archivePath)
	}
	if err != nil {
		return crerr.Wrapf(err, "stat archive %q", archivePath)
	}
	if info.IsDir() {
		return crerr.Wrapf(usecase.ErrArchiveNotFound, "archive %q is a directory", archivePath)
	}

	format, err := detectFormat(archivePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return crerr.Wrapf(err, "create output directory %q", outputDir)
	}

	var extracted int
	switch format {
	case formatZip:
		extracted, err = extractZip(ctx, archivePath, outputDir)
	case formatTarGz:
		extracted, err = extractTarGz(ctx, archivePath, outputDir)
	}
	if err != nil {
		return crerr.Wrapf(err, "extract %q", archivePath)
	}
	u.logger.InfoContext(ctx, "archive extracted", "archive", archivePath, "output_dir", outputDir, "files", extracted)

	removed, err := pruneExcept(outputDir, keep)
	if err != nil {
		return err
	}
	u.logger.InfoContext(ctx, "unused dataset files removed", "output_dir", outputDir, "removed", removed)

	for _, name := range keep {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			u.logger.WarnContext(ctx, "expected dataset file not in archive", "file", name, "archive", archivePath)
		}
	}

	return nil
}

func detectFormat(path string) (archiveFormat, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return formatZip, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return formatTarGz, nil
	default:
		return 0, crerr.Wrapf(usecase.ErrUnsupportedArchive, "archive %q", path)
	}
}

func extractZip(ctx context.Context, archivePath, dest string) (int, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, crerr.Wrap(err, "open zip")
	}
	defer r.Close()

	var files int
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return files, err
		}

		mode := f.FileInfo().Mode()
		if mode.IsDir() {
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return files, crerr.Wrapf(err, "create directory %q", target)
			}
			continue
		}
		if !mode.IsRegular() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return files, crerr.Wrapf(err, "open entry %q", f.Name)
		}
		err = writeFile(target, rc)
		rc.Close()
		if err != nil {
			return files, err
		}
		files++
	}

	return files, nil
}

func extractTarGz(ctx context.Context, archivePath, dest string) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, crerr.Wrap(err, "open archive")
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, crerr.Wrap(err, "open gzip stream")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	var files int
	for {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		hdr, err := tr.Next()
		if crerr.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, crerr.Wrap(err, "read tar header")
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return files, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return files, crerr.Wrapf(err, "create directory %q", target)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return files, err
			}
			files++
		}
	}
}

// safeJoin resolves an archive entry name under root, rejecting names that
// would land outside of it.
func safeJoin(root, name string) (string, error) {
	cleaned := filepath.FromSlash(strings.TrimSuffix(name, "/"))
	if cleaned == "" || !filepath.IsLocal(cleaned) {
		return "", crerr.Wrapf(usecase.ErrUnsafeArchivePath, "entry %q", name)
	}
	return filepath.Join(root, cleaned), nil
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return crerr.Wrapf(err, "create directory for %q", target)
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return crerr.Wrapf(err, "create %q", target)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return crerr.Wrapf(err, "write %q", target)
	}
	return crerr.Wrapf(out.Close(), "close %q", target)
}

// pruneExcept removes every top-level entry of dir not named in keep.
func pruneExcept(dir string, keep []string) (int, error) {
	allowed := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		allowed[name] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, crerr.Wrapf(err, "list %q", dir)
	}

	var removed int
	for _, entry := range entries {
		if _, ok := allowed[entry.Name()]; ok {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return removed, crerr.Wrapf(err, "remove %q", entry.Name())
		}
		removed++
	}
	return removed, nil
}
