package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Summary reports what an archive operation touched.
type Summary struct {
	Files int
	Bytes int64
}

// Backup archives the workspace root into a zstd-compressed tar at outPath.
// Entry names are stored relative to root so the archive restores into any
// directory.
func Backup(root, outPath string) (*Summary, error) {
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	defer zw.Close()

	tw := tar.NewWriter(zw)
	defer tw.Close()

	sum := &Summary{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		// The archive itself may live inside the workspace; never pack it.
		if abs, err := filepath.Abs(path); err == nil && abs == absOut {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && !d.IsDir() {
			slog.Debug("skipping irregular file", "path", path)
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("tar header for %s: %w", rel, err)
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write tar header: %w", err)
		}

		if d.IsDir() {
			return nil
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		n, err := io.Copy(tw, src)
		if err != nil {
			return fmt.Errorf("write tar data: %w", err)
		}
		sum.Files++
		sum.Bytes += n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	// Close everything explicitly to catch write errors
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close tar: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zstd: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close file: %w", err)
	}

	return sum, nil
}

// Restore unpacks an archive into root. Unless overwrite is set, any archive
// entry that already exists on disk aborts the restore before anything is
// written.
func Restore(inPath, root string, overwrite bool) (*Summary, error) {
	if !overwrite {
		names, err := scanArchive(inPath)
		if err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		for _, name := range names {
			if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(name))); err == nil {
				return nil, fmt.Errorf("%s already exists, add -overwrite to replace files", name)
			}
		}
	}

	f, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	sum := &Summary{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar entry: %w", err)
		}

		rel, ok := safeName(hdr.Name)
		if !ok {
			return nil, fmt.Errorf("archive entry escapes target: %s", hdr.Name)
		}
		target := filepath.Join(root, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, fmt.Errorf("create dir %s: %w", rel, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return nil, fmt.Errorf("create dir for %s: %w", rel, err)
			}
			dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fs.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return nil, fmt.Errorf("create %s: %w", rel, err)
			}
			n, err := io.Copy(dst, tr)
			if cerr := dst.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return nil, fmt.Errorf("write %s: %w", rel, err)
			}
			sum.Files++
			sum.Bytes += n
		default:
			slog.Debug("skipping archive entry", "name", hdr.Name, "type", hdr.Typeflag)
		}
	}

	return sum, nil
}

// scanArchive reads tar headers to collect regular-file entry names without
// extracting file data.
func scanArchive(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	tr := tar.NewReader(zr)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if rel, ok := safeName(hdr.Name); ok {
			names = append(names, rel)
		}
	}

	return names, nil
}

// safeName normalizes an archive entry name and rejects anything that would
// land outside the restore root.
func safeName(name string) (string, bool) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return "", false
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false
	}
	return name, true
}

// FormatSize renders a byte count the way the CLI prints archive sizes.
func FormatSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
