package blankfill

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DocumentPartName is the body part inside a word-processing container.
const DocumentPartName = "word/document.xml"

const (
	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	zipMIME  = "application/zip"
)

// DocumentPart returns the body part path inside an unpacked container.
func DocumentPart(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(DocumentPartName))
}

// DetectContainer sniffs path and returns its MIME type. Anything that is
// not a zip-based container yields ErrNotDocument.
func DetectContainer(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", path, err)
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(docxMIME) || m.Is(zipMIME) {
			return mtype.String(), nil
		}
	}
	return "", fmt.Errorf("%s is %s: %w", path, mtype.String(), ErrNotDocument)
}

// Unpack extracts archivePath into destDir, replacing whatever destDir held.
func Unpack(archivePath, destDir string) error {
	if _, err := DetectContainer(archivePath); err != nil {
		return err
	}
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", archivePath, err)
	}
	defer zr.Close()

	if err := os.RemoveAll(destDir); err != nil {
		return fmt.Errorf("clear %s: %w", destDir, err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, f := range zr.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if rel, err := filepath.Rel(destDir, target); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("unpack %q: %w", f.Name, ErrUnsafePath)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("unpack %q: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Pack compresses the full relative tree of srcDir into archivePath using
// deflate. [Content_Types].xml is written first.
func Pack(srcDir, archivePath string) error {
	var names []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", srcDir, err)
	}
	sort.Slice(names, func(i, j int) bool {
		if ci, cj := names[i] == "[Content_Types].xml", names[j] == "[Content_Types].xml"; ci != cj {
			return ci
		}
		return names[i] < names[j]
	})

	return writeArchive(archivePath, func(zw *zip.Writer) error {
		for _, name := range names {
			if err := addFile(zw, srcDir, name); err != nil {
				return fmt.Errorf("pack %q: %w", name, err)
			}
		}
		return nil
	})
}

func addFile(zw *zip.Writer, srcDir, name string) error {
	path := filepath.Join(srcDir, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: info.ModTime()})
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// writeArchive builds the zip next to path and renames it into place, so a
// failed write never leaves a truncated container behind.
func writeArchive(path string, fill func(zw *zip.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blankfill-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	zw := zip.NewWriter(tmp)
	if err := fill(zw); err != nil {
		_ = zw.Close()
		_ = tmp.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FillArchive fills the body part of the container at inPath and writes the
// result to outPath. Every other entry is copied through unchanged.
func (x *Filler) FillArchive(
	ctx context.Context,
	inPath, outPath string,
	a FieldAssignment,
	optFns ...func(*Options),
) (*Report, error) {
	mime, err := DetectContainer(inPath)
	if err != nil {
		return nil, err
	}
	x.log.Debug("Opening container", "path", inPath, "mime_type", mime)

	zr, err := zip.OpenReader(inPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", inPath, err)
	}
	defer zr.Close()

	part := findPart(zr.File)
	if part == nil {
		return nil, fmt.Errorf("%s: %w", inPath, ErrMissingPart)
	}
	data, err := readPart(part)
	if err != nil {
		return nil, err
	}

	filled, rep, err := x.FillBytes(ctx, data, a, optFns...)
	if err != nil {
		return nil, err
	}

	err = writeArchive(outPath, func(zw *zip.Writer) error {
		for _, f := range zr.File {
			if f != part {
				if err := zw.Copy(f); err != nil {
					return fmt.Errorf("copy %q: %w", f.Name, err)
				}
				continue
			}
			w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
			if err != nil {
				return err
			}
			if _, err := w.Write(filled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", outPath, err)
	}
	x.log.Debug("Container written", "path", outPath, "entries", len(zr.File))
	return rep, nil
}

// ReadDocumentPart returns the raw body part of the container at path.
func ReadDocumentPart(path string) ([]byte, error) {
	if _, err := DetectContainer(path); err != nil {
		return nil, err
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer zr.Close()

	part := findPart(zr.File)
	if part == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingPart)
	}
	return readPart(part)
}

func findPart(files []*zip.File) *zip.File {
	for _, f := range files {
		if strings.EqualFold(f.Name, DocumentPartName) {
			return f
		}
	}
	return nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}
