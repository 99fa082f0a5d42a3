package blankfill

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8"?><w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`

type entry struct {
	name string
	body string
}

func writeZip(t *testing.T, path string, entries ...entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate})
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// writeForm creates a minimal word-processing container holding the form.
func writeForm(t *testing.T, path string) {
	t.Helper()
	writeZip(t, path,
		entry{"[Content_Types].xml", contentTypes},
		entry{"word/document.xml", formXML()},
		entry{"word/styles.xml", stylesXML},
	)
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(data)
	}
	return out
}

func TestDetectContainer(t *testing.T) {
	dir := t.TempDir()

	t.Run("zip container", func(t *testing.T) {
		path := filepath.Join(dir, "form.docx")
		writeForm(t, path)
		mime, err := DetectContainer(path)
		require.NoError(t, err)
		assert.NotEmpty(t, mime)
	})

	t.Run("plain text", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("just some notes\n"), 0o644))
		_, err := DetectContainer(path)
		assert.ErrorIs(t, err, ErrNotDocument)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := DetectContainer(filepath.Join(dir, "nope.docx"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFiller_FillArchive(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "form.docx")
	out := filepath.Join(dir, "filled.docx")
	writeForm(t, in)

	rep, err := quietFiller().FillArchive(context.Background(), in, out, fullAssignment())
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Filled())

	src := readZip(t, in)
	dst := readZip(t, out)
	require.Len(t, dst, len(src))
	assert.Equal(t, src["[Content_Types].xml"], dst["[Content_Types].xml"], "other parts copied through")
	assert.Equal(t, src["word/styles.xml"], dst["word/styles.xml"])
	assert.Contains(t, dst[DocumentPartName], " Иванов Иван Иванович ")
	assert.NotEqual(t, src[DocumentPartName], dst[DocumentPartName])

	t.Run("entry order kept", func(t *testing.T) {
		zr, err := zip.OpenReader(out)
		require.NoError(t, err)
		defer zr.Close()
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"[Content_Types].xml", "word/document.xml", "word/styles.xml"}, names)
	})

	t.Run("in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "form.docx")
		writeForm(t, path)
		_, err := quietFiller().FillArchive(context.Background(), path, path, fullAssignment())
		require.NoError(t, err)
		assert.Contains(t, readZip(t, path)[DocumentPartName], "с 01.07.2025 по 14.07.2025")
	})

	t.Run("missing body part", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.docx")
		writeZip(t, path, entry{"[Content_Types].xml", contentTypes})
		_, err := quietFiller().FillArchive(context.Background(), path, out, fullAssignment())
		assert.ErrorIs(t, err, ErrMissingPart)
	})

	t.Run("broken body part leaves no output", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, "broken.docx")
		target := filepath.Join(tmp, "out.docx")
		writeZip(t, path, entry{"word/document.xml", "<w:document>"})
		_, err := quietFiller().FillArchive(context.Background(), path, target, fullAssignment())
		assert.ErrorIs(t, err, ErrStructure)
		assert.NoFileExists(t, target)
	})
}

func TestUnpackPack(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "form.docx")
	unpacked := filepath.Join(dir, "unpacked")
	repacked := filepath.Join(dir, "repacked.docx")
	writeForm(t, in)

	require.NoError(t, os.MkdirAll(unpacked, 0o755))
	stale := filepath.Join(unpacked, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	require.NoError(t, Unpack(in, unpacked))
	assert.NoFileExists(t, stale, "destination is replaced")
	assert.FileExists(t, DocumentPart(unpacked))

	rep, err := quietFiller().FillDir(context.Background(), unpacked, fullAssignment())
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Filled())

	require.NoError(t, Pack(unpacked, repacked))

	zr, err := zip.OpenReader(repacked)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 3)
	assert.Equal(t, "[Content_Types].xml", zr.File[0].Name)
	for _, f := range zr.File {
		assert.Equal(t, zip.Deflate, f.Method, f.Name)
	}

	got := readZip(t, repacked)
	assert.Equal(t, stylesXML, got["word/styles.xml"])
	assert.Contains(t, got[DocumentPartName], "Проектная")

	part, err := ReadDocumentPart(repacked)
	require.NoError(t, err)
	assert.Equal(t, got[DocumentPartName], string(part))
}

func TestUnpack_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evil.docx")
	writeZip(t, path,
		entry{"word/document.xml", formXML()},
		entry{"../escape.txt", "boom"},
	)

	err := Unpack(path, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, ErrUnsafePath)
	assert.NoFileExists(t, filepath.Join(dir, "escape.txt"))
}

func TestReadDocumentPart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.docx")
	writeForm(t, path)

	data, err := ReadDocumentPart(path)
	require.NoError(t, err)
	assert.Equal(t, formXML(), string(data))

	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("plain"), 0o644))
	_, err = ReadDocumentPart(notes)
	assert.ErrorIs(t, err, ErrNotDocument)
}
