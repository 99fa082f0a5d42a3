package blankfill

import (
	"context"
	"fmt"
	"os"

	"github.com/beevik/etree"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// ParseDocument reads a document body part. In lenient mode a tree that was
// partly recovered from malformed input is still returned; BuildRunIndex
// decides whether it is usable.
func ParseDocument(data []byte, lenient bool) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = lenient
	if err := doc.ReadFromBytes(data); err != nil {
		if !lenient || doc.Root() == nil {
			return nil, &StructureError{Reason: "parse", Err: err}
		}
	}
	if doc.Root() == nil {
		return nil, &StructureError{Reason: "no root element"}
	}
	return doc, nil
}

// SerializeDocument writes doc back out, adding an XML declaration when the
// source had none.
func SerializeDocument(doc *etree.Document) ([]byte, error) {
	hasDecl := false
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			hasDecl = true
			break
		}
	}
	if !hasDecl {
		pi := doc.CreateProcInst("xml", xmlDeclaration)
		doc.RemoveChild(pi)
		doc.InsertChildAt(0, pi)
	}
	return doc.WriteToBytes()
}

// FillBytes parses a body part, fills it and returns the serialized result.
func (x *Filler) FillBytes(
	ctx context.Context,
	data []byte,
	a FieldAssignment,
	optFns ...func(*Options),
) ([]byte, *Report, error) {
	opts := resolveOptions(optFns)
	doc, err := ParseDocument(data, opts.Lenient)
	if err != nil {
		x.log.Debug("Parse failed", "bytes", len(data), "lenient", opts.Lenient, "error", err)
		return nil, nil, err
	}

	rep, err := x.Fill(ctx, doc, a, optFns...)
	if err != nil {
		return nil, nil, err
	}

	out, err := SerializeDocument(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize: %w", err)
	}
	return out, rep, nil
}

// FillFile fills a body part on disk and writes it back to the same path.
func (x *Filler) FillFile(
	ctx context.Context,
	path string,
	a FieldAssignment,
	optFns ...func(*Options),
) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	out, rep, err := x.FillBytes(ctx, data, a, optFns...)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return rep, nil
}

// FillDir fills the body part of an unpacked container.
func (x *Filler) FillDir(
	ctx context.Context,
	dir string,
	a FieldAssignment,
	optFns ...func(*Options),
) (*Report, error) {
	path := DocumentPart(dir)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("fill dir %s: %w", dir, ErrMissingPart)
	}
	return x.FillFile(ctx, path, a, optFns...)
}
