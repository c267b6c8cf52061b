// Package pdftest builds minimal but well-formed PDF documents for tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"strings"
)

// Build returns a PDF with the given number of blank pages, indexed by a
// classic cross-reference table.
func Build(pages int) []byte {
	objs := documentObjects(pages)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// BuildCompressed returns the same document as Build, with every object
// packed into a deflated object stream and indexed by a cross-reference
// stream.
func BuildCompressed(pages int) []byte {
	objs := documentObjects(pages)
	objStm := len(objs) + 1
	xrefStm := objStm + 1
	size := xrefStm + 1

	var header, body strings.Builder
	for i, o := range objs {
		fmt.Fprintf(&header, "%d %d ", i+1, body.Len())
		body.WriteString(o)
		body.WriteString("\n")
	}
	packed := deflate([]byte(header.String() + body.String()))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.5\n")

	stmOffset := buf.Len()
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /ObjStm /N %d /First %d /Length %d /Filter /FlateDecode >>\nstream\n",
		objStm, len(objs), header.Len(), len(packed))
	buf.Write(packed)
	buf.WriteString("\nendstream\nendobj\n")

	xrefOffset := buf.Len()
	var rows bytes.Buffer
	row(&rows, 0, 0, 65535)
	for i := range objs {
		row(&rows, 2, uint32(objStm), uint16(i))
	}
	row(&rows, 1, uint32(stmOffset), 0)
	row(&rows, 1, uint32(xrefOffset), 0)
	table := deflate(rows.Bytes())

	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /XRef /Size %d /W [1 4 2] /Root 1 0 R /Length %d /Filter /FlateDecode >>\nstream\n",
		xrefStm, size, len(table))
	buf.Write(table)
	fmt.Fprintf(&buf, "\nendstream\nendobj\nstartxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes()
}

// documentObjects returns the catalog, the page tree root and the pages,
// numbered from 1 in that order.
func documentObjects(pages int) []string {
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
	}
	for i := 0; i < pages; i++ {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}
	return objs
}

func row(w *bytes.Buffer, kind byte, field2 uint32, field3 uint16) {
	w.WriteByte(kind)
	_ = binary.Write(w, binary.BigEndian, field2)
	_ = binary.Write(w, binary.BigEndian, field3)
}

func deflate(p []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(p)
	_ = zw.Close()
	return buf.Bytes()
}
