//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dox

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestReadParagraphsRoundTrip(t *testing.T) {
	want := []string{
		"The first paragraph has enough text to be taken seriously.",
		"A second paragraph with angle brackets: <w:p> & friends.",
		"",
		"Short.",
	}

	fn := filepath.Join(t.TempDir(), "roundtrip.docx")
	if err := WriteDocx(fn, want); err != nil {
		t.Fatalf("WriteDocx() returned error: %v", err)
	}

	have, err := ReadParagraphs(fn)
	if err != nil {
		t.Fatalf("ReadParagraphs() returned error: %v", err)
	}

	if len(have) != len(want) {
		t.Fatalf("ReadParagraphs() returned %d paragraphs, want %d", len(have), len(want))
	}

	for i := range want {
		if have[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, have[i], want[i])
		}
	}
}

func TestReadParagraphsRunsAndHyperlinks(t *testing.T) {
	// split runs concatenate without gaps; hyperlink runs still belong to their paragraph
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>split </w:t></w:r><w:r><w:t>across</w:t></w:r><w:r><w:t> runs</w:t></w:r></w:p>
<w:p><w:r><w:t>see</w:t></w:r><w:hyperlink r:id="rId4" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:r><w:t> the site</w:t></w:r></w:hyperlink></w:p>
<w:p><w:r><w:t>tabbed</w:t><w:tab/></w:r><w:r><w:t>text</w:t></w:r></w:p>
</w:body></w:document>`

	fn := writeRawDocx(t, doc)

	have, err := ReadParagraphs(fn)
	if err != nil {
		t.Fatalf("ReadParagraphs() returned error: %v", err)
	}

	want := []string{"split across runs", "see the site", "tabbed\ttext"}
	if len(have) != len(want) {
		t.Fatalf("ReadParagraphs() returned %d paragraphs, want %d", len(have), len(want))
	}

	for i := range want {
		if have[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, have[i], want[i])
		}
	}
}

func TestReadParagraphsMissingFile(t *testing.T) {
	_, err := ReadParagraphs(filepath.Join(t.TempDir(), "no-such-file.docx"))
	if err == nil {
		t.Fatal("ReadParagraphs() should refuse a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadParagraphs() error should wrap fs.ErrNotExist, got: %v", err)
	}
}

func TestReadParagraphsNotAZip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "plain.docx")
	if err := os.WriteFile(fn, []byte("this is not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadParagraphs(fn)
	if err == nil {
		t.Fatal("ReadParagraphs() should refuse a non-zip file")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("a present but broken file should not read as missing: %v", err)
	}
}

func TestReadParagraphsNoDocumentPart(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "hollow.docx")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = w.Write([]byte("<styles/>")); err != nil {
		t.Fatal(err)
	}
	if err = zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err = f.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err = ReadParagraphs(fn); err == nil {
		t.Fatal("ReadParagraphs() should refuse an archive without word/document.xml")
	}
}

// writeRawDocx - wrap a hand-written word/document.xml in the minimal package structure
func writeRawDocx(t *testing.T, document string) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "raw.docx")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}

	zw := zip.NewWriter(f)

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/document.xml": document,
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, e := zw.Create(name)
		if e != nil {
			t.Fatal(e)
		}
		if _, e = w.Write([]byte(parts[name])); e != nil {
			t.Fatal(e)
		}
	}

	if err = zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err = f.Close(); err != nil {
		t.Fatal(err)
	}

	return fn
}
