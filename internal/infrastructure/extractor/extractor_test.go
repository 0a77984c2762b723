package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"io/fs"
	"testing"
	"time"

	"github.com/metadoclabs/insights/internal/core/domain"
)

type storageFake struct {
	files   map[string][]byte
	modTime time.Time
}

func (f *storageFake) Save(context.Context, string, io.Reader) error { return nil }

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.files[key]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *storageFake) Stat(_ context.Context, key string) (fs.FileInfo, error) {
	if _, ok := f.files[key]; !ok {
		return nil, fs.ErrNotExist
	}
	return fakeFileInfo{modTime: f.modTime}, nil
}

type fakeFileInfo struct{ modTime time.Time }

func (fakeFileInfo) Name() string         { return "stored" }
func (fakeFileInfo) Size() int64          { return 0 }
func (fakeFileInfo) Mode() fs.FileMode    { return 0 }
func (i fakeFileInfo) ModTime() time.Time { return i.modTime }
func (fakeFileInfo) IsDir() bool          { return false }
func (fakeFileInfo) Sys() any             { return nil }

func buildDocx(t *testing.T, core, app, document string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entries := map[string]string{}
	if core != "" {
		entries["docProps/core.xml"] = core
	}
	if app != "" {
		entries["docProps/app.xml"] = app
	}
	if document != "" {
		entries["word/document.xml"] = document
	}
	for name, content := range entries {
		f, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const sampleCoreXML = `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:creator>Jordan Lee</dc:creator>
  <cp:lastModifiedBy>Sam Rivera</cp:lastModifiedBy>
  <dcterms:created>2026-02-01T09:30:00Z</dcterms:created>
  <dcterms:modified>2026-02-20T18:45:00Z</dcterms:modified>
  <cp:revision>7</cp:revision>
</cp:coreProperties>`

const sampleAppXML = `<?xml version="1.0"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
  <Application>Microsoft Office Word</Application>
  <TotalTime>95</TotalTime>
</Properties>`

const sampleDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func newChainWithFile(key string, data []byte) (*Chain, *storageFake) {
	storage := &storageFake{
		files:   map[string][]byte{key: data},
		modTime: time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC),
	}
	return NewChain(storage), storage
}

func TestExtractDocxMetadataAndText(t *testing.T) {
	data := buildDocx(t, sampleCoreXML, sampleAppXML, sampleDocumentXML)
	chain, _ := newChainWithFile("sub-1.docx", data)

	extraction, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "essay.docx",
		StoragePath: "sub-1.docx",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	meta := extraction.Metadata
	if meta.Author != "Jordan Lee" {
		t.Fatalf("Author = %q", meta.Author)
	}
	if meta.LastEditor != "Sam Rivera" {
		t.Fatalf("LastEditor = %q", meta.LastEditor)
	}
	if meta.Application != "Microsoft Office Word" {
		t.Fatalf("Application = %q", meta.Application)
	}
	if meta.RevisionCount != 7 || meta.EditingMinutes != 95 {
		t.Fatalf("RevisionCount = %d, EditingMinutes = %d", meta.RevisionCount, meta.EditingMinutes)
	}
	if meta.ModifiedAt == nil || !meta.ModifiedAt.Equal(time.Date(2026, 2, 20, 18, 45, 0, 0, time.UTC)) {
		t.Fatalf("ModifiedAt = %v", meta.ModifiedAt)
	}
	if extraction.Text != "First paragraph.\nSecond paragraph." {
		t.Fatalf("Text = %q", extraction.Text)
	}
	if len(meta.Contributors) != 2 {
		t.Fatalf("Contributors = %+v", meta.Contributors)
	}
	if meta.Contributors[0].Role != "Owner and Writer" || meta.Contributors[1].Role != "Last Editor" {
		t.Fatalf("Contributors = %+v", meta.Contributors)
	}
}

func TestExtractDocxScrubsToolSentinelAuthor(t *testing.T) {
	core := `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:creator>python-docx</dc:creator>
</cp:coreProperties>`
	data := buildDocx(t, core, "", sampleDocumentXML)
	chain, _ := newChainWithFile("sub-1.docx", data)

	extraction, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "essay.docx",
		StoragePath: "sub-1.docx",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Metadata.Author != domain.ValueUnavailable {
		t.Fatalf("Author = %q, want %q", extraction.Metadata.Author, domain.ValueUnavailable)
	}
	if len(extraction.Metadata.Contributors) != 0 {
		t.Fatalf("expected no contributors, got %+v", extraction.Metadata.Contributors)
	}
}

func TestExtractDocxLastEditorDefaultsToAuthor(t *testing.T) {
	core := `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:creator>Jordan Lee</dc:creator>
</cp:coreProperties>`
	data := buildDocx(t, core, "", sampleDocumentXML)
	chain, _ := newChainWithFile("sub-1.docx", data)

	extraction, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "essay.docx",
		StoragePath: "sub-1.docx",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Metadata.LastEditor != "Jordan Lee" {
		t.Fatalf("LastEditor = %q, want author fallback", extraction.Metadata.LastEditor)
	}
	if len(extraction.Metadata.Contributors) != 1 {
		t.Fatalf("expected one contributor, got %+v", extraction.Metadata.Contributors)
	}
}

func TestExtractDocxMissingCorePropsDegradesToNote(t *testing.T) {
	data := buildDocx(t, "", sampleAppXML, sampleDocumentXML)
	chain, _ := newChainWithFile("sub-1.docx", data)

	extraction, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "essay.docx",
		StoragePath: "sub-1.docx",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Metadata.Author != domain.ValueUnavailable {
		t.Fatalf("Author = %q", extraction.Metadata.Author)
	}
	if len(extraction.Notes) == 0 {
		t.Fatalf("expected a parsing note for the missing layer")
	}
}

func TestExtractDocxFallsBackToStorageModTime(t *testing.T) {
	data := buildDocx(t, "", "", sampleDocumentXML)
	chain, storage := newChainWithFile("sub-1.docx", data)

	extraction, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "essay.docx",
		StoragePath: "sub-1.docx",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Metadata.ModifiedAt == nil || !extraction.Metadata.ModifiedAt.Equal(storage.modTime) {
		t.Fatalf("ModifiedAt = %v, want storage mod time", extraction.Metadata.ModifiedAt)
	}
}

func TestExtractCorruptDocxIsFatal(t *testing.T) {
	chain, _ := newChainWithFile("sub-1.docx", []byte("this is not a zip archive"))

	_, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "essay.docx",
		StoragePath: "sub-1.docx",
	})
	if !domain.IsKind(err, domain.ErrFatalParse) {
		t.Fatalf("expected ErrFatalParse, got %v", err)
	}
}

func TestExtractPlainText(t *testing.T) {
	chain, _ := newChainWithFile("sub-1.txt", []byte("  plain submission text\nsecond line  "))

	extraction, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "notes.txt",
		StoragePath: "sub-1.txt",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Text != "plain submission text\nsecond line" {
		t.Fatalf("Text = %q", extraction.Text)
	}
	if extraction.Metadata.Author != domain.ValueUnavailable {
		t.Fatalf("Author = %q", extraction.Metadata.Author)
	}
}

func TestExtractBinaryAsTextIsFatal(t *testing.T) {
	chain, _ := newChainWithFile("sub-1.bin", []byte{0xff, 0xfe, 0x00, 0x81})

	_, err := chain.Extract(context.Background(), &domain.Submission{
		Filename:    "blob.bin",
		StoragePath: "sub-1.bin",
	})
	if !domain.IsKind(err, domain.ErrFatalParse) {
		t.Fatalf("expected ErrFatalParse, got %v", err)
	}
}

func TestParsePDFDate(t *testing.T) {
	parsed := parsePDFDate("D:20260215143000+02'00'")
	if parsed == nil {
		t.Fatalf("expected parsed date")
	}
	want := time.Date(2026, 2, 15, 12, 30, 0, 0, time.UTC)
	if !parsed.UTC().Equal(want) {
		t.Fatalf("parsePDFDate = %v, want %v", parsed.UTC(), want)
	}
	if parsePDFDate("") != nil {
		t.Fatalf("empty date must parse to nil")
	}
	if parsePDFDate("D:20260215") == nil {
		t.Fatalf("date-only form must parse")
	}
}
