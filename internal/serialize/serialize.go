// Package serialize renders processed files into the supported output
// formats: plus/minus (default), XML and Markdown.
package serialize

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/mvp-joe/codescope/internal/skeleton"
)

// ProcessedFile is one file ready for output, carrying the rendering
// decisions made upstream.
type ProcessedFile struct {
	Path     string
	Content  string
	Language string
	MD5      string
	Level    skeleton.CompressionLevel
	// OriginalTokens is the pre-skeleton token count, 0 when unknown.
	OriginalTokens int
	Size           int64
	ModTime        int64
}

// NewProcessedFile builds a ProcessedFile with its checksum computed
// from the original content.
func NewProcessedFile(path, content, language string) ProcessedFile {
	sum := md5.Sum([]byte(content))
	return ProcessedFile{
		Path:     path,
		Content:  content,
		Language: language,
		MD5:      hex.EncodeToString(sum[:]),
		Level:    skeleton.LevelFull,
		Size:     int64(len(content)),
	}
}

// Serializer renders files in one output format.
type Serializer interface {
	// SerializeFile renders a single file entry.
	SerializeFile(file *ProcessedFile) string
	// SerializeFiles renders all files including any format-level
	// wrapper.
	SerializeFiles(files []ProcessedFile) string
	// Extension is the conventional file extension for the format.
	Extension() string
}

// Format names an output format.
type Format string

const (
	FormatPlusMinus Format = "plusminus"
	FormatXML       Format = "xml"
	FormatMarkdown  Format = "markdown"
)

// GetSerializer returns the serializer for a format and metadata mode,
// defaulting to plus/minus.
func GetSerializer(format Format, metadata MetadataMode) Serializer {
	switch format {
	case FormatXML:
		return &XMLSerializer{Metadata: metadata}
	case FormatMarkdown:
		return &MarkdownSerializer{Metadata: metadata}
	default:
		return &PlusMinusSerializer{Metadata: metadata}
	}
}

// concatFiles is the shared SerializeFiles body for formats with no
// wrapper.
func concatFiles(s Serializer, files []ProcessedFile) string {
	var b strings.Builder
	for i := range files {
		b.WriteString(s.SerializeFile(&files[i]))
	}
	return b.String()
}
