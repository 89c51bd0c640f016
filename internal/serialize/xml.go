package serialize

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/codescope/internal/skeleton"
)

// XMLSerializer renders files as <file> elements inside a <context>
// root.
type XMLSerializer struct {
	Metadata MetadataMode
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

func (s *XMLSerializer) SerializeFile(file *ProcessedFile) string {
	var b strings.Builder

	skeletonAttr := ""
	if file.Level == skeleton.LevelSkeleton {
		if file.OriginalTokens > 0 {
			skeletonAttr = fmt.Sprintf(` skeleton="true" original_tokens="%d"`, file.OriginalTokens)
		} else {
			skeletonAttr = ` skeleton="true"`
		}
	}

	metaAttrs := ""
	if s.Metadata != "" && s.Metadata != MetadataNone {
		metaAttrs = xmlMetadataAttrs(file.Size, file.ModTime, s.Metadata)
	}

	fmt.Fprintf(&b, `<file path="%s" md5="%s" language="%s"%s%s>`+"\n",
		escapeXML(file.Path), file.MD5, file.Language, metaAttrs, skeletonAttr)
	b.WriteString(escapeXML(file.Content))
	b.WriteString("\n</file>\n")
	return b.String()
}

func (s *XMLSerializer) SerializeFiles(files []ProcessedFile) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<context>\n")
	for i := range files {
		b.WriteString(s.SerializeFile(&files[i]))
	}
	b.WriteString("</context>\n")
	return b.String()
}

func (s *XMLSerializer) Extension() string {
	return "xml"
}
