package serialize

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/codescope/internal/skeleton"
)

// MarkdownSerializer renders files as "## path" sections with fenced
// code blocks.
type MarkdownSerializer struct {
	Metadata MetadataMode
}

// fence language for a path, empty when unknown
func detectFenceLanguage(path string) string {
	ext := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		ext = path[idx+1:]
	}
	switch strings.ToLower(ext) {
	case "py":
		return "python"
	case "rs":
		return "rust"
	case "js":
		return "javascript"
	case "ts":
		return "typescript"
	case "jsx":
		return "jsx"
	case "tsx":
		return "tsx"
	case "sh", "bash":
		return "bash"
	case "md":
		return "markdown"
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	case "html":
		return "html"
	case "css":
		return "css"
	case "sql":
		return "sql"
	case "go":
		return "go"
	case "java":
		return "java"
	case "c":
		return "c"
	case "cpp", "cc", "cxx", "h", "hpp":
		return "cpp"
	case "rb":
		return "ruby"
	case "php":
		return "php"
	default:
		return ""
	}
}

func (s *MarkdownSerializer) SerializeFile(file *ProcessedFile) string {
	var b strings.Builder

	header := "## " + file.Path
	if file.Level == skeleton.LevelSkeleton {
		if file.OriginalTokens > 0 {
			header += fmt.Sprintf(" [SKELETON] (original: %d tokens)", file.OriginalTokens)
		} else {
			header += " [SKELETON]"
		}
	} else if s.Metadata != "" && s.Metadata != MetadataNone {
		header += metadataSuffix(file.Size, file.ModTime, s.Metadata)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("```")
	b.WriteString(detectFenceLanguage(file.Path))
	b.WriteByte('\n')
	b.WriteString(file.Content)
	if !strings.HasSuffix(file.Content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("```\n\n")
	return b.String()
}

func (s *MarkdownSerializer) SerializeFiles(files []ProcessedFile) string {
	return concatFiles(s, files)
}

func (s *MarkdownSerializer) Extension() string {
	return "md"
}
