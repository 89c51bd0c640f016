package serialize

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/codescope/internal/skeleton"
)

// PlusMinusSerializer renders the default plus/minus format: a "+++"
// header, every content line prefixed with "+ ", and a "---" footer
// carrying the checksum.
type PlusMinusSerializer struct {
	// Metadata controls the header suffix; zero value omits metadata.
	Metadata MetadataMode
}

func (s *PlusMinusSerializer) SerializeFile(file *ProcessedFile) string {
	var b strings.Builder

	header := "+++ " + file.Path
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
	b.WriteByte('\n')

	if file.Content != "" {
		for _, line := range strings.Split(strings.TrimSuffix(file.Content, "\n"), "\n") {
			b.WriteString("+ ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	fmt.Fprintf(&b, "--- %s [md5:%s]\n\n", file.Path, file.MD5)
	return b.String()
}

func (s *PlusMinusSerializer) SerializeFiles(files []ProcessedFile) string {
	return concatFiles(s, files)
}

func (s *PlusMinusSerializer) Extension() string {
	return "txt"
}
