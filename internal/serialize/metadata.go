package serialize

import (
	"fmt"
	"strings"
	"time"
)

// MetadataMode controls how much file metadata headers carry.
type MetadataMode string

const (
	// MetadataNone omits metadata entirely.
	MetadataNone MetadataMode = "none"
	// MetadataAll shows size and full timestamp for every file.
	MetadataAll MetadataMode = "all"
	// MetadataSizeOnly shows only the size.
	MetadataSizeOnly MetadataMode = "size-only"
	// MetadataAuto shows size for large files and time for recently or
	// anciently modified ones.
	MetadataAuto MetadataMode = "auto"
)

// ParseMetadataMode reads a mode name case-insensitively. Both
// "size-only" and "size_only" are accepted.
func ParseMetadataMode(s string) (MetadataMode, bool) {
	switch strings.ToLower(s) {
	case "none":
		return MetadataNone, true
	case "all":
		return MetadataAll, true
	case "size-only", "size_only":
		return MetadataSizeOnly, true
	case "auto":
		return MetadataAuto, true
	default:
		return "", false
	}
}

// HumanBytes formats a byte count as B, K, M, G or T.
func HumanBytes(bytes int64) string {
	units := []string{"B", "K", "M", "G", "T"}
	value := float64(bytes)
	idx := 0
	for value >= 1024.0 && idx < len(units)-1 {
		value /= 1024.0
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%dB", bytes)
	}
	return fmt.Sprintf("%.1f%s", value, units[idx])
}

// FormatTimestampFull renders a unix mtime as "2006-01-02 15:04 UTC".
func FormatTimestampFull(mtime int64) string {
	if mtime == 0 {
		return "Unknown"
	}
	return time.Unix(mtime, 0).UTC().Format("2006-01-02 15:04") + " UTC"
}

// FormatTimestampCompact renders a unix mtime as a compact age like
// "30s", "10m", "5h", "12d", or year-month for anything older than a
// month.
func FormatTimestampCompact(mtime int64) string {
	if mtime == 0 {
		return "?"
	}

	now := time.Now().Unix()
	if mtime > now {
		return "future"
	}

	age := now - mtime
	switch {
	case age < 60:
		return fmt.Sprintf("%ds", age)
	case age < 3600:
		return fmt.Sprintf("%dm", age/60)
	case age < 86400:
		return fmt.Sprintf("%dh", age/3600)
	case age < 30*86400:
		return fmt.Sprintf("%dd", age/86400)
	default:
		return time.Unix(mtime, 0).UTC().Format("2006-01")
	}
}

// metadataSuffix builds the " [S:.. M:..]" suffix for headers.
func metadataSuffix(size, mtime int64, mode MetadataMode) string {
	switch mode {
	case MetadataAll:
		return fmt.Sprintf(" [S:%s M:%s]", HumanBytes(size), FormatTimestampFull(mtime))
	case MetadataSizeOnly:
		return fmt.Sprintf(" [S:%s]", HumanBytes(size))
	case MetadataAuto:
		var parts []string
		if size > 10_000 {
			parts = append(parts, "S:"+HumanBytes(size))
		}
		if mtime > 0 {
			now := time.Now().Unix()
			if mtime <= now {
				ageDays := (now - mtime) / 86400
				if ageDays < 30 || ageDays > 5*365 {
					parts = append(parts, "M:"+FormatTimestampCompact(mtime))
				}
			}
		}
		if len(parts) == 0 {
			return ""
		}
		return " [" + strings.Join(parts, " ") + "]"
	default:
		return ""
	}
}

// xmlMetadataAttrs builds the metadata attributes for <file> elements.
func xmlMetadataAttrs(size, mtime int64, mode MetadataMode) string {
	switch mode {
	case MetadataAll:
		return fmt.Sprintf(` size="%d" mtime="%d" mtime_human="%s"`, size, mtime, FormatTimestampFull(mtime))
	case MetadataSizeOnly:
		return fmt.Sprintf(` size="%d"`, size)
	case MetadataAuto:
		var attrs []string
		if size > 10_000 {
			attrs = append(attrs, fmt.Sprintf(`size="%d"`, size))
		}
		if mtime > 0 {
			now := time.Now().Unix()
			if mtime <= now {
				ageDays := (now - mtime) / 86400
				if ageDays < 30 || ageDays > 5*365 {
					attrs = append(attrs, fmt.Sprintf(`mtime="%d"`, mtime))
				}
			}
		}
		if len(attrs) == 0 {
			return ""
		}
		return " " + strings.Join(attrs, " ")
	default:
		return ""
	}
}
