package export

import (
	"strings"
	"time"
)

// FilePrefix starts every generated output file name.
const FilePrefix = "提成计算"

// DefaultFileName returns 提成计算_YYYYMMDD_HHMMSS.<ext> for now.
func DefaultFileName(now time.Time, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return FilePrefix + "_" + now.Format("20060102_150405") + "." + ext
}

// ContentType returns the MIME type for an output format.
func ContentType(format string) string {
	switch format {
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}
