package base64

import "strings"

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// StripDataURI returns the raw base64 payload of a data URI. Plain base64
// strings are returned unchanged.
func StripDataURI(file string) string {
	marker := ";base64,"

	idx := strings.Index(file, marker)
	if idx == -1 {
		return file
	}

	return file[idx+len(marker):]
}
