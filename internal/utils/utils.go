package utils

import (
	"bufio"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// ImageJPEGMimeType is the MIME type for JPEG images.
	ImageJPEGMimeType = "image/jpeg"
)

var (
	// unsafeFilenameCharsPattern matches the characters stripped from file names: | ? \ / * = " :.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	unsafeFilenameCharsPattern = regexp.MustCompile(`[|?\\/*=":]`)

	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based: "text/*", "application/json" and JavaScript bundles.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile("^application/(?:x-)?javascript$"),
	}
)

// RemoveUnsafeFilenameChars removes | ? \ / * = " : from name.
// Every other character, including spaces and non-ASCII letters, is kept as is.
func RemoveUnsafeFilenameChars(name string) string {
	return unsafeFilenameCharsPattern.ReplaceAllString(name, "")
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// ReadUniqueLinesFromFile reads a text file and returns a slice of unique non-empty lines.
// It skips empty lines and ensures that each line in the returned slice is unique.
func ReadUniqueLinesFromFile(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	var (
		lines   []string
		scanner = bufio.NewScanner(file)
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	return Unique(lines), nil
}

// Unique returns the distinct elements of values in first-seen order.
func Unique[T comparable](values []T) []T {
	if len(values) == 0 {
		return nil
	}

	var (
		seen   = make(map[T]struct{}, len(values))
		result = make([]T, 0, len(values))
	)

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}

		result = append(result, v)
	}

	return result
}

// ExtractNamedGroup extracts the value of a named capturing group from a regex match.
// It returns an empty string if the group is not found or if there is no match.
func ExtractNamedGroup(re *regexp.Regexp, groupName, input string) string {
	match := re.FindStringSubmatch(input)
	if match == nil {
		return ""
	}

	idx := re.SubexpIndex(groupName)
	if idx < 0 || idx >= len(match) {
		return ""
	}

	return match[idx]
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}
