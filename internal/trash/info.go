package trash

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/babarot/tt/internal/fs"
)

// Constants for the .trashinfo file format, as per the FreeDesktop.org spec.
const (
	infoHeader   = "[Trash Info]"
	infoPathKey  = "Path"
	infoDateKey  = "DeletionDate"
	infoSuffix   = ".trashinfo"
	infoTimeFmt  = "2006-01-02T15:04:05"
	infoFileMode = 0600
)

// TrashInfo is the parsed form of a .trashinfo record: the original absolute
// path of a trashed item and the moment it was trashed.
//
// DeletionDate is recorded in local time with second precision. The
// specification leaves the zone choice open; only Path is needed to restore,
// the date exists for display and must merely round-trip.
type TrashInfo struct {
	Path         string
	DeletionDate time.Time
}

// Encode produces the three-line .trashinfo record.
func (i *TrashInfo) Encode() string {
	var b strings.Builder
	fmt.Fprintln(&b, infoHeader)
	fmt.Fprintf(&b, "%s=%s\n", infoPathKey, escapePath(i.Path))
	fmt.Fprintf(&b, "%s=%s\n", infoDateKey, i.DeletionDate.Format(infoTimeFmt))
	return b.String()
}

// Save writes the record to path, refusing to overwrite an existing file.
// The O_EXCL creation doubles as the collision check for the identifier the
// record is named after: a concurrent writer that picked the same name makes
// this fail with os.ErrExist instead of clobbering their record.
func (i *TrashInfo) Save(path string) error {
	f, err := fs.CreateExclusive(path, infoFileMode)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(i.Encode()); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write info file: %w", err)
	}
	return nil
}

// DecodeInfo parses a .trashinfo record. The header line must be the first
// line; Path and DeletionDate are both mandatory. Any violation yields a
// *DecodeError naming the offending field; name is used for error context
// only.
func DecodeInfo(r io.Reader, name string) (*TrashInfo, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &DecodeError{Path: name, Field: "header", Err: fmt.Errorf("empty record")}
	}
	if strings.TrimRight(scanner.Text(), "\r") != infoHeader {
		return nil, &DecodeError{Path: name, Field: "header", Err: fmt.Errorf("first line is not %q", infoHeader)}
	}

	info := &TrashInfo{}
	var havePath, haveDate bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case infoPathKey:
			if havePath {
				continue // first occurrence wins
			}
			path, err := unescapePath(value)
			if err != nil {
				return nil, &DecodeError{Path: name, Field: infoPathKey, Err: err}
			}
			info.Path = path
			havePath = true

		case infoDateKey:
			if haveDate {
				continue
			}
			date, err := time.ParseInLocation(infoTimeFmt, value, time.Local)
			if err != nil {
				return nil, &DecodeError{Path: name, Field: infoDateKey, Err: err}
			}
			info.DeletionDate = date
			haveDate = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !havePath {
		return nil, &DecodeError{Path: name, Field: infoPathKey, Err: fmt.Errorf("missing mandatory field")}
	}
	if !haveDate {
		return nil, &DecodeError{Path: name, Field: infoDateKey, Err: fmt.Errorf("missing mandatory field")}
	}
	return info, nil
}

func loadInfo(path string) (*TrashInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeInfo(f, path)
}

// Characters escaped in the Path value, following the RFC 2396/3986
// reserved-character rules for path segments. '/' keeps its meaning and is
// never escaped; every byte above 0x7F (UTF-8 continuation bytes included)
// is escaped.
func needsEscape(b byte) bool {
	if b < 0x20 || b >= 0x7F {
		return true
	}
	switch b {
	case ' ', '%', '#', '<', '>', '"', '{', '}', '|', '\\', '^', '`':
		return true
	}
	return false
}

const upperhex = "0123456789ABCDEF"

func escapePath(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if needsEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// unescapePath percent-decodes a Path value. Stray or malformed percent
// sequences pass through verbatim; a decode that yields invalid UTF-8 is an
// error since the record is declared UTF-8 text.
func unescapePath(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	out := b.String()
	if !utf8.ValidString(out) {
		return "", fmt.Errorf("path is not valid UTF-8 after unescaping")
	}
	return out, nil
}
