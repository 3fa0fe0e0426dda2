package trash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInfoEncode(t *testing.T) {
	info := &TrashInfo{
		Path:         "/home/user/my file.txt",
		DeletionDate: time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local),
	}
	want := "[Trash Info]\n" +
		"Path=/home/user/my%20file.txt\n" +
		"DeletionDate=2025-03-14T09:26:53\n"
	if got := info.Encode(); got != want {
		t.Errorf("Encode() =\n%q\nwant\n%q", got, want)
	}
}

func TestInfoRoundTrip(t *testing.T) {
	paths := []string{
		"/home/user/file.txt",
		"/home/user/with space",
		"/home/user/100%.txt",
		"/home/user/résumé.pdf",
		"/home/user/日本語/メモ.txt",
		"/home/user/weird#<>\"{}|\\^`name",
	}
	date := time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)

	for _, p := range paths {
		in := &TrashInfo{Path: p, DeletionDate: date}
		out, err := DecodeInfo(strings.NewReader(in.Encode()), "test")
		if err != nil {
			t.Errorf("round trip of %q failed: %v", p, err)
			continue
		}
		if out.Path != p {
			t.Errorf("path %q round-tripped to %q", p, out.Path)
		}
		if !out.DeletionDate.Equal(date) {
			t.Errorf("date round-tripped to %v, want %v", out.DeletionDate, date)
		}
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/plain/path", "/plain/path"},
		{"/with space", "/with%20space"},
		{"/100%", "/100%25"},
		{"/a#b", "/a%23b"},
		{"/tab\there", "/tab%09here"},
		{"/é", "/%C3%A9"},
		{"/a<b>c", "/a%3Cb%3Ec"},
		{"/safe-_.~!$&'()*+,;=:@", "/safe-_.~!$&'()*+,;=:@"},
	}
	for _, tt := range tests {
		if got := escapePath(tt.in); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnescapePathMalformedPassThrough(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/a%zzb", "/a%zzb"},
		{"/trailing%2", "/trailing%2"},
		{"/lone%", "/lone%"},
		{"/mixed%20and%zq", "/mixed and%zq"},
	}
	for _, tt := range tests {
		got, err := unescapePath(tt.in)
		if err != nil {
			t.Errorf("unescapePath(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("unescapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnescapePathInvalidUTF8(t *testing.T) {
	if _, err := unescapePath("/bad%FF"); err == nil {
		t.Error("expected error for decoded invalid UTF-8")
	}
}

func TestDecodeInfoHeaderRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "[Something Else]\nPath=/a\nDeletionDate=2024-01-01T00:00:00\n"},
		{"header not first", "# comment\n[Trash Info]\nPath=/a\nDeletionDate=2024-01-01T00:00:00\n"},
	}
	for _, tt := range tests {
		_, err := DecodeInfo(strings.NewReader(tt.in), tt.name)
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("%s: error = %v, want *DecodeError", tt.name, err)
		}
	}
}

func TestDecodeInfoMandatoryFields(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"missing path", "[Trash Info]\nDeletionDate=2024-01-01T00:00:00\n", infoPathKey},
		{"missing date", "[Trash Info]\nPath=/a\n", infoDateKey},
		{"bad date", "[Trash Info]\nPath=/a\nDeletionDate=yesterday\n", infoDateKey},
	}
	for _, tt := range tests {
		_, err := DecodeInfo(strings.NewReader(tt.in), tt.name)
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("%s: error = %v, want *DecodeError", tt.name, err)
			continue
		}
		if derr.Field != tt.field {
			t.Errorf("%s: field = %q, want %q", tt.name, derr.Field, tt.field)
		}
	}
}

func TestDecodeInfoFirstOccurrenceWins(t *testing.T) {
	in := "[Trash Info]\n" +
		"Path=/first\n" +
		"DeletionDate=2024-01-01T00:00:00\n" +
		"Path=/second\n" +
		"DeletionDate=2030-01-01T00:00:00\n"
	info, err := DecodeInfo(strings.NewReader(in), "dup")
	if err != nil {
		t.Fatal(err)
	}
	if info.Path != "/first" {
		t.Errorf("Path = %q, want /first", info.Path)
	}
	if info.DeletionDate.Year() != 2024 {
		t.Errorf("DeletionDate year = %d, want 2024", info.DeletionDate.Year())
	}
}

func TestDecodeInfoTolerance(t *testing.T) {
	// Unknown keys, comments, blank lines and CRLF endings are all accepted.
	in := "[Trash Info]\r\n" +
		"\r\n" +
		"# a comment\r\n" +
		"Unknown=whatever\r\n" +
		"Path=/a b\r\n" +
		"DeletionDate=2024-06-01T12:00:00\r\n"
	info, err := DecodeInfo(strings.NewReader(in), "crlf")
	if err != nil {
		t.Fatal(err)
	}
	if info.Path != "/a b" {
		t.Errorf("Path = %q, want %q", info.Path, "/a b")
	}
}

func TestInfoSaveRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.trashinfo")
	info := &TrashInfo{Path: "/a", DeletionDate: time.Now()}

	if err := info.Save(path); err != nil {
		t.Fatal(err)
	}
	err := info.Save(path)
	if !os.IsExist(err) {
		t.Errorf("second save error = %v, want os.IsExist", err)
	}
}
