package trash

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileType classifies a trashed entry for presentation; rendering and color
// policy belong to the caller.
type FileType int

const (
	TypeOther FileType = iota
	TypeDirectory
	TypeExecutable
	TypeArchive
	TypeConfig
	TypeDocument
	TypeImage
	TypeVideo
	TypeMusic
)

func (t FileType) String() string {
	switch t {
	case TypeDirectory:
		return "directory"
	case TypeExecutable:
		return "executable"
	case TypeArchive:
		return "archive"
	case TypeConfig:
		return "config"
	case TypeDocument:
		return "document"
	case TypeImage:
		return "image"
	case TypeVideo:
		return "video"
	case TypeMusic:
		return "music"
	default:
		return "other"
	}
}

var configExtensions = map[string]bool{
	"toml": true, "yaml": true, "yml": true, "json": true, "conf": true,
	"ini": true, "env": true, "gradle": true, "xml": true, "cfg": true,
}

var configFilenames = map[string]bool{
	"makefile": true, "dockerfile": true, "vagrantfile": true,
	"cargo.toml": true, "package.json": true, "package-lock.json": true,
	"yarn.lock": true, "pnpm-lock.yaml": true, "composer.json": true,
	"pom.xml": true, "build.gradle": true, "gemfile": true,
	"pipfile": true, "requirements.txt": true, "pyproject.toml": true,
	"setup.py": true, "docker-compose.yml": true, "go.mod": true,
	"go.sum": true, "license": true, ".editorconfig": true,
	".gitignore": true, ".gitattributes": true, ".gitmodules": true,
	"tsconfig.json": true,
}

var archiveExtensions = map[string]bool{
	"zip": true, "tar": true, "gz": true, "bz2": true, "xz": true,
	"tgz": true, "tbz2": true, "7z": true, "rar": true, "deb": true,
	"iso": true, "zst": true,
}

var documentExtensions = map[string]bool{
	"md": true, "txt": true, "doc": true, "docx": true, "pdf": true,
	"xls": true, "xlsx": true, "ppt": true, "pptx": true, "odt": true,
	"ods": true, "odp": true, "rtf": true, "epub": true, "csv": true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"svg": true, "webp": true, "heic": true, "tiff": true, "tif": true,
	"ico": true, "avif": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "mkv": true, "mov": true, "avi": true, "webm": true,
	"mpeg": true, "mpg": true, "flv": true, "wmv": true, "3gp": true,
}

var musicExtensions = map[string]bool{
	"mp3": true, "flac": true, "m4a": true, "wav": true, "ogg": true,
	"aac": true, "aiff": true, "opus": true,
}

// DetectFileType classifies the filesystem entry at path. Classification is
// driven by extension and well-known filenames; regular files that match
// nothing are content-sniffed as a last resort.
func DetectFileType(path string) FileType {
	fi, err := os.Lstat(path)
	if err == nil && fi.IsDir() {
		return TypeDirectory
	}
	if err == nil && fi.Mode().IsRegular() && fi.Mode().Perm()&0111 != 0 {
		return TypeExecutable
	}

	if t := classifyName(filepath.Base(path)); t != TypeOther {
		return t
	}

	if err == nil && fi.Mode().IsRegular() {
		return sniffContent(path)
	}
	return TypeOther
}

func classifyName(name string) FileType {
	lower := strings.ToLower(name)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	switch {
	case configExtensions[ext],
		configFilenames[lower],
		strings.HasPrefix(lower, ".env"),
		strings.HasSuffix(lower, ".config.js"),
		strings.HasSuffix(lower, ".config.ts"),
		strings.HasSuffix(lower, "rc"):
		return TypeConfig
	case archiveExtensions[ext]:
		return TypeArchive
	case documentExtensions[ext]:
		return TypeDocument
	case imageExtensions[ext]:
		return TypeImage
	case videoExtensions[ext]:
		return TypeVideo
	case musicExtensions[ext]:
		return TypeMusic
	}
	return TypeOther
}

func sniffContent(path string) FileType {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return TypeOther
	}
	switch {
	case strings.HasPrefix(mt.String(), "image/"):
		return TypeImage
	case strings.HasPrefix(mt.String(), "video/"):
		return TypeVideo
	case strings.HasPrefix(mt.String(), "audio/"):
		return TypeMusic
	case strings.HasPrefix(mt.String(), "text/"):
		return TypeDocument
	}
	return TypeOther
}
