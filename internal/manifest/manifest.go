// Package manifest loads a seed document describing directories, files,
// and hard links to populate a freshly constructed filesystem with before
// a mount is served.
package manifest

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Artem-Goldenberg/RamFS/internal/core"
)

// EntryType discriminates a manifest entry's kind.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// Entry is one manifest record. Content may be plain text or, for binary
// payloads, base64; decodeContent chooses based on whether Content looks
// like valid base64.
type Entry struct {
	Path string    `yaml:"path" json:"path"`
	Type EntryType `yaml:"type" json:"type"`

	Mode *uint32 `yaml:"mode,omitempty" json:"mode,omitempty"`
	UID  *uint32 `yaml:"uid,omitempty" json:"uid,omitempty"`
	GID  *uint32 `yaml:"gid,omitempty" json:"gid,omitempty"`

	Content string `yaml:"content,omitempty" json:"content,omitempty"`

	// ID is this entry's handle for LinkTo references elsewhere in the
	// manifest. Generated with uuid.New() if omitted.
	ID *string `yaml:"id,omitempty" json:"id,omitempty"`
	// LinkTo names another file entry's ID; when set, Path becomes a hard
	// link to that entry's inode instead of a new file.
	LinkTo *string `yaml:"link_to,omitempty" json:"link_to,omitempty"`
}

// Load parses a YAML or JSON manifest document (dispatched by path
// extension, mirroring internal/config's loader) and applies it to fs in
// document order. Directories implied by a file's path that are not
// themselves listed are created with defaultDirMode.
func Load(path string, fs *core.Filesystem, defaultFileMode, defaultDirMode uint32) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	default:
		return fmt.Errorf("unknown manifest file extension: %s", path)
	}

	return apply(entries, fs, defaultFileMode, defaultDirMode)
}

func apply(entries []Entry, fs *core.Filesystem, defaultFileMode, defaultDirMode uint32) error {
	byID := make(map[string]string) // entry ID -> path, for LinkTo resolution

	for i := range entries {
		e := &entries[i]
		if e.ID == nil {
			id := uuid.New().String()
			e.ID = &id
		}
		byID[*e.ID] = e.Path
	}

	for _, e := range entries {
		mode := defaultFileMode
		if e.Type == EntryDir {
			mode = defaultDirMode
		}
		if e.Mode != nil {
			mode = *e.Mode
		}
		uid, gid := uint32(0), uint32(0)
		if e.UID != nil {
			uid = *e.UID
		}
		if e.GID != nil {
			gid = *e.GID
		}

		if err := ensureParentDirs(fs, e.Path, defaultDirMode); err != nil {
			return fmt.Errorf("manifest entry %q: %w", e.Path, err)
		}

		switch {
		case e.LinkTo != nil:
			existingPath, ok := byID[*e.LinkTo]
			if !ok {
				return fmt.Errorf("manifest entry %q: link_to %q matches no entry", e.Path, *e.LinkTo)
			}
			if _, err := fs.Link(existingPath, e.Path); err != nil {
				return fmt.Errorf("manifest entry %q: %w", e.Path, err)
			}
		case e.Type == EntryDir:
			if _, err := fs.Mkdir(e.Path, mode, uid, gid); err != nil {
				return fmt.Errorf("manifest entry %q: %w", e.Path, err)
			}
		default:
			attr, err := fs.Mknod(e.Path, mode, uid, gid)
			if err != nil {
				return fmt.Errorf("manifest entry %q: %w", e.Path, err)
			}
			if e.Content == "" {
				continue
			}
			content := decodeContent(e.Content)
			h, _, err := fs.OpenIno(attr.Ino)
			if err != nil {
				return fmt.Errorf("manifest entry %q: %w", e.Path, err)
			}
			if _, err := fs.Write(h, content, 0); err != nil {
				fs.Release(h)
				return fmt.Errorf("manifest entry %q: %w", e.Path, err)
			}
			if err := fs.Release(h); err != nil {
				return fmt.Errorf("manifest entry %q: %w", e.Path, err)
			}
		}
	}
	return nil
}

// ensureParentDirs creates every directory on path's way down from the root
// that a prior entry didn't already declare, so a manifest can list "/etc/motd"
// without separately listing "/etc" first.
func ensureParentDirs(fs *core.Filesystem, path string, dirMode uint32) error {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return nil
	}

	current := ""
	for _, seg := range strings.Split(path[1:idx], "/") {
		if seg == "" {
			continue
		}
		current += "/" + seg
		if _, err := fs.Mkdir(current, dirMode, 0, 0); err != nil && !errors.Is(err, core.KindAlreadyExists) {
			return err
		}
	}
	return nil
}

// decodeContent treats content as base64 when it decodes cleanly and its
// source text looks like base64 (no whitespace, valid alphabet); otherwise
// it is used as literal text.
func decodeContent(s string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(s); err == nil && looksLikeBase64(s) {
		return decoded
	}
	return []byte(s)
}

func looksLikeBase64(s string) bool {
	if len(s) == 0 || len(s)%4 != 0 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/', c == '=':
		default:
			return false
		}
	}
	return true
}
