// Package fm is the file manager: it maps workspace paths to stable
// FileIDs, holds each file's source text, and converts LSP
// line/character positions to byte offsets (there is no conversion in
// the other direction). Grounded on the `fm` crate
// referenced by completion.rs (fm::FileId, fm::PathString) and, for
// the "an editor's unsaved edits win over what's on disk" rule, on
// cuelang.org/go/internal/lsp/fscache's overlay filesystem — simplified
// here to a flat map since this engine only ever needs "the current
// text of one named file", never directory listings.
package fm

import (
	"fmt"
	"sync"
)

// FileID is a stable, comparable handle for a file, assigned the first
// time its path is seen. It never changes even if the file's content
// does, so spans computed against an older read stay valid as cache
// keys until the file is explicitly reloaded.
type FileID int

// File is one tracked file's current content.
type File struct {
	Path   string
	Source string
}

// Manager owns the path<->FileID mapping and each file's content. An
// overlay entry (set by DidOpen/DidChange) always wins over content
// loaded from disk by Load.
type Manager struct {
	mu        sync.RWMutex
	idsByPath map[string]FileID
	files     []*File
	overlay   map[FileID]string
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{
		idsByPath: make(map[string]FileID),
		overlay:   make(map[FileID]string),
	}
}

// GetFileID returns the FileID for path, registering it if this is the
// first time path has been seen. The returned bool is false only when
// the manager has no content at all for path yet (caller should Load
// it first).
func (m *Manager) GetFileID(path string) (FileID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.idsByPath[path]
	if ok {
		return id, m.files[id] != nil
	}
	id = FileID(len(m.files))
	m.idsByPath[path] = id
	m.files = append(m.files, nil)
	return id, false
}

// Load registers path (if new) and sets its on-disk content, without
// disturbing any overlay already recorded for it.
func (m *Manager) Load(path, source string) FileID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.idsByPath[path]
	if !ok {
		id = FileID(len(m.files))
		m.idsByPath[path] = id
		m.files = append(m.files, nil)
	}
	m.files[id] = &File{Path: path, Source: source}
	return id
}

// SetOverlay records in-memory editor content for id, which GetFile
// will prefer over whatever Load last set.
func (m *Manager) SetOverlay(id FileID, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlay[id] = source
}

// ClearOverlay drops id's in-memory content, reverting GetFile to the
// last Load'ed content (called on textDocument/didClose).
func (m *Manager) ClearOverlay(id FileID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overlay, id)
}

// GetFile returns the current content for id: the overlay if one is
// set, otherwise the last loaded content.
func (m *Manager) GetFile(id FileID) (*File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(m.files) || m.files[id] == nil {
		return nil, false
	}
	f := *m.files[id]
	if src, ok := m.overlay[id]; ok {
		f.Source = src
	}
	return &f, true
}

// PositionToByteIndex converts a 0-based line/character (UTF-16
// column, per the LSP spec) into a byte offset into the file's source,
// mirroring cuepls's internal/lsp/cache position-conversion helper.
func (m *Manager) PositionToByteIndex(id FileID, line, character int) (int, error) {
	f, ok := m.GetFile(id)
	if !ok {
		return 0, fmt.Errorf("fm: unknown file id %d", id)
	}
	return positionToByteIndex(f.Source, line, character)
}

func positionToByteIndex(source string, line, character int) (int, error) {
	byteIdx := 0
	curLine := 0
	for curLine < line {
		nl := indexByte(source[byteIdx:], '\n')
		if nl < 0 {
			return 0, fmt.Errorf("fm: line %d out of range", line)
		}
		byteIdx += nl + 1
		curLine++
	}

	utf16Count := 0
	for byteIdx < len(source) {
		if utf16Count == character {
			return byteIdx, nil
		}
		r, size := decodeRune(source[byteIdx:])
		if r == '\n' {
			break
		}
		byteIdx += size
		if r > 0xFFFF {
			utf16Count += 2
		} else {
			utf16Count++
		}
	}
	if utf16Count == character {
		return byteIdx, nil
	}
	return 0, fmt.Errorf("fm: character %d out of range on line %d", character, line)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func decodeRune(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	b0 := s[0]
	switch {
	case b0 < 0x80:
		return rune(b0), 1
	case b0 < 0xE0:
		if len(s) < 2 {
			return rune(b0), 1
		}
		return rune(b0&0x1F)<<6 | rune(s[1]&0x3F), 2
	case b0 < 0xF0:
		if len(s) < 3 {
			return rune(b0), 1
		}
		return rune(b0&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), 3
	default:
		if len(s) < 4 {
			return rune(b0), 1
		}
		return rune(b0&0x07)<<18 | rune(s[1]&0x3F)<<12 | rune(s[2]&0x3F)<<6 | rune(s[3]&0x3F), 4
	}
}
