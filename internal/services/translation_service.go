package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"tavernasite/internal/core"
)

// FileContentService reads the per-language content documents from a
// directory holding <lang>.json files. Every call reads the file again, so
// edits are visible without a restart.
type FileContentService struct {
	fsys fs.FS
}

func NewFileContentService(contentDir string) *FileContentService {
	return &FileContentService{fsys: os.DirFS(contentDir)}
}

// NewFSContentService serves content from an arbitrary file system, such as
// an embed.FS or fstest.MapFS.
func NewFSContentService(fsys fs.FS) *FileContentService {
	return &FileContentService{fsys: fsys}
}

// Languages returns the supported languages that have a content file.
func (s *FileContentService) Languages() ([]string, error) {
	files, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory: %w", err)
	}

	var langs []string
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		lang, ok := core.ParseLanguage(strings.TrimSuffix(file.Name(), ".json"))
		if !ok {
			continue
		}
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// Raw returns the content document for lang after checking it decodes as a
// Dictionary.
func (s *FileContentService) Raw(_ context.Context, lang string) ([]byte, error) {
	code, ok := core.ParseLanguage(lang)
	if !ok {
		return nil, &core.LoadError{Lang: lang, Err: core.ErrUnsupportedLanguage}
	}

	content, err := fs.ReadFile(s.fsys, code+".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &core.LoadError{Lang: code, Err: core.ErrNotFound}
	}
	if err != nil {
		return nil, &core.LoadError{Lang: code, Err: fmt.Errorf("failed to read file: %w", err)}
	}

	var d core.Dictionary
	if err := json.Unmarshal(content, &d); err != nil {
		return nil, &core.LoadError{Lang: code, Err: fmt.Errorf("failed to parse json: %w", err)}
	}
	return content, nil
}

// Fetch implements core.DictionarySource.
func (s *FileContentService) Fetch(ctx context.Context, lang string) (*core.Dictionary, error) {
	content, err := s.Raw(ctx, lang)
	if err != nil {
		return nil, err
	}
	var d core.Dictionary
	if err := json.Unmarshal(content, &d); err != nil {
		return nil, &core.LoadError{Lang: lang, Err: fmt.Errorf("failed to parse json: %w", err)}
	}
	return &d, nil
}
