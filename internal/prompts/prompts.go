// Package prompts loads the system prompt templates used by each operation.
//
// Templates are read once when the client is built. A missing file is not an
// error: the template is empty and the operation decides what that means
// (analyze fails, optimize and fix fall back to a built-in prompt).
package prompts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Template file names inside the prompts directory.
const (
	WorkerFile    = "worker_v1.md"
	CoachFile     = "quality_coach.md"
	OptimizerFile = "optimizer.md"
	EditorFile    = "editor.md"
)

// Built-in prompts used when the optimizer or editor template is absent.
const (
	DefaultOptimizer = "You are a specialized Prompt Optimizer. Your goal is to reduce token usage by " +
		"at least 20% while preserving exact intent and constraints. Return only optimized text."
	DefaultEditor = "You are an expert editor. Rewrite this prompt to be better. " +
		"Return JSON: {fixed_text, explanation, changes}"
)

// Set holds the loaded templates.
type Set struct {
	Worker    string
	Coach     string
	Optimizer string
	Editor    string
}

// Load reads every template from dir. An empty dir yields an empty Set.
func Load(dir string) (*Set, error) {
	if dir == "" {
		return &Set{}, nil
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every template from fsys.
func LoadFS(fsys fs.FS) (*Set, error) {
	var (
		s   Set
		err error
	)
	if s.Worker, err = read(fsys, WorkerFile); err != nil {
		return nil, err
	}
	if s.Coach, err = read(fsys, CoachFile); err != nil {
		return nil, err
	}
	if s.Optimizer, err = read(fsys, OptimizerFile); err != nil {
		return nil, err
	}
	if s.Editor, err = read(fsys, EditorFile); err != nil {
		return nil, err
	}
	return &s, nil
}

// OptimizerOrDefault returns the optimizer template or the built-in prompt.
func (s *Set) OptimizerOrDefault() string {
	if s.Optimizer == "" {
		return DefaultOptimizer
	}
	return s.Optimizer
}

// EditorOrDefault returns the editor template or the built-in prompt.
func (s *Set) EditorOrDefault() string {
	if s.Editor == "" {
		return DefaultEditor
	}
	return s.Editor
}

func read(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read prompt template %s: %w", filepath.Base(name), err)
	}
	return string(data), nil
}
