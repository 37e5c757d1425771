// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ftdetect works out which structured format a declaration file is
// written in.
package ftdetect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/argspec/pkg/codecutil"
	"gopkg.in/yaml.v3"
)

// ErrUndetected is returned when neither the name nor the contents of a
// file identify its format.
var ErrUndetected = errors.New("unable to detect file format")

type file struct {
	f    io.ReadSeeker
	path string
}

// Detect returns the format of the file at path, by extension first and by
// content otherwise.
func Detect(path string) (codecutil.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return codecutil.Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return (&file{f: f, path: path}).detect()
}

// DetectReader is like Detect for content that is not on disk. name may
// be empty.
func DetectReader(name string, r io.ReadSeeker) (codecutil.Format, error) {
	return (&file{f: r, path: name}).detect()
}

func (f *file) detect() (codecutil.Format, error) {
	if ft, ok := f.detectByName(); ok {
		return ft, nil
	}
	bs, err := f.readAll()
	if err != nil {
		return codecutil.Unknown, err
	}
	switch {
	case detectJSON(bs):
		return codecutil.JSON, nil
	case detectTOML(bs):
		return codecutil.TOML, nil
	case detectYAML(bs):
		return codecutil.YAML, nil
	}
	return codecutil.Unknown, ErrUndetected
}

func (f *file) detectByName() (codecutil.Format, bool) {
	if f.path == "" {
		return codecutil.Unknown, false
	}
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".json":
		return codecutil.JSON, true
	case ".yml", ".yaml":
		return codecutil.YAML, true
	case ".toml":
		return codecutil.TOML, true
	}
	return codecutil.Unknown, false
}

func (f *file) readAll() ([]byte, error) {
	if f.f == nil {
		return nil, fmt.Errorf("file is nil")
	}
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to start of file: %w", err)
	}
	bs, err := io.ReadAll(f.f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return bs, nil
}

// detectJSON accepts a single JSON object.
func detectJSON(bs []byte) bool {
	trimmed := bytes.TrimSpace(bs)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// detectTOML accepts a document that decodes to at least one key.
func detectTOML(bs []byte) bool {
	var m map[string]any
	md, err := toml.Decode(string(bs), &m)
	return err == nil && len(md.Keys()) > 0
}

// detectYAML accepts a document whose top level is a non-empty mapping.
func detectYAML(bs []byte) bool {
	var m map[string]any
	if err := yaml.Unmarshal(bs, &m); err != nil {
		return false
	}
	return len(m) > 0
}
