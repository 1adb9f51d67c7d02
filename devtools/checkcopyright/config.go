// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/txtar"

	"go.astrophena.name/copyright/notice"
)

const defaultConfigPath = ".devtools/config.txtar"

type config struct {
	owner      string
	exclusions []string
	styles     *notice.Table
}

type styleRow struct {
	Ext    string `json:"ext"`
	Name   string `json:"name"`
	Family string `json:"family"`
	Open   string `json:"open"`
	Line   string `json:"line"`
	Close  string `json:"close"`
}

func (r styleRow) style() (notice.Style, error) {
	if r.Family != "" {
		s, ok := notice.Families[r.Family]
		if !ok {
			return notice.Style{}, fmt.Errorf("unknown family %q", r.Family)
		}
		return s, nil
	}
	if r.Line == "" {
		return notice.Style{}, errors.New(`either "family" or "line" must be set`)
	}
	return notice.Style{Open: r.Open, Line: r.Line, Close: r.Close}, nil
}

// loadConfig reads the configuration archive at path. A missing file is only
// an error if the path was given explicitly.
func loadConfig(path string, explicit bool) (*config, error) {
	cfg := &config{styles: notice.NewTable()}

	ar, err := txtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	for _, f := range ar.Files {
		switch f.Name {
		case "copyright/owner":
			cfg.owner = strings.TrimSpace(string(f.Data))
		case "copyright/exclusions.json":
			if err := json.Unmarshal(f.Data, &cfg.exclusions); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", path, f.Name, err)
			}
			for _, pattern := range cfg.exclusions {
				if !doublestar.ValidatePattern(pattern) {
					return nil, fmt.Errorf("%s: %s: invalid pattern %q", path, f.Name, pattern)
				}
			}
		case "copyright/styles.json":
			var rows []styleRow
			if err := json.Unmarshal(f.Data, &rows); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", path, f.Name, err)
			}
			for i, row := range rows {
				if err := cfg.addStyle(row); err != nil {
					return nil, fmt.Errorf("%s: %s: entry %d: %w", path, f.Name, i, err)
				}
			}
		}
	}

	return cfg, nil
}

func (cfg *config) addStyle(row styleRow) error {
	s, err := row.style()
	if err != nil {
		return err
	}
	switch {
	case row.Ext != "" && row.Name != "":
		return errors.New(`only one of "ext" and "name" can be set`)
	case row.Ext != "":
		if !strings.HasPrefix(row.Ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", row.Ext)
		}
		cfg.styles.AddExt(row.Ext, s)
	case row.Name != "":
		cfg.styles.AddName(row.Name, s)
	default:
		return errors.New(`either "ext" or "name" must be set`)
	}
	return nil
}

func (cfg *config) isExcluded(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range cfg.exclusions {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
