package universe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLSource loads a custom universe from a YAML file, or from every YAML
// file under a directory (in lexical path order).
//
// Accepted shapes:
//
//	tickers: [AAPL, MSFT]
//
//	groups:
//	  - name: Tech
//	    tickers: [AAPL, MSFT]
//
//	- AAPL
//	- MSFT
type YAMLSource struct {
	Path string
}

func (s YAMLSource) Load(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, err
	}
	files := []string{s.Path}
	if info.IsDir() {
		files = files[:0]
		err := filepath.WalkDir(s.Path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
	}

	var all []string
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		syms, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		all = append(all, syms...)
	}
	all = dedupe(all)
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Path, ErrNoSymbols)
	}
	return all, nil
}

type yamlGroup struct {
	Name    string   `yaml:"name"`
	Tickers []string `yaml:"tickers"`
}

type yamlUniverse struct {
	Tickers []string    `yaml:"tickers"`
	Groups  []yamlGroup `yaml:"groups"`
}

func parseYAML(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("invalid yaml: expected a list of symbols: %w", err)
		}
		return list, nil
	case yaml.MappingNode:
		var u yamlUniverse
		if err := doc.Decode(&u); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
		out := append([]string(nil), u.Tickers...)
		for _, g := range u.Groups {
			out = append(out, g.Tickers...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid yaml: expected 'tickers', 'groups' or a list")
	}
}
