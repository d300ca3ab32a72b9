package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phyten/todomark/internal/execx"
)

// 走査しないディレクトリ（起点として明示された場合を除く）
var ignoreDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	".venv":        true,
	"__pycache__":  true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".next":        true,
}

// IgnoredDir は走査・監視から外すディレクトリ名かどうかを返します。
func IgnoredDir(name string) bool { return ignoreDirs[name] }

// Discover は対象ファイルを重複なく辞書順で返します。
func Discover(ctx context.Context, opts Options) ([]string, error) {
	var files []string
	var err error
	if opts.Git {
		files, err = gitFiles(ctx, opts)
	} else {
		files, err = walkFiles(ctx, opts.Paths)
	}
	if err != nil {
		return nil, err
	}
	out := files[:0]
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if excluded(f, opts.Excludes) {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func gitFiles(ctx context.Context, opts Options) ([]string, error) {
	repo := opts.RepoDir
	if repo == "" {
		repo = "."
	}
	var specs []string
	for _, p := range opts.Paths {
		if p = strings.TrimSpace(p); p != "" && p != "." {
			specs = append(specs, filepath.ToSlash(p))
		}
	}
	rel, err := execx.GitFiles(ctx, opts.Runner, repo, specs...)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rel))
	for _, f := range rel {
		out = append(out, filepath.Join(repo, filepath.FromSlash(f)))
	}
	return out, nil
}

func walkFiles(ctx context.Context, roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	var out []string
	for _, root := range roots {
		root = filepath.Clean(root)
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				// 読めないパスは飛ばす
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && IgnoredDir(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// excluded は glob をファイル名・スラッシュ区切りのパス・親ディレクトリ接頭辞と照合します。
func excluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, raw := range patterns {
		pat := strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(raw)), "/**")
		pat = strings.TrimSuffix(pat, "/")
		if pat == "" {
			continue
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, slash); ok {
			return true
		}
		if strings.HasPrefix(slash, pat+"/") || strings.Contains(slash, "/"+pat+"/") {
			return true
		}
	}
	return false
}
