// Package execx は外部コマンド（主に git）の実行を抽象化します。
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner は外部コマンドを実行するための最小インターフェースです。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// CommandRunner は exec.CommandContext を利用したデフォルト実装です。
type CommandRunner struct{}

// Run は指定された作業ディレクトリでコマンドを実行し、標準出力・標準エラーを収集します。
func (CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// IsNotFound はコマンドが見つからない場合のエラーを判定します。
func IsNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// DefaultRunner は CommandRunner を返します。
func DefaultRunner() Runner {
	return CommandRunner{}
}

// GitFiles は dir 配下の追跡済みファイルと未追跡（.gitignore 対象外）のファイルを
// NUL 区切りで取得し、dir からの相対パスで返します。
func GitFiles(ctx context.Context, r Runner, dir string, pathspecs ...string) ([]string, error) {
	if r == nil {
		r = DefaultRunner()
	}
	args := []string{"ls-files", "-z", "--cached", "--others", "--exclude-standard"}
	if len(pathspecs) > 0 {
		args = append(args, "--")
		args = append(args, pathspecs...)
	}
	stdout, stderr, err := r.Run(ctx, dir, "git", args...)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("git not found: %w", err)
		}
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			return nil, fmt.Errorf("git ls-files: %w", err)
		}
		return nil, fmt.Errorf("git ls-files: %s: %w", msg, err)
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range bytes.Split(stdout, []byte{0}) {
		name := string(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
