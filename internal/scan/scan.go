// Package scan は複数ファイルを並列に走査し、受理されたキーワード出現を集めます。
package scan

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/detect"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/progress"
	"github.com/phyten/todomark/internal/session"
)

// バイナリ判定に使う先頭バイト数
const sniffLen = 8000

type fileResult struct {
	items   []Item
	err     *ItemError
	skipped bool
}

// Run は opts に従ってファイルを列挙し、snap の設定で各ファイルを照合します。
//
// ファイル単位の失敗は Result.Errors に集約され、Run 自体は列挙の失敗か
// ctx のキャンセルでのみエラーを返します。
func Run(ctx context.Context, snap *session.Snapshot, opts Options) (*Result, error) {
	start := time.Now()
	if snap == nil || !snap.Enabled() {
		return &Result{ElapsedMS: msSince(start)}, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	tracker := progress.NewTracker(0, opts.Progress)
	tracker.Stage(progress.StageDiscover, 0)
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	tracker.Stage(progress.StageMatch, len(files))

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scanFile(snap, path, opts)
			tracker.File(len(results[i].items), results[i].skipped)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tracker.Done()

	res := &Result{Files: len(files)}
	for _, r := range results {
		res.Items = append(res.Items, r.items...)
		if r.err != nil {
			res.Errors = append(res.Errors, *r.err)
		}
		if r.skipped {
			res.Skipped++
		}
	}
	sort.SliceStable(res.Items, func(i, j int) bool {
		a, b := res.Items[i], res.Items[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Span.Start < b.Span.Start
	})
	sort.Slice(res.Errors, func(i, j int) bool {
		if res.Errors[i].File == res.Errors[j].File {
			return res.Errors[i].Stage < res.Errors[j].Stage
		}
		return res.Errors[i].File < res.Errors[j].File
	})
	res.Total = len(res.Items)
	res.ErrorCount = len(res.Errors)
	res.ElapsedMS = msSince(start)
	return res, nil
}

func scanFile(snap *session.Snapshot, path string, opts Options) fileResult {
	info, err := os.Stat(path)
	if err != nil {
		return fileResult{err: newItemError(path, "stat", err)}
	}
	if opts.MaxFileBytes > 0 && info.Size() > int64(opts.MaxFileBytes) {
		return fileResult{skipped: true}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: newItemError(path, "read", err)}
	}
	if isBinary(data) {
		return fileResult{skipped: true}
	}
	lang := detect.Detect(path, data, "")
	if !detect.MatchesLang(lang, opts.Langs) {
		return fileResult{skipped: true}
	}
	if !opts.NoPrefilter && !snap.Filter.MayMatch(data) {
		return fileResult{}
	}

	buf := buffer.FromBytes(path, lang.Name, data)
	c := snap.Cursor(buf)
	var matches []model.Match
	if opts.Raw {
		matches, err = matcher.Enumerate(buf, snap.Compiled)
	} else {
		matches, err = matcher.Collect(c)
	}
	if err != nil {
		return fileResult{err: newItemError(path, "match", err)}
	}
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		items = append(items, newItem(snap, buf, c.Oracle(), m))
	}
	return fileResult{items: items}
}

func newItem(snap *session.Snapshot, buf *buffer.Buffer, oracle lexctx.Oracle, m model.Match) Item {
	sl, sc, el, ec := buf.Span(m.Start, m.End)
	it := Item{
		File:    buf.Name(),
		Lang:    buf.Kind(),
		Keyword: m.Keyword,
		Punct:   m.Punct,
		Kind:    lexctx.KindAt(oracle, m.Start),
		Line:    sl,
		Col:     sc,
		Span:    model.Span{StartLine: sl, StartCol: sc, EndLine: el, EndCol: ec, Start: m.Start, End: m.End},
		Context: strings.TrimSpace(buf.Line(sl)),
	}
	if style, ok := snap.Resolver.Resolve(m.Keyword); ok {
		it.Style = style.String()
	}
	return it
}

func isBinary(data []byte) bool {
	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}
	return bytes.IndexByte(sample, 0) >= 0
}

func newItemError(file, stage string, err error) *ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return &ItemError{File: file, Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
