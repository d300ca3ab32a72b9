package progress

import (
	"math"
	"sync"
	"time"
)

// Stage は走査の段階を表します。
type Stage string

const (
	StageDiscover Stage = "discover"
	StageMatch    Stage = "match"
)

// Snapshot は進捗のある時点の状態です。
type Snapshot struct {
	Stage     Stage         `json:"stage"`
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Remaining int           `json:"remaining"`
	Hits      int           `json:"hits"`
	Skipped   int           `json:"skipped"`
	Rate      float64       `json:"rate_per_sec"`
	ETA       time.Duration `json:"eta"`
	Warmup    bool          `json:"warmup"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Config struct {
	Alpha          float64
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WarmupSamples:  20,
		WarmupDuration: 500 * time.Millisecond,
		NotifyInterval: 250 * time.Millisecond,
	}
}

// Estimator は処理速度の指数移動平均から残り時間を推定します。
// 複数ゴルーチンから同時に Advance してよい。
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	start      time.Time
	lastUpdate time.Time
	lastNotify time.Time
	stage      Stage
	total      int
	done       int
	hits       int
	skipped    int
	ema        float64
}

func NewEstimator(total int, cfg Config) *Estimator {
	base := DefaultConfig()
	if cfg.Alpha > 0 {
		base.Alpha = cfg.Alpha
	}
	if cfg.WarmupSamples > 0 {
		base.WarmupSamples = cfg.WarmupSamples
	}
	if cfg.WarmupDuration > 0 {
		base.WarmupDuration = cfg.WarmupDuration
	}
	if cfg.NotifyInterval > 0 {
		base.NotifyInterval = cfg.NotifyInterval
	}
	now := time.Now()
	return &Estimator{
		cfg:        base,
		start:      now,
		lastUpdate: now,
		stage:      StageDiscover,
		total:      total,
	}
}

func (e *Estimator) SetTotal(total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total = total
}

// Stage は段階を切り替え、件数と速度をリセットします。
func (e *Estimator) Stage(stage Stage) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if stage == e.stage {
		return e.snapshotLocked(now), false
	}
	e.stage = stage
	e.done = 0
	e.hits = 0
	e.skipped = 0
	e.ema = 0
	e.start = now
	e.lastUpdate = now
	e.lastNotify = now
	return e.snapshotLocked(now), true
}

// Advance は完了件数を delta 進めます。2 番目の戻り値は通知すべきかどうか。
func (e *Estimator) Advance(delta int) (Snapshot, bool) {
	if delta <= 0 {
		return e.Snapshot(), false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if now.Before(e.lastUpdate) {
		now = e.lastUpdate
	}
	dt := now.Sub(e.lastUpdate).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += delta
	instant := float64(delta) / dt
	if math.IsNaN(instant) || math.IsInf(instant, 0) || instant < 0 {
		instant = 0
	}
	if e.ema == 0 {
		e.ema = instant
	} else {
		e.ema = e.cfg.Alpha*instant + (1-e.cfg.Alpha)*e.ema
	}
	e.lastUpdate = now
	snap := e.snapshotLocked(now)
	notify := now.Sub(e.lastNotify) >= e.cfg.NotifyInterval || snap.Remaining == 0
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

// Tally adds the outcome of one file to the running counters without
// advancing the completed count.
func (e *Estimator) Tally(hits int, skipped bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if hits > 0 {
		e.hits += hits
	}
	if skipped {
		e.skipped++
	}
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done < e.total {
		e.done = e.total
	}
	return e.snapshotLocked(time.Now())
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remain := e.total - e.done
	if remain < 0 {
		remain = 0
	}
	elapsed := now.Sub(e.start)
	warm := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration
	var eta time.Duration
	if warm && remain > 0 {
		eta = durationFrom(float64(remain), e.ema)
	}
	return Snapshot{
		Stage:     e.stage,
		Total:     e.total,
		Done:      e.done,
		Remaining: remain,
		Hits:      e.hits,
		Skipped:   e.skipped,
		Rate:      e.ema,
		ETA:       eta,
		Warmup:    !warm,
		StartedAt: e.start,
		UpdatedAt: now,
		Elapsed:   elapsed,
	}
}

func durationFrom(count float64, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	seconds := count / rate
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	if seconds > float64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
