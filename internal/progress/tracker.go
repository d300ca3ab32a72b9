package progress

// Tracker は Estimator の結果を間引いて Observer に渡します。nil の Tracker は何もしません。
type Tracker struct {
	est *Estimator
	obs Observer
}

func NewTracker(total int, obs Observer) *Tracker {
	if obs == nil {
		return nil
	}
	return &Tracker{est: NewEstimator(total, Config{}), obs: obs}
}

func (t *Tracker) Stage(stage Stage, total int) {
	if t == nil {
		return
	}
	t.est.SetTotal(total)
	if snap, changed := t.est.Stage(stage); changed {
		t.obs.Publish(snap)
	}
}

// File records one finished file with the number of keyword hits it
// produced.
func (t *Tracker) File(hits int, skipped bool) {
	if t == nil {
		return
	}
	t.est.Tally(hits, skipped)
	if snap, notify := t.est.Advance(1); notify {
		t.obs.Publish(snap)
	}
}

func (t *Tracker) Done() {
	if t == nil {
		return
	}
	t.obs.Done(t.est.Complete())
}
