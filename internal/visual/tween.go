package visual

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/pathviz/model"
)

const (
	FadeSeconds  = 0.35
	PulseSeconds = 0.25
	pulseLow     = 0.35
)

type Action struct {
	nexts    []func(f *Fades)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	if a.nexts == nil {
		a.nexts = make([]func(f *Fades), 0)
	}
	a.nexts = append(a.nexts,
		func(f *Fades) {
			f.tweens[t] = action
		})
	return action
}

// Fades tracks per-cell opacity animations. A cell without a running tween is
// fully shown.
type Fades struct {
	tweens map[*gween.Tween]*Action
	alpha  map[model.Pos]float32
}

func NewFades() *Fades {
	return &Fades{
		tweens: make(map[*gween.Tween]*Action),
		alpha:  make(map[model.Pos]float32),
	}
}

func (f *Fades) set(p model.Pos) func(float32) {
	return func(v float32) { f.alpha[p] = v }
}

func (f *Fades) done(p model.Pos) func() {
	return func() { delete(f.alpha, p) }
}

// FadeIn starts p at zero opacity and brings it up over FadeSeconds.
func (f *Fades) FadeIn(p model.Pos) {
	f.alpha[p] = 0
	action := &Action{onChange: f.set(p)}
	action.addOnFinish(f.done(p))
	f.tweens[gween.New(0, 1, FadeSeconds, ease.OutQuad)] = action
}

// Pulse dims p and brings it back.
func (f *Fades) Pulse(p model.Pos) {
	down := &Action{onChange: f.set(p)}
	up := down.next(gween.New(pulseLow, 1, PulseSeconds, ease.InOutSine))
	up.onChange = f.set(p)
	up.addOnFinish(f.done(p))
	f.tweens[gween.New(1, pulseLow, PulseSeconds, ease.InOutSine)] = down
}

// Update advances every tween by dt seconds. Tweens queued by a finishing
// one start on the next Update.
func (f *Fades) Update(dt float32) {
	var nexts []func(f *Fades)
	for t, a := range f.tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			nexts = append(nexts, a.nexts...)
			delete(f.tweens, t)
		}
	}
	for _, next := range nexts {
		next(f)
	}
}

// Alpha is the current opacity of p, 1 when p is not animating.
func (f *Fades) Alpha(p model.Pos) float32 {
	if a, ok := f.alpha[p]; ok {
		return a
	}
	return 1
}

func (f *Fades) Active() int {
	return len(f.tweens)
}

func (f *Fades) Reset() {
	f.tweens = make(map[*gween.Tween]*Action)
	f.alpha = make(map[model.Pos]float32)
}
