// Package observ collects phase durations of one pipeline run so the
// driver can surface them as timing diagnostics.
package observ

import "time"

// Phase is one timed stretch of the pipeline: load, parse, scan, or a
// caller-defined stage.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer накапливает фазы одного прогона. Не потокобезопасен: каждый
// прогон держит собственный таймер.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin opens a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase and attaches the note. Индекс вне диапазона — no-op:
// драйвер передаёт -1, когда тайминги выключены.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport is one phase flattened for serialization.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report holds every phase plus the summed total, in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report flattens the collected phases. Пустой таймер даёт нулевой отчёт
// без фаз.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	out := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		out.Phases = append(out.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: toMillis(p.Dur),
			Note:       p.Note,
		})
	}
	out.TotalMS = toMillis(total)
	return out
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
