package driver

import (
	"encoding/json"
	"fmt"

	"fstrify/internal/diag"
	"fstrify/internal/observ"
	"fstrify/internal/source"
)

// timingPayload сериализуется в note диагностики ObsTimings; JSON-вывод
// показывает его целиком, короткий формат только message.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func (p timingPayload) message() string {
	if p.Path != "" {
		return fmt.Sprintf("timings (%s %s): total %.2f ms", p.Kind, p.Path, p.TotalMS)
	}
	return fmt.Sprintf("timings (%s): total %.2f ms", p.Kind, p.TotalMS)
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  payload.message(),
		Primary:  source.Span{},
		Notes:    []diag.Note{{Span: source.Span{}, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	// Мешок полон: тайминги не должны теряться из-за лимита диагностик,
	// Merge поднимает лимит.
	forced := diag.NewBag(1)
	forced.Add(entry)
	bag.Merge(forced)
}
