package api

import (
	"encoding/json"
	"fmt"

	"scriptparse/internal/archive"
	"scriptparse/internal/script"
)

// FromScript converts a parsed script to its response form.
func FromScript(s script.Script) ScriptResponse {
	resp := ScriptResponse{
		Script:    make([]Block, 0, len(s.Blocks)),
		Languages: make([]string, 0, len(s.Languages)),
	}
	for _, code := range s.Languages {
		resp.Languages = append(resp.Languages, code.String())
	}
	for _, blk := range s.Blocks {
		resp.Script = append(resp.Script, FromBlock(blk))
	}
	return resp
}

// FromBlock converts one script block.
func FromBlock(blk script.Block) Block {
	out := Block{
		Meta: append([]string{}, blk.Meta...),
		Text: make(map[string]string, len(blk.Text)),
	}
	for _, code := range blk.Languages() {
		out.Languages = append(out.Languages, code.String())
		out.Text[code.String()] = blk.Text[code]
	}
	return out
}

// EncodeScript converts s and renders it as the response body.
func EncodeScript(s script.Script) (ScriptResponse, []byte, error) {
	resp := FromScript(s)
	body, err := json.Marshal(resp)
	if err != nil {
		return ScriptResponse{}, nil, fmt.Errorf("encode script: %w", err)
	}
	return resp, body, nil
}

// BlockLanguages lists each block's languages, for metrics.
func (r ScriptResponse) BlockLanguages() [][]string {
	out := make([][]string, len(r.Script))
	for i, blk := range r.Script {
		out[i] = blk.Languages
	}
	return out
}

// FromRun converts an archived run to its summary form.
func FromRun(run *archive.Run) RunSummary {
	if run == nil {
		return RunSummary{}
	}
	summary := RunSummary{
		ID:         run.ID,
		Source:     string(run.Source),
		LineCount:  run.LineCount,
		BlockCount: run.BlockCount,
		CreatedAt:  FormatTime(run.CreatedAt),
		Languages:  append([]string{}, run.Languages...),
	}
	return summary
}

// FromRunDetail converts an archived run including its result body.
func FromRunDetail(run *archive.Run) RunDetail {
	detail := RunDetail{RunSummary: FromRun(run)}
	if run != nil && len(run.ResultJSON) > 0 {
		detail.Result = json.RawMessage(run.ResultJSON)
	}
	return detail
}

// FromRuns converts a list of archived runs.
func FromRuns(runs []*archive.Run) RunListResponse {
	resp := RunListResponse{Runs: make([]RunSummary, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, FromRun(run))
	}
	return resp
}
