package entity

// Result maps every schema field name to its extracted value. A nil value is
// the explicit not-found marker; a field is never silently omitted.
type Result map[string]*string

// Clone returns an independent copy of the result.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for k, v := range r {
		if v == nil {
			out[k] = nil
			continue
		}
		s := *v
		out[k] = &s
	}
	return out
}

// FoundCount reports how many fields hold a value (non-nil).
func (r Result) FoundCount() int {
	n := 0
	for _, v := range r {
		if v != nil {
			n++
		}
	}
	return n
}

// Metadata describes how one extraction was resolved. It is recomputed on
// every non-cached run and stored alongside the result.
type Metadata struct {
	Label             string   `json:"label"`
	CacheKey          string   `json:"cache_key"`
	CacheHit          bool     `json:"cache_hit"`
	HeuristicsUsed    bool     `json:"heuristics_used"`
	LLMUsed           bool     `json:"llm_used"`
	FoundByHeuristics []string `json:"found_by_heuristics,omitempty"`
	FoundByLLM        []string `json:"found_by_llm,omitempty"`
	TotalFields       int      `json:"total_fields"`
}

// StrPtr is a convenience for building results and tests.
func StrPtr(s string) *string { return &s }
