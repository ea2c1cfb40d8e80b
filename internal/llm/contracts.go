package llm

import (
	"context"

	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// ResolveRequest is one batched fallback call. Fields holds exactly the
// subset the rule engine left unresolved; the orchestrator never includes a
// field it already has a value for.
type ResolveRequest struct {
	Label  string
	Text   string
	Fields *schema.Schema
}

// FieldResolver is the interface the orchestrator depends on. The returned
// map covers every requested field; a nil value means the model reported the
// field absent from the source text. Transport and service failures are
// returned as errors wrapping common.ErrFallbackTransport, never as absences.
type FieldResolver interface {
	ResolveFields(ctx context.Context, req ResolveRequest) (map[string]*string, []byte /*rawJSON*/, error)
}
