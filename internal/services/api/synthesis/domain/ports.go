package domain

import "context"

// ServicePort defines the service contract for synthesis
type ServicePort interface {
	Synthesize(ctx context.Context, in SynthesizeRequest) (RenderResult, error)
	Debug(ctx context.Context, in SynthesizeRequest) (DebugResponse, error)
	Preview(ctx context.Context, in PreviewRequest) ([]byte, error)
	Apply(ctx context.Context, in ApplyRequest) (ApplyResponse, error)
	Health(ctx context.Context) HealthResponse
}
