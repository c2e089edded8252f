package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/logger"
)

const tracerName = "hopwise.pipeline"

// Stages are the four domain-specific steps of a handler pipeline over
// query type Q and option type R. Run fixes their order.
type Stages[Q, R any] interface {
	// Domain returns the domain the stages serve.
	Domain() domain.Domain

	// Parse turns free text into a validated query or a *domain.ValidationError.
	Parse(ctx context.Context, rawQuery string, qctx domain.QueryContext) (Q, error)

	// Fetch gathers options from every provider. It may enrich the query
	// (e.g. resolved coordinates) and records provider outcomes in meta.
	// It never fails.
	Fetch(ctx context.Context, query *Q, priority domain.Priority, meta *domain.Metadata) []R

	// Compare produces a recommendation. It never fails.
	Compare(ctx context.Context, options []R, priority domain.Priority) domain.Recommendation

	// Format returns a new, ranked slice. The input must not be modified.
	Format(options []R, priority domain.Priority) []R
}

type requestIDKey struct{}

// WithRequestID stores a request ID on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Run executes parse, fetch, compare and format strictly in order.
// A validation error short-circuits and is returned; nothing else is.
func Run[Q, R any](
	ctx context.Context, st Stages[Q, R], rawQuery string, qctx domain.QueryContext, priority domain.Priority,
) (domain.Outcome[Q, R], error) {
	start := time.Now()
	d := st.Domain()
	if !priority.IsValid() {
		priority = domain.PriorityBalanced
	}
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = WithRequestID(ctx, requestID)
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "pipeline.process", trace.WithAttributes(
		attribute.String("domain", d.String()),
		attribute.String("priority", priority.String()),
		attribute.String("request.id", requestID),
	))
	defer span.End()

	logger.Section("Process " + d.String())
	out := domain.Outcome[Q, R]{
		Metadata: domain.Metadata{RequestID: requestID, Domain: d, Priority: priority},
	}

	stageCtx, stageSpan := tracer.Start(ctx, "pipeline.parse")
	query, err := st.Parse(stageCtx, rawQuery, qctx)
	stageSpan.End()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			logger.Info("Validation failed: %v", ve)
			return out, err
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		// A non-validation parse failure still means we could not build a query.
		return out, domain.NewValidationError(d, "", "could not be understood: "+err.Error())
	}
	out.Query = query

	stageCtx, stageSpan = tracer.Start(ctx, "pipeline.fetch")
	options := st.Fetch(stageCtx, &out.Query, priority, &out.Metadata)
	stageSpan.SetAttributes(attribute.Int("options", len(options)))
	stageSpan.End()
	logger.Debug("Fetched %d options", len(options))
	if len(options) == 0 {
		out.Metadata.Notef("no options were returned by any provider")
	}

	stageCtx, stageSpan = tracer.Start(ctx, "pipeline.compare")
	out.Recommendation = st.Compare(stageCtx, options, priority)
	stageSpan.SetAttributes(attribute.String("recommendation.source", string(out.Recommendation.Source)))
	stageSpan.End()
	if out.Recommendation.FallbackReason != "" {
		out.Metadata.Notef("recommendation used rule-based fallback: %s", out.Recommendation.FallbackReason)
	}

	_, stageSpan = tracer.Start(ctx, "pipeline.format")
	out.Options = st.Format(options, priority)
	stageSpan.End()

	out.Metadata.Duration = time.Since(start)
	logger.Debug("Processed %s in %s", d, out.Metadata.Duration.Round(time.Millisecond))
	return out, nil
}
