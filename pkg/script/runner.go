package script

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

const defaultTracerName = "mkdom/script"

// Runner executes scripts.
type Runner struct {
	tracer trace.Tracer
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTracerName resolves the tracer from the global provider by name.
func WithTracerName(name string) RunnerOption {
	return func(r *Runner) {
		r.tracer = otel.Tracer(name)
	}
}

// WithTracer sets the tracer directly.
func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) {
		r.tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner returns a Runner that traces with the global tracer provider.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(defaultTracerName)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "script")
	return r
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index    int           `json:"index"`
	Op       string        `json:"op"`
	Target   string        `json:"target"`
	Affected int           `json:"affected"`
	Duration time.Duration `json:"duration"`
}

// Report lists the steps that ran.
type Report struct {
	Script string       `json:"script,omitempty"`
	Steps  []StepResult `json:"steps"`
}

// Affected returns the total number of elements touched.
func (r *Report) Affected() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Affected
	}
	return n
}

// Run applies every step of s to doc in order. It stops at the first
// failing step and returns the steps that completed along with an E163
// error wrapping the cause. Cancelling ctx stops the run between steps.
func (r *Runner) Run(ctx context.Context, doc mkdom.Document, s *Script) (*Report, error) {
	report := &Report{Script: s.Name}

	ctx, span := r.tracer.Start(ctx, "mkdom.script",
		trace.WithAttributes(
			attribute.String("mkdom.script", s.Name),
			attribute.Int("mkdom.steps", len(s.Steps)),
		),
	)
	defer span.End()

	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return report, err
		}

		st := &s.Steps[i]
		res, err := r.runStep(ctx, doc, i, st)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return report, s.stepError(
				errors.New("E163").WithDetailf("step %d: %s on %s", i+1, st.Op, st.Target()).Wrap(err),
				st, "")
		}
		report.Steps = append(report.Steps, res)
	}

	span.SetAttributes(attribute.Int("mkdom.affected", report.Affected()))
	span.SetStatus(codes.Ok, "")
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, doc mkdom.Document, i int, st *Step) (StepResult, error) {
	_, span := r.tracer.Start(ctx, "mkdom.step "+st.Op,
		trace.WithAttributes(
			attribute.Int("mkdom.step", i+1),
			attribute.String("mkdom.op", st.Op),
			attribute.String("mkdom.target", st.Target()),
		),
	)
	defer span.End()

	start := time.Now()
	affected, err := apply(doc, st)
	res := StepResult{
		Index:    i + 1,
		Op:       st.Op,
		Target:   st.Target(),
		Affected: affected,
		Duration: time.Since(start),
	}
	span.SetAttributes(attribute.Int("mkdom.affected", affected))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn("step failed", "step", i+1, "op", st.Op, "target", st.Target(), "error", err)
		return res, err
	}
	span.SetStatus(codes.Ok, "")
	r.logger.Debug("step applied", "step", i+1, "op", st.Op, "target", st.Target(), "affected", affected, "duration", res.Duration)
	return res, nil
}
