package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/incognito1025/fauna-go/internal/application/common"
	"github.com/incognito1025/fauna-go/internal/application/common/logging"
	"github.com/incognito1025/fauna-go/internal/application/common/slogger"
	"github.com/incognito1025/fauna-go/internal/application/service"
	"github.com/incognito1025/fauna-go/internal/domain/entity"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
	"github.com/incognito1025/fauna-go/internal/port/outbound"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// User-facing messages.
const (
	MsgGenericError   = "There was an error."
	MsgNotFound       = "Animal not found. No action taken"
	MsgUpdated        = "Animal successfully updated"
	MsgRemoved        = "Animal successfully removed from collection"
	MsgInitialized    = "Storage initialized"
	MsgAlreadyPresent = "Storage already initialized"
	msgScoreFormat    = "Current score %d"
	msgUnknownFormat  = "Unknown animal %q. No action taken"
	msgInvalidFormat  = "Invalid animal name %q: %s. No action taken"
)

// Result describes what a dispatched command did.
type Result struct {
	Output string // text written to the output, without trailing newline
	Saved  bool   // whether the collection was written back
}

// Dispatcher runs one command per invocation: load, operate, save only on mutation.
type Dispatcher struct {
	store   outbound.AnimalStore
	points  outbound.PointTableSource
	ids     outbound.IDGenerator
	strict  bool
	logger  logging.ApplicationLogger
	meter   metric.Meter
	metrics *dispatcherMetrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithStrictNames rejects animal names that are missing from the point table.
func WithStrictNames(strict bool) DispatcherOption {
	return func(d *Dispatcher) { d.strict = strict }
}

// WithLogger overrides the component logger.
func WithLogger(logger logging.ApplicationLogger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithMeter overrides the meter used for command and load metrics.
// The default is the global otel meter provider.
func WithMeter(meter metric.Meter) DispatcherOption {
	return func(d *Dispatcher) { d.meter = meter }
}

// NewDispatcher creates a new Dispatcher. All ports must be non-nil.
func NewDispatcher(
	store outbound.AnimalStore,
	points outbound.PointTableSource,
	ids outbound.IDGenerator,
	opts ...DispatcherOption,
) *Dispatcher {
	if store == nil {
		panic("store cannot be nil")
	}
	if points == nil {
		panic("points cannot be nil")
	}
	if ids == nil {
		panic("ids cannot be nil")
	}
	d := &Dispatcher{store: store, points: points, ids: ids}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slogger.WithComponent("dispatcher")
	}
	metrics, err := newDispatcherMetrics(d.meter)
	if err != nil {
		d.logger.ErrorWithError(context.Background(), err, "Failed to create dispatcher metrics", nil)
		metrics = noopDispatcherMetrics()
	}
	d.metrics = metrics
	return d
}

// Dispatch executes cmd and writes its user-facing output to out.
// Missing records and rejected names are reported on out and are not errors;
// storage failures are returned and abort the invocation.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command, out io.Writer) (Result, error) {
	result, outcome, err := d.dispatch(ctx, cmd)
	if err != nil {
		d.metrics.recordCommand(ctx, cmd.Action, OutcomeError)
		return Result{}, err
	}
	d.metrics.recordCommand(ctx, cmd.Action, outcome)
	return d.write(out, result)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd Command) (Result, string, error) {
	if err := cmd.Validate(); err != nil {
		if errors.Is(err, domainerrors.ErrUnrecognizedCommand) {
			d.logger.Warn(ctx, "Unrecognized command", logging.Fields{"command": string(cmd.Action)})
			return Result{Output: MsgGenericError}, OutcomeUnrecognized, nil
		}
		return Result{}, "", err
	}

	if cmd.Action == ActionInit {
		return d.init(ctx)
	}

	table, collection, err := d.load(ctx)
	if err != nil {
		return Result{}, "", err
	}

	svc := service.NewAnimalService(table, d.ids, service.WithStrictNames(d.strict))
	next, output, err := d.execute(ctx, svc, cmd, collection)
	if err != nil {
		return d.reject(ctx, cmd, err)
	}

	if !cmd.Action.Mutates() {
		return Result{Output: output}, OutcomeOK, nil
	}
	if err := d.store.Save(ctx, next); err != nil {
		d.logger.ErrorWithError(ctx, err, "Failed to save collection", nil)
		return Result{}, "", common.WrapServiceError(common.OpSaveCollection, err)
	}
	return Result{Output: output, Saved: true}, OutcomeSaved, nil
}

// reject turns operation failures the user can act on into "No action taken" messages.
func (d *Dispatcher) reject(ctx context.Context, cmd Command, err error) (Result, string, error) {
	var validation common.ValidationError
	switch {
	case errors.Is(err, domainerrors.ErrAnimalNotFound):
		d.logger.Info(ctx, "Animal not found", logging.Fields{"command": string(cmd.Action), "args": cmd.Args})
		return Result{Output: MsgNotFound}, OutcomeNotFound, nil
	case errors.Is(err, domainerrors.ErrUnknownAnimal):
		return Result{Output: fmt.Sprintf(msgUnknownFormat, lastArg(cmd))}, OutcomeUnknownName, nil
	case errors.As(err, &validation) && validation.Field == "name":
		return Result{Output: fmt.Sprintf(msgInvalidFormat, lastArg(cmd), validation.Message)}, OutcomeInvalidName, nil
	default:
		return Result{}, "", err
	}
}

func lastArg(cmd Command) string {
	if len(cmd.Args) == 0 {
		return ""
	}
	return cmd.Args[len(cmd.Args)-1]
}

func (d *Dispatcher) execute(
	ctx context.Context,
	svc *service.AnimalService,
	cmd Command,
	collection entity.Collection,
) (entity.Collection, string, error) {
	switch cmd.Action {
	case ActionList:
		return collection, svc.List(collection), nil
	case ActionCreate:
		next, animal, err := svc.Create(ctx, collection, cmd.Args[0])
		if err != nil {
			return collection, "", err
		}
		return next, common.RenderAnimalDetail(animal), nil
	case ActionShow:
		detail, err := svc.Show(collection, cmd.Args[0])
		return collection, detail, err
	case ActionUpdate:
		next, _, err := svc.Update(ctx, collection, cmd.Args[0], cmd.Args[1])
		if err != nil {
			return collection, "", err
		}
		return next, MsgUpdated, nil
	case ActionDestroy:
		next, err := svc.Destroy(ctx, collection, cmd.Args[0])
		if err != nil {
			return collection, "", err
		}
		return next, MsgRemoved, nil
	case ActionTotal:
		return collection, fmt.Sprintf(msgScoreFormat, svc.Total(collection)), nil
	default:
		return collection, "", fmt.Errorf("%w: %q", domainerrors.ErrUnrecognizedCommand, cmd.Action)
	}
}

// load reads the point table and the collection; the two inputs are independent.
func (d *Dispatcher) load(ctx context.Context) (valueobject.PointTable, entity.Collection, error) {
	start := time.Now()

	var (
		table      valueobject.PointTable
		collection entity.Collection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := d.points.Load(gctx)
		if err != nil {
			return common.WrapServiceError(common.OpLoadPointTable, err)
		}
		table = t
		return nil
	})
	g.Go(func() error {
		c, err := d.store.Load(gctx)
		if err != nil {
			return common.WrapServiceError(common.OpLoadCollection, err)
		}
		collection = c
		return nil
	})
	if err := g.Wait(); err != nil {
		d.logger.ErrorWithError(ctx, err, "Failed to load inputs", nil)
		return valueobject.PointTable{}, entity.Collection{}, err
	}

	elapsed := time.Since(start)
	d.metrics.recordLoad(ctx, elapsed)
	d.logger.LogPerformance(ctx, "load", elapsed, logging.Fields{
		"animals": collection.Len(),
		"points":  table.Len(),
	})
	return table, collection, nil
}

func (d *Dispatcher) init(ctx context.Context) (Result, string, error) {
	initializer, ok := d.store.(outbound.StoreInitializer)
	if !ok {
		return Result{Output: MsgAlreadyPresent}, OutcomeOK, nil
	}
	created, err := initializer.Init(ctx)
	if err != nil {
		return Result{}, "", common.WrapServiceError(common.OpInitStore, err)
	}
	if !created {
		return Result{Output: MsgAlreadyPresent}, OutcomeOK, nil
	}
	return Result{Output: MsgInitialized, Saved: true}, OutcomeSaved, nil
}

func (d *Dispatcher) write(out io.Writer, result Result) (Result, error) {
	if strings.TrimSpace(result.Output) == "" {
		return result, nil
	}
	if _, err := fmt.Fprintln(out, result.Output); err != nil {
		return result, fmt.Errorf("write output: %w", err)
	}
	return result, nil
}
