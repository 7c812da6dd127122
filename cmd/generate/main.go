// Command generate writes synthetic KYC forms to stdout, MongoDB or RabbitMQ.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/config"
	"github.com/kyc-co/synthforms/internal/forms"
	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/services"
)

const (
	sinkStdout = "stdout"
	sinkMongo  = "mongo"
	sinkAMQP   = "amqp"
)

type options struct {
	docType models.DocumentType
	count   int
	seed    int64
	sink    string
	legacy  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var formType string
	opts := &options{}
	fs.StringVar(&formType, "type", "employee", "form type (employee, counterparty)")
	fs.IntVar(&opts.count, "count", 1, "number of forms to generate")
	fs.Int64Var(&opts.seed, "seed", 0, "base seed for reproducibility (0 = random)")
	fs.StringVar(&opts.sink, "sink", sinkStdout, "destination (stdout, mongo, amqp)")
	fs.BoolVar(&opts.legacy, "legacy", false, "write counterparty forms in the flat projection")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	docType, err := models.ParseDocumentType(formType)
	if err != nil {
		return nil, err
	}
	opts.docType = docType

	if opts.count < 1 {
		return nil, fmt.Errorf("%w: -count must be positive, got %d", models.ErrInvalidCount, opts.count)
	}
	switch opts.sink {
	case sinkStdout, sinkMongo, sinkAMQP:
	default:
		return nil, fmt.Errorf("unknown sink %q", opts.sink)
	}
	return opts, nil
}

// openSink returns the sink and a function releasing its connections.
func openSink(ctx context.Context, opts *options, cfg *config.Config, stdout io.Writer) (services.Sink, func(), error) {
	switch opts.sink {
	case sinkMongo:
		client, err := config.InitMongoDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := services.NewFormStore(config.MongoDB, cfg.EmployeeFormCollection, cfg.CounterpartyFormCollection, logging.Logger)
		if err := store.EnsureIndexes(ctx); err != nil {
			logging.Logger.Warn("failed to create form indexes", zap.Error(err))
		}
		return store, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}, nil
	case sinkAMQP:
		publisher, err := services.NewFormPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue, opts.legacy, logging.Logger)
		if err != nil {
			return nil, nil, err
		}
		return publisher, func() { _ = publisher.Close() }, nil
	default:
		return services.NewJSONLinesSink(stdout, opts.legacy), func() {}, nil
	}
}

// generate writes opts.count forms to sink in chunks of at most the service's batch
// size. Chunk k is built from DeriveSeed(base, k), so the whole run is reproducible
// from the base seed.
func generate(ctx context.Context, svc *services.FormService, sink services.Sink, opts *options) (int64, error) {
	base := opts.seed
	if base == 0 {
		fresh, err := generators.NewSeed()
		if err != nil {
			return 0, err
		}
		base = fresh
	}

	remaining := opts.count
	for chunk := 0; remaining > 0; chunk++ {
		n := min(remaining, svc.MaxBatchSize())
		seed := base
		if opts.count > svc.MaxBatchSize() {
			seed = generators.DeriveSeed(base, chunk)
		}

		batch, err := svc.GenerateBatch(ctx, opts.docType, n, seed)
		if err != nil {
			return base, err
		}
		if err := sink.Write(ctx, batch.Forms); err != nil {
			return base, err
		}
		remaining -= n
	}
	return base, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	sink, closeSink, err := openSink(ctx, opts, cfg, stdout)
	if err != nil {
		return fmt.Errorf("open %s sink: %w", opts.sink, err)
	}
	defer closeSink()

	builder := forms.NewBuilder(cat,
		forms.WithLogger(logging.Logger),
		forms.WithAgeRange(cfg.DefaultMinAge, cfg.DefaultMaxAge),
	)
	svc := services.NewFormService(builder,
		services.WithBatchLimits(cfg.MaxBatchSize, cfg.GenerateWorkers),
		services.WithServiceLogger(logging.Logger),
	)

	start := time.Now()
	base, err := generate(ctx, svc, sink, opts)
	if err != nil {
		return err
	}

	logging.Logger.Info("generation finished",
		zap.String("document_type", string(opts.docType)),
		zap.Int("count", opts.count),
		zap.Int64("seed", base),
		zap.String("sink", opts.sink),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func main() {
	if err := logging.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logging.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
