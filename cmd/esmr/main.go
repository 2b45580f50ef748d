// Command esmr trains an elastic softmax classifier on a synthetic
// shape dataset and reports train/test accuracy.
//
// Every flag default can be overridden from the environment or a .env file
// in the working directory (ESMR_VARIANT, ESMR_OPTIMIZER, ESMR_ETA, ...).
//
//	esmr -variant min-max -partitions 2 -optimizer adam -eta 0.01 -v 1
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/esmr/classifier"
	"github.com/katalvlaran/esmr/dtw"
	"github.com/katalvlaran/esmr/optimizer"
	"github.com/katalvlaran/esmr/series"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "esmr: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, trains and prints the results.
func run(ctx context.Context, args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	train := synthesize(cfg.Seed, cfg.PerClass, cfg.MinLen, cfg.MaxLen, cfg.Noise)
	val := synthesize(cfg.Seed+1, cfg.PerClass, cfg.MinLen, cfg.MaxLen, cfg.Noise)
	test := synthesize(cfg.Seed+2, cfg.PerClass, cfg.MinLen, cfg.MaxLen, cfg.Noise)
	fmt.Printf("Training %s/%s on %d sequences (%d classes, length %d..%d)\n",
		cfg.Variant, cfg.Optimizer, train.Len(), train.NumLabels(), cfg.MinLen, cfg.MaxLen)

	clf, sum, err := classifier.FitWithRestarts(ctx, train, cfg.Restarts, cfg.options(val)...)
	if err != nil && !errors.Is(err, classifier.ErrRestartsExhausted) {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Printf("state     %s after %d epochs (%d restarts, eta %g)\n", sum.State, sum.Epochs, sum.Restarts, sum.Eta)
	fmt.Printf("min loss  %.5f\n", sum.MinLoss)
	fmt.Printf("train acc %.3f\n", clf.Score(train))
	fmt.Printf("test acc  %.3f\n", clf.Score(test))

	if cfg.Baseline {
		nn, err := dtw.NewNearestNeighbor(train, dtw.WithWindow(cfg.Window), dtw.WithWorkers(cfg.Workers))
		if err != nil {
			return err
		}
		fmt.Printf("dtw 1-NN  %.3f\n", nn.Score(test))
	}

	return nil
}

// config is the resolved command line.
type config struct {
	Variant    classifier.Variant
	Optimizer  optimizer.Kind
	Elasticity int
	Partitions int
	Eta        float64
	Lambda     float64
	Mu         float64
	Rho1       float64
	Rho2       float64
	Epochs     int
	Stable     int
	Restarts   int
	Verbosity  int
	Workers    int
	Seed       int64
	PerClass   int
	MinLen     int
	MaxLen     int
	Noise      float64
	Baseline   bool
	Window     int
}

var variants = map[string]classifier.Variant{
	classifier.ElasticSum.String(): classifier.ElasticSum,
	classifier.ElasticMax.String(): classifier.ElasticMax,
	classifier.MinMax.String():     classifier.MinMax,
}

func parseConfig(args []string) (config, error) {
	fset := flag.NewFlagSet("esmr", flag.ContinueOnError)
	d := classifier.DefaultOptions()

	variant := fset.String("variant", envString("ESMR_VARIANT", d.Variant.String()), "elastic-sum, elastic-max or min-max")
	opt := fset.String("optimizer", envString("ESMR_OPTIMIZER", d.Optimizer.String()), "sgd, momentum, adagrad, adadelta or adam")
	var cfg config
	fset.IntVar(&cfg.Elasticity, "e", envInt("ESMR_ELASTICITY", d.Elasticity), "template columns (elasticity)")
	fset.IntVar(&cfg.Partitions, "partitions", envInt("ESMR_PARTITIONS", d.Partitions), "templates per class (min-max only)")
	fset.Float64Var(&cfg.Eta, "eta", envFloat("ESMR_ETA", 0.01), "learning rate")
	fset.Float64Var(&cfg.Lambda, "lambda", envFloat("ESMR_LAMBDA", d.Lambda), "weight decay")
	fset.Float64Var(&cfg.Mu, "mu", envFloat("ESMR_MU", d.Mu), "momentum")
	fset.Float64Var(&cfg.Rho1, "rho1", envFloat("ESMR_RHO1", d.Rho1), "first decay rate")
	fset.Float64Var(&cfg.Rho2, "rho2", envFloat("ESMR_RHO2", d.Rho2), "second decay rate")
	fset.IntVar(&cfg.Epochs, "T", envInt("ESMR_EPOCHS", 200), "maximum epochs")
	fset.IntVar(&cfg.Stable, "S", envInt("ESMR_STABLE", d.MaxStable), "maximum epochs without improvement")
	fset.IntVar(&cfg.Restarts, "restarts", envInt("ESMR_RESTARTS", 5), "learning-rate halvings on divergence")
	fset.IntVar(&cfg.Verbosity, "v", envInt("ESMR_VERBOSITY", 1), "verbosity (0 quiet)")
	fset.IntVar(&cfg.Workers, "workers", envInt("ESMR_WORKERS", runtime.GOMAXPROCS(0)), "evaluation goroutines")
	fset.Int64Var(&cfg.Seed, "seed", int64(envInt("ESMR_SEED", 1)), "random seed")
	fset.IntVar(&cfg.PerClass, "n", envInt("ESMR_PER_CLASS", 30), "synthetic sequences per class")
	fset.IntVar(&cfg.MinLen, "min-len", envInt("ESMR_MIN_LEN", 12), "shortest synthetic sequence")
	fset.IntVar(&cfg.MaxLen, "max-len", envInt("ESMR_MAX_LEN", 20), "longest synthetic sequence")
	fset.Float64Var(&cfg.Noise, "noise", envFloat("ESMR_NOISE", 0.1), "synthetic noise level")

	fset.BoolVar(&cfg.Baseline, "baseline", envString("ESMR_BASELINE", "true") == "true", "also score a 1-NN DTW baseline")
	fset.IntVar(&cfg.Window, "window", envInt("ESMR_WINDOW", 0), "Sakoe-Chiba window for the baseline (0 = none)")

	if err := fset.Parse(args); err != nil {
		return config{}, err
	}

	v, ok := variants[*variant]
	if !ok {
		return config{}, fmt.Errorf("unknown variant %q", *variant)
	}
	k, err := optimizer.ParseKind(*opt)
	if err != nil {
		return config{}, err
	}
	cfg.Variant, cfg.Optimizer = v, k
	if cfg.MinLen <= 0 || cfg.MaxLen < cfg.MinLen {
		return config{}, fmt.Errorf("bad length range %d..%d", cfg.MinLen, cfg.MaxLen)
	}
	if cfg.Window < 0 {
		return config{}, fmt.Errorf("-window cannot be negative, got %d", cfg.Window)
	}
	if cfg.PerClass <= 0 {
		return config{}, fmt.Errorf("-n must be positive, got %d", cfg.PerClass)
	}

	return cfg, nil
}

// options maps the config onto classifier options.
func (c config) options(validation series.Set) []classifier.Option {
	opts := []classifier.Option{
		classifier.WithVariant(c.Variant),
		classifier.WithOptimizer(c.Optimizer),
		classifier.WithElasticity(c.Elasticity),
		classifier.WithPartitions(c.Partitions),
		classifier.WithLearningRate(c.Eta),
		classifier.WithWeightDecay(c.Lambda),
		classifier.WithMomentum(c.Mu),
		classifier.WithDecayRates(c.Rho1, c.Rho2),
		classifier.WithMaxEpochs(c.Epochs),
		classifier.WithMaxStable(c.Stable),
		classifier.WithVerbosity(c.Verbosity),
		classifier.WithWorkers(c.Workers),
		classifier.WithSeed(c.Seed),
	}
	if len(validation) > 0 {
		opts = append(opts, classifier.WithValidation(validation))
	}

	return opts
}
