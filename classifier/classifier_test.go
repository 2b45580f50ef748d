package classifier_test

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/esmr/classifier"
	"github.com/katalvlaran/esmr/monitor"
	"github.com/katalvlaran/esmr/optimizer"
	"github.com/katalvlaran/esmr/series"
)

// signedSet builds a separable two-class set: label 0 holds positive
// sequences, label 1 negative ones, lengths 3..5.
func signedSet(seed int64, perClass int) series.Set {
	rng := rand.New(rand.NewSource(seed))
	var set series.Set
	for i := 0; i < perClass; i++ {
		for label, sign := range []float64{1, -1} {
			v := make([]float64, 3+rng.Intn(3))
			for k := range v {
				v[k] = sign * (0.5 + rng.Float64())
			}
			set = append(set, series.NewSequence(v, label))
		}
	}

	return set
}

func equalTemplates(t *testing.T, a, b [][]*mat.Dense) {
	t.Helper()
	require.Len(t, b, len(a))
	for j := range a {
		require.Len(t, b[j], len(a[j]))
		for p := range a[j] {
			assert.True(t, mat.Equal(a[j][p], b[j][p]), "class %d partition %d", j, p)
		}
	}
}

// TestFit_TwoPoints: [1,1,1] vs [-1,-1,-1] with e = 1 is learned exactly.
func TestFit_TwoPoints(t *testing.T) {
	set := series.Set{
		series.NewSequence([]float64{1, 1, 1}, 0),
		series.NewSequence([]float64{-1, -1, -1}, 1),
	}
	c, err := classifier.New(
		classifier.WithElasticity(1),
		classifier.WithOptimizer(optimizer.SGD),
		classifier.WithLearningRate(0.1),
		classifier.WithMaxEpochs(100),
	)
	require.NoError(t, err)

	sum, err := c.Fit(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sum.MaxAcc)
	assert.Equal(t, monitor.Converged, sum.State)
	assert.Equal(t, 0, c.Predict([]float64{1, 1, 1}))
	assert.Equal(t, 1, c.Predict([]float64{-1, -1, -1}))
	assert.Equal(t, 1.0, c.Score(set))
	assert.LessOrEqual(t, sum.Epochs, 100)
}

func TestFit_InvalidDataset(t *testing.T) {
	c, err := classifier.New()
	require.NoError(t, err)

	_, err = c.Fit(context.Background(), series.Set{})
	assert.ErrorIs(t, err, classifier.ErrInvalidDataset)
	assert.ErrorIs(t, err, series.ErrEmptyDataset)

	_, err = c.Fit(context.Background(), series.Set{series.NewSequence([]float64{1}, 0)})
	assert.ErrorIs(t, err, series.ErrSingleClass)
}

// FitSuite trains every variant with every optimizer on the signed set.
type FitSuite struct {
	suite.Suite
	train series.Set
	test  series.Set
}

func (s *FitSuite) SetupSuite() {
	s.train = signedSet(1, 10)
	s.test = signedSet(2, 10)
}

func (s *FitSuite) TestAllVariantsAndOptimizers() {
	etas := map[optimizer.Kind]float64{
		optimizer.SGD:      0.05,
		optimizer.Momentum: 0.05,
		optimizer.AdaGrad:  0.1,
		optimizer.AdaDelta: 0.05,
		optimizer.Adam:     0.05,
	}
	for _, v := range []classifier.Variant{classifier.ElasticSum, classifier.ElasticMax, classifier.MinMax} {
		for k, eta := range etas {
			c, sum, err := classifier.FitWithRestarts(context.Background(), s.train, 3,
				classifier.WithVariant(v),
				classifier.WithOptimizer(k),
				classifier.WithLearningRate(eta),
				classifier.WithElasticity(2),
				classifier.WithPartitions(2),
				classifier.WithMaxEpochs(200),
				classifier.WithSeed(17),
			)
			s.Require().NoError(err, "%s/%s", v, k)
			s.False(sum.State.Retry(), "%s/%s ended %s", v, k, sum.State)
			s.GreaterOrEqual(c.Score(s.test), 0.9, "%s/%s", v, k)
		}
	}
}

func (s *FitSuite) TestShapes() {
	c, err := classifier.New(
		classifier.WithVariant(classifier.MinMax),
		classifier.WithPartitions(3),
		classifier.WithElasticity(4),
		classifier.WithMaxEpochs(2),
	)
	s.Require().NoError(err)
	_, err = c.Fit(context.Background(), s.train)
	s.Require().NoError(err)

	tpl := c.Templates()
	s.Len(tpl, 2)
	s.Equal(2, c.Classes())
	for _, parts := range tpl {
		s.Len(parts, 3)
		for _, w := range parts {
			r, e := w.Dims()
			s.Equal(s.train.MaxLength(), r)
			s.Equal(4, e)
		}
	}
	s.Nil(c.Bias(), "min-max learns no bias")
}

func (s *FitSuite) TestBiasOverride() {
	c, err := classifier.New(classifier.WithVariant(classifier.ElasticMax), classifier.WithMaxEpochs(1))
	s.Require().NoError(err)
	_, err = c.Fit(context.Background(), s.train)
	s.Require().NoError(err)
	s.Nil(c.Bias())

	c, err = classifier.New(classifier.WithVariant(classifier.ElasticMax), classifier.WithBias(true), classifier.WithMaxEpochs(1))
	s.Require().NoError(err)
	_, err = c.Fit(context.Background(), s.train)
	s.Require().NoError(err)
	s.Len(c.Bias(), 2)

	c, err = classifier.New(classifier.WithBias(false), classifier.WithMaxEpochs(1))
	s.Require().NoError(err)
	_, err = c.Fit(context.Background(), s.train)
	s.Require().NoError(err)
	s.Nil(c.Bias())
}

// TestDeterminism: equal seeds train identical models; another seed does not.
func (s *FitSuite) TestDeterminism() {
	fit := func(seed int64) (*classifier.Classifier, classifier.Summary) {
		c, err := classifier.New(classifier.WithSeed(seed), classifier.WithMaxEpochs(20), classifier.WithLearningRate(0.01))
		s.Require().NoError(err)
		sum, err := c.Fit(context.Background(), s.train)
		s.Require().NoError(err)
		return c, sum
	}
	a, sa := fit(42)
	b, sb := fit(42)
	s.Equal(sa, sb)
	equalTemplates(s.T(), a.Templates(), b.Templates())
	s.Equal(a.Bias(), b.Bias())

	c, _ := fit(43)
	s.False(mat.Equal(a.Templates()[0][0], c.Templates()[0][0]))

	// Refitting the same classifier re-seeds the stream.
	sa2, err := a.Fit(context.Background(), s.train)
	s.Require().NoError(err)
	s.Equal(sa, sa2)
	equalTemplates(s.T(), b.Templates(), a.Templates())
}

// TestParallelEvaluation: the worker count never changes results.
func (s *FitSuite) TestParallelEvaluation() {
	fit := func(workers int) (*classifier.Classifier, classifier.Summary) {
		c, err := classifier.New(classifier.WithWorkers(workers), classifier.WithMaxEpochs(15), classifier.WithLearningRate(0.01))
		s.Require().NoError(err)
		sum, err := c.Fit(context.Background(), s.train)
		s.Require().NoError(err)
		return c, sum
	}
	seq, ss := fit(1)
	par, sp := fit(4)
	s.Equal(ss, sp)
	equalTemplates(s.T(), seq.Templates(), par.Templates())

	accS, lossS := seq.Evaluate(s.test)
	accP, lossP := par.Evaluate(s.test)
	s.Equal(accS, accP)
	s.Equal(lossS, lossP)
}

func (s *FitSuite) TestTemplatesAreCopies() {
	c, err := classifier.New(classifier.WithMaxEpochs(1))
	s.Require().NoError(err)
	_, err = c.Fit(context.Background(), s.train)
	s.Require().NoError(err)

	tpl := c.Templates()
	tpl[0][0].Set(0, 0, 1e9)
	s.NotEqual(1e9, c.Templates()[0][0].At(0, 0))

	b := c.Bias()
	b[0] = 1e9
	s.NotEqual(1e9, c.Bias()[0])
}

func (s *FitSuite) TestProbabilitiesAndLongInput() {
	c, err := classifier.New(classifier.WithMaxEpochs(50), classifier.WithLearningRate(0.05))
	s.Require().NoError(err)
	_, err = c.Fit(context.Background(), s.train)
	s.Require().NoError(err)

	p := c.Probabilities([]float64{1, 1, 1})
	s.Len(p, 2)
	s.InDelta(1.0, p[0]+p[1], 1e-12)

	// Longer than any training sequence: aligned against zero-extended templates.
	long := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	s.Len(c.Scores(long), 2)
	s.Equal(0, c.Predict(long))
}

// TestHookAndValidation: OnEpoch sees every epoch; its error stops training.
func (s *FitSuite) TestHookAndValidation() {
	var reports []classifier.EpochReport
	c, err := classifier.New(
		classifier.WithMaxEpochs(5),
		classifier.WithMaxStable(1000),
		classifier.WithLearningRate(1e-4),
		classifier.WithValidation(s.test),
		classifier.WithOnEpoch(func(r classifier.EpochReport) error {
			reports = append(reports, r)
			return nil
		}),
	)
	s.Require().NoError(err)
	sum, err := c.Fit(context.Background(), s.train)
	s.Require().NoError(err)
	s.Len(reports, sum.Epochs)
	for i, r := range reports {
		s.Equal(i+1, r.Epoch)
		s.True(r.HasVal)
	}
	s.True(sum.HasVal)

	errStop := errors.New("stop")
	c, err = classifier.New(classifier.WithOnEpoch(func(r classifier.EpochReport) error {
		if r.Epoch == 1 {
			return errStop
		}
		return nil
	}))
	s.Require().NoError(err)
	sum, err = c.Fit(context.Background(), s.train)
	s.ErrorIs(err, errStop)
	s.Equal(1, sum.Epochs)
	s.NotNil(c.Templates(), "best snapshot restored")
}

func (s *FitSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := classifier.New()
	s.Require().NoError(err)
	sum, err := c.Fit(ctx, s.train)
	s.ErrorIs(err, context.Canceled)
	s.Equal(0, sum.Epochs)
	s.NotNil(c.Templates())
}

func (s *FitSuite) TestVerboseLog() {
	var buf bytes.Buffer
	c, err := classifier.New(
		classifier.WithMaxEpochs(3),
		classifier.WithMaxStable(1000),
		classifier.WithLearningRate(1e-4),
		classifier.WithVerbosity(2),
		classifier.WithLogWriter(&buf),
	)
	s.Require().NoError(err)
	sum, err := c.Fit(context.Background(), s.train)
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Len(lines, sum.Epochs)
	s.True(strings.HasPrefix(lines[0], "[ESMR]     1  loss = "))
	s.Contains(lines[0], "train = ")
	s.Regexp(`  \[[a-z]+\]$`, lines[0], "state suffix at verbosity 2")
}

func TestFitSuite(t *testing.T) {
	suite.Run(t, new(FitSuite))
}

func TestUnfitted(t *testing.T) {
	c, err := classifier.New()
	require.NoError(t, err)
	assert.Equal(t, -1, c.Predict([]float64{1, 2}))
	assert.Empty(t, c.Scores([]float64{1}))
	assert.Nil(t, c.Templates())
	assert.Nil(t, c.Bias())
	acc, loss := c.Evaluate(series.Set{})
	assert.Zero(t, acc)
	assert.Zero(t, loss)
}
