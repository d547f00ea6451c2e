package models

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInsufficientSamples       = errors.New("insufficient samples for the determined folds")
	ErrInconsistentSampleLengths = errors.New("features or targets do not have the same number of samples")
	ErrNoLambdas                 = errors.New("no lambdas provided to select from")
)

type FoldDataset struct {
	TrainT []time.Time
	TrainY []float64

	TestT []time.Time
	TestY []float64
}

// TimeSeriesCVSplit generates rolling-origin folds where every fold
// trains on a prefix and validates on the records immediately after it.
// Records are never shuffled so no future information leaks into a
// training split.
func TimeSeriesCVSplit(t []time.Time, y []float64, nFold int) ([]FoldDataset, error) {
	nSamples := len(t)
	if len(y) != nSamples {
		return nil, ErrInconsistentSampleLengths
	}

	foldSamp := nSamples / (nFold + 1)
	if foldSamp == 0 {
		return nil, ErrInsufficientSamples
	}

	folds := make([]FoldDataset, nFold)
	for i := 0; i < nFold; i++ {
		folds[i] = FoldDataset{
			TrainT: t[:(i+1)*foldSamp],
			TrainY: y[:(i+1)*foldSamp],
			TestT:  t[(i+1)*foldSamp : (i+2)*foldSamp],
			TestY:  y[(i+1)*foldSamp : (i+2)*foldSamp],
		}
	}
	return folds, nil
}

// SelectLambda fits a lasso model per candidate lambda on the leading
// rows of the design matrix and scores each on the trailing validation
// rows, returning the lambda with the highest validation score. The
// split is temporal, the last fifth of rows validate. Candidate fits
// run concurrently.
func SelectLambda(x, y mat.Matrix, lambdas []float64, opt *LassoOptions) (float64, error) {
	if len(lambdas) == 0 {
		return 0, ErrNoLambdas
	}
	opt, err := opt.Validate()
	if err != nil {
		return 0, err
	}

	m, n := x.Dims()
	holdout := m / 5
	if m-holdout < n || holdout == 0 {
		return 0, ErrInsufficientSamples
	}

	xd := mat.DenseCopyOf(x)
	yd := mat.DenseCopyOf(y)
	trainX := xd.Slice(0, m-holdout, 0, n)
	trainY := yd.Slice(0, m-holdout, 0, 1)
	testX := xd.Slice(m-holdout, m, 0, n)
	testY := yd.Slice(m-holdout, m, 0, 1)

	scores := make([]float64, len(lambdas))
	valid := make([]bool, len(lambdas))

	var wg sync.WaitGroup
	for i, lambda := range lambdas {
		wg.Add(1)
		go func(i int, lambda float64) {
			defer wg.Done()

			lopt := *opt
			lopt.Lambda = lambda
			lr, err := NewLassoRegression(&lopt)
			if err != nil {
				slog.Warn("skipping lambda candidate", "lambda", lambda, "error", err.Error())
				return
			}
			if err := lr.Fit(trainX, trainY); err != nil {
				slog.Warn("unable to fit lambda candidate", "lambda", lambda, "error", err.Error())
				return
			}
			score, err := lr.Score(testX, testY)
			if err != nil {
				slog.Warn("unable to score lambda candidate", "lambda", lambda, "error", err.Error())
				return
			}
			scores[i] = score
			valid[i] = true
		}(i, lambda)
	}
	wg.Wait()

	best := -1
	for i := range lambdas {
		if !valid[i] {
			continue
		}
		if best == -1 || scores[i] > scores[best] {
			best = i
		}
	}
	if best == -1 {
		return 0, ErrInsufficientSamples
	}
	return lambdas[best], nil
}
