package denguecast

import (
	"errors"
	"fmt"

	"github.com/epilab-sg/denguecast/timedataset"
)

var (
	ErrNonPositiveHoldout = errors.New("holdout must be at least one period")
	ErrHoldoutTooLarge    = errors.New("holdout leaves no training data")
)

// HoldoutEvaluate fits a fresh forecaster on all but the trailing
// holdout periods and scores the projection against the withheld
// observations. The split is temporal, never random, so the model is
// only ever judged on weeks after its training range. The training
// window is deep copied so the evaluation cannot observe later
// mutation of the caller's dataset.
func HoldoutEvaluate(d *timedataset.Dataset, holdout int, opt *Options) (*Scores, error) {
	if d == nil || d.Len() == 0 {
		return nil, ErrEmptyTimeDataset
	}
	if holdout <= 0 {
		return nil, fmt.Errorf("got %d, %w", holdout, ErrNonPositiveHoldout)
	}
	if holdout >= d.Len() {
		return nil, fmt.Errorf("%d holdout of %d records, %w", holdout, d.Len(), ErrHoldoutTooLarge)
	}

	train, err := d.Slice(0, d.Len()-holdout)
	if err != nil {
		return nil, err
	}

	f, err := New(opt)
	if err != nil {
		return nil, err
	}
	if err := f.Fit(train); err != nil {
		return nil, fmt.Errorf("unable to fit on holdout training window, %w", err)
	}

	res, err := f.Forecast(holdout)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast holdout window, %w", err)
	}

	predicted := res.Forecast[res.HorizonStart:]
	actual := d.Y[d.Len()-holdout:]
	return NewScores(predicted, actual)
}
