package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensemaker/domain/hypothesis"
	"sensemaker/internal/qubo"
	"sensemaker/internal/testkit"
)

func TestExtractPlotPicksHighestScoringStep(t *testing.T) {
	img0, img1, img2 := testkit.Img(0), testkit.Img(1), testkit.Img(2)

	// A same-object hypothesis joins the dog across images 0 and 1.
	join := testkit.SameObjectHyp(1, testkit.Obj("o1", "dog", img0), testkit.Obj("o2", "dog", img1), 0.9, 0.8)

	// Two candidate steps for the first pair; the continuity-backed one
	// scores lower individually but has the joining hypothesis.
	strong := testkit.WithContinuity(testkit.CausalHyp(2,
		testkit.Act("a1", "chase", img0, 0),
		testkit.Act("a2", "flee", img1, 0),
		hypothesis.DirectionForward, 0.9), 1, 0.6)
	weak := testkit.CausalHyp(3,
		testkit.Act("a3", "bark", img0, 0),
		testkit.Act("a4", "hide", img1, 0),
		hypothesis.DirectionForward, 0.2)

	// One step for the second pair.
	second := testkit.CausalHyp(4,
		testkit.Act("a5", "flee", img1, 0),
		testkit.Act("a6", "rest", img2, 0),
		hypothesis.DirectionForward, 0.5)

	store := testkit.StoreOf(join, strong, weak, second)

	result, err := testEvaluator().Evaluate(context.Background(), store, []hypothesis.ParameterSet{testkit.Params(0)})
	require.NoError(t, err)

	plot, ok := ExtractPlot(store, result.Sets[0])
	require.True(t, ok)

	assert.Equal(t, []hypothesis.HypID{2}, plot.Steps[0])
	assert.Equal(t, []hypothesis.HypID{4}, plot.Steps[1])
	assert.Equal(t, []hypothesis.HypID{1}, plot.Recurring[0])
	assert.Empty(t, plot.Recurring[1])
}

func TestExtractPlotSkipsNonAdjacentPairs(t *testing.T) {
	img0, img2 := testkit.Img(0), testkit.Img(2)
	skip := testkit.CausalHyp(1,
		testkit.Act("a1", "chase", img0, 0),
		testkit.Act("a2", "rest", img2, 0),
		hypothesis.DirectionForward, 0.8)
	store := testkit.StoreOf(skip)

	result, err := testEvaluator().Evaluate(context.Background(), store, []hypothesis.ParameterSet{testkit.Params(0)})
	require.NoError(t, err)

	plot, ok := ExtractPlot(store, result.Sets[0])
	require.True(t, ok)
	assert.Empty(t, plot.Steps)
}

func TestExtractPlotTiesKeepBoth(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h1 := testkit.CausalHyp(1,
		testkit.Act("a1", "chase", img0, 0),
		testkit.Act("a2", "flee", img1, 0),
		hypothesis.DirectionForward, 0.5)
	h2 := testkit.CausalHyp(2,
		testkit.Act("a3", "bark", img0, 0),
		testkit.Act("a4", "hide", img1, 0),
		hypothesis.DirectionForward, 0.5)
	store := testkit.StoreOf(h1, h2)

	result, err := testEvaluator().Evaluate(context.Background(), store, []hypothesis.ParameterSet{testkit.Params(0)})
	require.NoError(t, err)

	plot, ok := ExtractPlot(store, result.Sets[0])
	require.True(t, ok)
	assert.ElementsMatch(t, []hypothesis.HypID{1, 2}, plot.Steps[0])
}

func TestExtractPlotIgnoresPayloadlessCausalHypothesis(t *testing.T) {
	bare := &hypothesis.Hypothesis{ID: 1, Kind: hypothesis.KindCausalSequence}
	store := testkit.StoreOf(bare)

	model := hypothesis.NewScoreModel()
	model.AddIndividual(1, 0)
	set := &hypothesis.SolutionSet{
		Parameters: testkit.Params(0),
		Solutions: []hypothesis.Solution{{
			Parameters: testkit.Params(0),
			Accepted:   map[hypothesis.HypID]struct{}{1: {}},
		}},
		Scores: model,
	}

	plot, ok := ExtractPlot(store, set)
	require.True(t, ok)
	assert.Empty(t, plot.Steps)
	assert.Empty(t, plot.Recurring)
}

func TestAssembleSolutionsExpandsSurrogates(t *testing.T) {
	model := hypothesis.NewScoreModel()
	model.AddIndividual(1, 0)
	model.AddIndividual(2, 0)
	model.AddIndividual(3, 0)
	s := model.NewSurrogate(1, 2)

	samples := []qubo.Sample{
		{Assignment: map[hypothesis.HypID]bool{s: true, 3: true, 1: false, 2: false}, Energy: -1},
		{Assignment: map[hypothesis.HypID]bool{s: false, 3: true}, Energy: 0},
	}
	sols := assembleSolutions(samples, model, testkit.Params(0))

	require.Len(t, sols, 2)
	assert.Equal(t, 0, sols[0].ID)
	assert.Equal(t, []hypothesis.HypID{1, 2, 3}, sols[0].AcceptedIDs())
	assert.Equal(t, -1.0, sols[0].Energy)
	assert.Equal(t, []hypothesis.HypID{3}, sols[1].AcceptedIDs())
}
