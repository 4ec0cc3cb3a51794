package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sensemaker/domain/hypothesis"
	"sensemaker/internal/testkit"
)

func TestApplyThreshold(t *testing.T) {
	// At or above threshold: weighted as-is.
	assert.InDelta(t, 1.4, applyThreshold(0.7, 0.5, 2), 1e-9)
	assert.InDelta(t, 0.5, applyThreshold(0.5, 0.5, 1), 1e-9)
	// Below threshold: pushed down by the shortfall, not clamped.
	assert.InDelta(t, -0.6, applyThreshold(0.2, 0.5, 2), 1e-9)
	assert.InDelta(t, -0.3, applyThreshold(0.0, 0.3, 1), 1e-9)
}

func TestScoreSameObjectSumsBothChannels(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := testkit.SameObjectHyp(1, testkit.Obj("o1", "dog", img0), testkit.Obj("o2", "dog", img1), 0.8, 0.7)

	model := hypothesis.NewScoreModel()
	NewAggregator(testkit.Params(0)).Score(testkit.StoreOf(h), model)

	assert.InDelta(t, 1.5, model.Individual[1], 1e-9)
}

func TestScoreSameObjectThresholdPenalty(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := testkit.SameObjectHyp(1, testkit.Obj("o1", "dog", img0), testkit.Obj("o2", "dog", img1), 0.2, 0.9)

	params := testkit.Params(0)
	params.VisualSimThresh = 0.5

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(h), model)

	// Visual channel falls short: (0.2-0.5) + 0.9.
	assert.InDelta(t, 0.6, model.Individual[1], 1e-9)
}

func TestScoreCausalPathEvidence(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := testkit.CausalHyp(1,
		testkit.Act("a1", "chase", img0, 0),
		testkit.Act("a2", "flee", img1, 0),
		hypothesis.DirectionForward, 0.4)
	h.Causal.MultiHopEvs = []hypothesis.Evidence{{ID: 7, Score: 0.3, Direction: hypothesis.DirectionForward}}

	model := hypothesis.NewScoreModel()
	NewAggregator(testkit.Params(0)).Score(testkit.StoreOf(h), model)

	assert.InDelta(t, 0.7, model.Individual[1], 1e-9)
}

func TestEmptyCausalEvidenceScoresExactlyZero(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := &hypothesis.Hypothesis{
		ID:   1,
		Kind: hypothesis.KindCausalSequence,
		Causal: &hypothesis.CausalSequencePayload{
			SourceAction: testkit.Act("a1", "chase", img0, 0),
			TargetAction: testkit.Act("a2", "flee", img1, 0),
			Direction:    hypothesis.DirectionForward,
		},
	}

	params := testkit.Params(0)
	params.CausalPathThresh = 0.3

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(h), model)

	// No evidence contributes zero; the threshold must not manufacture
	// a -0.3 penalty out of an empty sum.
	assert.Equal(t, 0.0, model.Individual[1])
}

func TestAffectCurvePerfectMatch(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := testkit.CausalHyp(1,
		testkit.Act("a1", "smile", img0, 0),
		testkit.Act("a2", "laugh", img1, 1),
		hypothesis.DirectionForward, 0)
	h.Causal.SingleHopEvs = nil

	params := testkit.Params(0)
	params.AffectCurve = []float64{0, 1}

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(h), model)

	// Correct direction, both endpoints match, equal magnitude.
	assert.InDelta(t, 1.0, model.Individual[1], 1e-9)
}

func TestAffectCurvePartialMatch(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := testkit.CausalHyp(1,
		testkit.Act("a1", "smile", img0, 0.2),
		testkit.Act("a2", "laugh", img1, 0.5),
		hypothesis.DirectionForward, 0)
	h.Causal.SingleHopEvs = nil

	params := testkit.Params(0)
	params.AffectCurve = []float64{0, 1}

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(h), model)

	// Direction correct, nothing else lines up.
	assert.InDelta(t, 0.25, model.Individual[1], 1e-9)
}

func TestAffectCurveWrongDirectionScoresZero(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	h := testkit.CausalHyp(1,
		testkit.Act("a1", "smile", img0, 0.5),
		testkit.Act("a2", "frown", img1, 0.2),
		hypothesis.DirectionForward, 0)
	h.Causal.SingleHopEvs = nil

	params := testkit.Params(0)
	params.AffectCurve = []float64{0, 1}

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(h), model)

	assert.Equal(t, 0.0, model.Individual[1])
}

func TestAffectCurveSkippedWhenIndexOutOfRange(t *testing.T) {
	img0, img5 := testkit.Img(0), testkit.Img(5)
	h := testkit.CausalHyp(1,
		testkit.Act("a1", "smile", img0, 0),
		testkit.Act("a2", "laugh", img5, 1),
		hypothesis.DirectionForward, 0)
	h.Causal.SingleHopEvs = nil

	params := testkit.Params(0)
	params.AffectCurve = []float64{0, 1}
	params.AffectCurveThresh = 0.5

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(h), model)

	// Image 5 falls outside the curve: the channel is skipped entirely,
	// threshold included.
	assert.Equal(t, 0.0, model.Individual[1])
}

func TestContinuityEvidenceScoresThePair(t *testing.T) {
	img0, img1 := testkit.Img(0), testkit.Img(1)
	join := testkit.SameObjectHyp(1, testkit.Obj("o1", "dog", img0), testkit.Obj("o2", "dog", img1), 0.9, 0.8)
	h := testkit.WithContinuity(testkit.CausalHyp(2,
		testkit.Act("a1", "chase", img0, 0),
		testkit.Act("a2", "flee", img1, 0),
		hypothesis.DirectionForward, 0.4), 1, 0.6)

	params := testkit.Params(0)
	params.ContinuityWeight = 2

	model := hypothesis.NewScoreModel()
	NewAggregator(params).Score(testkit.StoreOf(join, h), model)

	assert.InDelta(t, 1.2, model.Paired[hypothesis.PairOf(1, 2)], 1e-9)
	assert.InDelta(t, 0.4, model.Individual[2], 1e-9)
}

func TestUnscoredKindsAreStillRegistered(t *testing.T) {
	h := &hypothesis.Hypothesis{ID: 3, Kind: hypothesis.KindNewObject}

	model := hypothesis.NewScoreModel()
	NewAggregator(testkit.Params(0)).Score(testkit.StoreOf(h), model)

	score, ok := model.Individual[3]
	assert.True(t, ok)
	assert.Equal(t, 0.0, score)
}
