package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAIRequest(t *testing.T) {
	before := testutil.ToFloat64(aiRequestsTotal.WithLabelValues("cached"))

	RecordAIRequest("cached")

	assert.Equal(t, before+1, testutil.ToFloat64(aiRequestsTotal.WithLabelValues("cached")))
}

func TestRecordProcessing_Outcome(t *testing.T) {
	okBefore := testutil.ToFloat64(contentProcessedTotal.WithLabelValues("text", OutcomeSuccess))
	errBefore := testutil.ToFloat64(contentProcessedTotal.WithLabelValues("text", OutcomeError))

	RecordProcessing("text", nil, time.Millisecond)
	RecordProcessing("text", errors.New("boom"), time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(contentProcessedTotal.WithLabelValues("text", OutcomeSuccess)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(contentProcessedTotal.WithLabelValues("text", OutcomeError)))
}

func TestRecordWorkflowAction(t *testing.T) {
	before := testutil.ToFloat64(workflowActionsTotal.WithLabelValues("tag", OutcomeSuccess))

	RecordWorkflowAction("tag", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(workflowActionsTotal.WithLabelValues("tag", OutcomeSuccess)))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, outcome(nil))
	assert.Equal(t, OutcomeError, outcome(errors.New("x")))
}
