package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/mocks"
)

var finance = domain.Category{ID: "finance", Name: "Finance", Description: "money matters"}

func TestNewKeywordRule_RequiresKeywords(t *testing.T) {
	_, err := NewKeywordRule(finance, " ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestKeywordRule_Evaluate(t *testing.T) {
	rule, err := NewKeywordRule(finance, "invoice", "Budget", "revenue", "budget")
	require.NoError(t, err)
	assert.Equal(t, finance, rule.Category())

	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"no match", "a walk in the park", 0},
		{"one of three", "The BUDGET is tight", 1.0 / 3.0},
		{"repeats count once", "budget budget budget", 1.0 / 3.0},
		{"all", "invoice for revenue against budget", 1},
		{"bytes", []byte("invoice"), 1.0 / 3.0},
		{"empty", "", 0},
		{"processed content", domain.ProcessedContent{
			Content:  "quarterly numbers",
			Metadata: domain.DocumentMetadata{Title: "Revenue review", Tags: []string{"invoice"}},
		}, 2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rule.Evaluate(context.Background(), tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAIRule_Evaluate(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	opts := domain.RequestOptions{Temperature: 0}

	completer.EXPECT().
		ProcessRequest(gomock.Any(), gomock.Any(), opts).
		DoAndReturn(func(_ context.Context, prompt string, _ domain.RequestOptions) domain.AIResponse {
			assert.Contains(t, prompt, `"Finance"`)
			assert.Contains(t, prompt, "the ledger")
			return domain.AIResponse{Text: "Score: 0.82", Source: domain.SourceFresh}
		})

	rule := NewAIRule(finance, completer, opts)
	got, err := rule.Evaluate(context.Background(), "the ledger")
	require.NoError(t, err)
	assert.InDelta(t, 0.82, got, 1e-9)
}

func TestAIRule_FallbackScoresZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		ProcessRequest(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.NewFallbackResponse("p"))

	got, err := NewAIRule(finance, completer, domain.RequestOptions{}).Evaluate(context.Background(), "x")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseScore(t *testing.T) {
	assert.InDelta(t, 0.7, ParseScore("0.7"), 1e-9)
	assert.InDelta(t, 0.25, ParseScore("I'd say .25 overall"), 1e-9)
	assert.InDelta(t, 1.0, ParseScore("9"), 1e-9)
	assert.Zero(t, ParseScore("no idea"))
}

func TestFuncRule(t *testing.T) {
	boom := errors.New("boom")
	rule := FuncRule{
		Cat: finance,
		Fn: func(_ context.Context, input any) (float64, error) {
			if input == nil {
				return 0, boom
			}
			return 0.6, nil
		},
	}

	assert.Equal(t, finance, rule.Category())
	got, err := rule.Evaluate(context.Background(), "x")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got, 1e-9)

	_, err = rule.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "abc", Text("abc"))
	assert.Equal(t, `{"a":1}`, Text(map[string]int{"a": 1}))

	var nilContent *domain.ProcessedContent
	assert.Equal(t, "", Text(nilContent))

	doc := domain.ProcessedDocument{Content: "body", Metadata: domain.DocumentMetadata{Title: "T"}}
	assert.Equal(t, "T\nbody", Text(doc))
}
