package pipeline

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextManager_DefaultSize(t *testing.T) {
	m := NewContextManager(0)
	for i := 0; i < 15; i++ {
		m.UpdateContext(map[string]any{"i": i})
	}
	assert.Equal(t, DefaultMaxContextSize, m.Len())
}

func TestContextManager_DropsOldest(t *testing.T) {
	m := NewContextManager(2)
	m.UpdateContext(map[string]any{"first": 1})
	m.UpdateContext(map[string]any{"second": 2})
	m.UpdateContext(map[string]any{"third": 3})

	state := m.State()
	assert.NotContains(t, state, "first")
	assert.Contains(t, state, "second")
	assert.Contains(t, state, "third")
}

func TestContextManager_GetRelevantContext(t *testing.T) {
	m := NewContextManager(10)
	m.UpdateContext(map[string]any{"topic": "Quarterly Budget", "owner": "finance"})
	m.UpdateContext(map[string]any{"topic": "garden", "season": "spring"})
	m.UpdateContext(map[string]any{"owner": "ops", "note": "budget freeze"})

	got := m.GetRelevantContext("BUDGET")
	assert.Equal(t, "ops", got["owner"], "later records override earlier ones")
	assert.Equal(t, "Quarterly Budget", got["topic"])
	assert.NotContains(t, got, "season")

	got = m.GetRelevantContext("spring unknown")
	assert.Equal(t, map[string]any{"topic": "garden", "season": "spring"}, got)

	assert.Empty(t, m.GetRelevantContext("nothing-matches"))
}

func TestContextManager_UpdateState(t *testing.T) {
	type summary struct {
		Title string `json:"title"`
	}

	m := NewContextManager(10)
	m.UpdateState(map[string]any{"raw": true})
	m.UpdateState(summary{Title: "Plan"})
	m.UpdateState("plain string")

	state := m.State()
	assert.Equal(t, true, state["raw"])
	assert.Equal(t, "Plan", state["title"])
	assert.Equal(t, "plain string", state["result"])
}

func TestContextManager_Concurrent(t *testing.T) {
	m := NewContextManager(5)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.UpdateContext(map[string]any{fmt.Sprintf("k%d", i): i})
			_ = m.GetRelevantContext("k")
		}()
	}
	wg.Wait()

	require.Equal(t, 5, m.Len())
}
