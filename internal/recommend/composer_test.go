package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	text  string
	err   error
	calls int
	last  Facts
}

func (s *stubSummarizer) Summarize(_ context.Context, facts Facts) (string, error) {
	s.calls++
	s.last = facts
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func sampleFacts() Facts {
	days := 2.5
	stockout := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	return Facts{
		ItemName:      "Shampoo 300ml",
		OnHand:        30,
		DailyVelocity: 12,
		DaysRemaining: &days,
		StockoutDate:  &stockout,
		Exposure:      decimal.NewFromFloat(750),
	}
}

func TestComposeDelegatesPhrasing(t *testing.T) {
	stub := &stubSummarizer{text: "Reponha o estoque de Shampoo 300ml nos próximos dias."}
	composer := NewComposer(stub)

	got := composer.Compose(context.Background(), sampleFacts())

	assert.Equal(t, stub.text, got)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "Shampoo 300ml", stub.last.ItemName)
}

func TestComposeFallsBackOnError(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("connection refused")}
	composer := NewComposer(stub)
	facts := sampleFacts()

	first := composer.Compose(context.Background(), facts)
	second := composer.Compose(context.Background(), facts)

	require.NotEmpty(t, first)
	// fallback is deterministic
	assert.Equal(t, first, second)
	assert.Equal(t, Fallback(facts), first)
}

func TestComposeFallsBackOnEmptyText(t *testing.T) {
	stub := &stubSummarizer{text: "   "}
	composer := NewComposer(stub)
	facts := sampleFacts()

	got := composer.Compose(context.Background(), facts)

	assert.Equal(t, Fallback(facts), got)
}

func TestComposeNoHistorySkipsCollaborator(t *testing.T) {
	stub := &stubSummarizer{text: "should not be used"}
	composer := NewComposer(stub)

	got := composer.Compose(context.Background(), Facts{ItemName: "Caneca", OnHand: 8})

	assert.Equal(t, NoHistoryMessage("Caneca"), got)
	assert.Zero(t, stub.calls)
}

func TestComposeNilSummarizerUsesFallback(t *testing.T) {
	composer := NewComposer(nil)
	facts := sampleFacts()

	assert.Equal(t, Fallback(facts), composer.Compose(context.Background(), facts))
}

func TestFallbackContents(t *testing.T) {
	facts := sampleFacts()

	text := Fallback(facts)

	assert.Contains(t, text, "Shampoo 300ml")
	assert.Contains(t, text, "2.5 dias")
	assert.Contains(t, text, "12/03/2026")
	assert.Contains(t, text, "R$ 750.00")
}

func TestFallbackOmitsExposureWhenZero(t *testing.T) {
	facts := sampleFacts()
	facts.Exposure = decimal.Zero

	text := Fallback(facts)

	require.NotEmpty(t, text)
	assert.NotContains(t, text, "Perda estimada")
}
