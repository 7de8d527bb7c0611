// internal/recommend/composer.go
package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Facts carries the pre-computed numbers of one item's forecast. The
// collaborator is only asked to phrase them, never to compute anything.
type Facts struct {
	ItemName      string
	OnHand        float64
	DailyVelocity float64
	DaysRemaining *float64
	StockoutDate  *time.Time
	Exposure      decimal.Decimal
}

// Summarizer turns forecast facts into a human-readable recommendation.
type Summarizer interface {
	Summarize(ctx context.Context, facts Facts) (string, error)
}

// Composer produces the recommendation text for a forecast record. Phrasing
// is delegated to the summarizer; any failure falls back to a deterministic
// template so a record never carries empty text.
type Composer struct {
	summarizer Summarizer
}

func NewComposer(summarizer Summarizer) *Composer {
	return &Composer{summarizer: summarizer}
}

// Compose returns non-empty recommendation text for the given facts.
func (c *Composer) Compose(ctx context.Context, facts Facts) string {
	// Zero outbound history: fixed message, no external call.
	if facts.DailyVelocity == 0 {
		return NoHistoryMessage(facts.ItemName)
	}

	if c.summarizer == nil {
		return Fallback(facts)
	}

	text, err := c.summarizer.Summarize(ctx, facts)
	if err != nil {
		log.Warn().Err(err).Str("item", facts.ItemName).Msg("completion service failed, using fallback recommendation")
		return Fallback(facts)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn().Str("item", facts.ItemName).Msg("completion service returned empty text, using fallback recommendation")
		return Fallback(facts)
	}
	return text
}

// NoHistoryMessage is the fixed recommendation for items without any
// recorded outbound movement.
func NoHistoryMessage(itemName string) string {
	return fmt.Sprintf("Produto %s: sem histórico de vendas registrado. Registre as saídas de estoque para habilitar a previsão de esgotamento.", itemName)
}

// Fallback builds the deterministic templated recommendation from the same
// facts the completion service receives.
func Fallback(facts Facts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produto %s: estoque atual de %s unidades, venda média de %s unidades/dia.",
		facts.ItemName, formatQty(facts.OnHand), formatQty(facts.DailyVelocity))

	if facts.DaysRemaining != nil && facts.StockoutDate != nil {
		fmt.Fprintf(&b, " Previsão de esgotamento em %s dias (%s).",
			formatQty(*facts.DaysRemaining), facts.StockoutDate.Format("02/01/2006"))
	}

	if facts.Exposure.IsPositive() {
		fmt.Fprintf(&b, " Perda estimada de R$ %s em vendas não atendidas caso o estoque não seja reposto.",
			facts.Exposure.StringFixed(2))
	}

	return b.String()
}

func formatQty(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
