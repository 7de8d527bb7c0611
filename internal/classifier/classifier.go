// internal/classifier/classifier.go
package classifier

import (
	"sort"

	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// Top-quartile membership uses a strict comparison against the
	// fractional index: for small cohorts this admits fewer items than a
	// rounded quartile would.
	topQuartileFraction = 0.25

	lowProfitFactor = 0.5
	lowMarginPct    = 10.0
	shadowMarginPct = 15.0
)

// Aggregate reduces ledger entries into per-item performance figures.
// Items appear in first-seen entry order, which later acts as the rank
// tie-break. Revenue and profit accumulate over every entry; quantidade only
// counts units sold.
func Aggregate(entries []domain.ProfitLedgerEntry) []domain.ItemPerformance {
	var (
		order []int64
		byID  = make(map[int64]*domain.ItemPerformance)
	)

	for _, e := range entries {
		perf, ok := byID[e.ItemID]
		if !ok {
			perf = &domain.ItemPerformance{ItemID: e.ItemID, Name: e.ItemName}
			byID[e.ItemID] = perf
			order = append(order, e.ItemID)
		}

		perf.Faturamento = perf.Faturamento.Add(e.Revenue)
		perf.Lucro = perf.Lucro.Add(e.Profit)
		if e.Kind == domain.LedgerSale {
			perf.Quantidade += e.Quantity
		}
	}

	items := make([]domain.ItemPerformance, 0, len(order))
	for _, id := range order {
		perf := byID[id]
		if !perf.Faturamento.IsZero() {
			perf.Margem = perf.Lucro.Div(perf.Faturamento).InexactFloat64() * 100
		}
		if perf.Quantidade > 0 {
			perf.TicketMedio = perf.Faturamento.InexactFloat64() / perf.Quantidade
		}
		items = append(items, *perf)
	}
	return items
}

// Classify assigns each item one of the four performance quadrants. Ranking
// is relative to the whole cohort, so the function operates on the full
// aggregated set at once. Deterministic: the same input always yields the
// same labels.
func Classify(items []domain.ItemPerformance) []domain.ItemPerformance {
	n := len(items)
	if n == 0 {
		return items
	}

	totalLucro := decimal.Zero
	for _, it := range items {
		totalLucro = totalLucro.Add(it.Lucro)
	}
	avgLucro := totalLucro.Div(decimal.NewFromInt(int64(n)))

	lucroRank := rankDescending(n, func(a, b int) bool {
		return items[a].Lucro.Cmp(items[b].Lucro) > 0
	})
	quantidadeRank := rankDescending(n, func(a, b int) bool {
		return items[a].Quantidade > items[b].Quantidade
	})

	topCut := float64(n) * topQuartileFraction
	lowProfitCut := avgLucro.Mul(decimal.NewFromFloat(lowProfitFactor))

	out := make([]domain.ItemPerformance, n)
	for i, it := range items {
		topLucro := float64(lucroRank[i]) < topCut
		topQuantidade := float64(quantidadeRank[i]) < topCut

		// First matching rule wins: the rules are ordered by priority,
		// not evaluated independently.
		switch {
		case topLucro && topQuantidade:
			it.Quadrant = domain.QuadrantEstrela
		case it.Lucro.IsNegative(),
			it.Lucro.Cmp(lowProfitCut) < 0 && it.Margem < lowMarginPct:
			it.Quadrant = domain.QuadrantProblematico
		// Revenue measured against the cohort's profit average: observed
		// behavior of the original rule, kept until stakeholders decide
		// otherwise.
		case it.Faturamento.Cmp(avgLucro) > 0 && it.Margem < shadowMarginPct:
			it.Quadrant = domain.QuadrantSombra
		default:
			it.Quadrant = domain.QuadrantEstavel
		}

		it.Color = it.Quadrant.Color()
		out[i] = it
	}

	return out
}

// rankDescending returns, for each input index, its position in the
// descending order defined by less. Equal items keep input order, so the
// first-seen item takes the lower rank.
func rankDescending(n int, less func(a, b int) bool) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(order[a], order[b])
	})

	ranks := make([]int, n)
	for pos, idx := range order {
		ranks[idx] = pos
	}
	return ranks
}
