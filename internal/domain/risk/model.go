package risk

import (
	"context"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"

	"github.com/shopspring/decimal"
)

// FallbackText is served whenever no generated summary is available.
const FallbackText = "تعذر إنشاء تحليل المخاطر في الوقت الحالي. تعتمد عوائد دورات التسمين على معدل نمو الماشية وسعر البيع النهائي، وقد تتأثر بالأمراض وتقلبات أسعار الأعلاف والسوق. يرجى مراجعة تفاصيل الدورة والتأمين قبل اتخاذ قرار الاستثمار."

// Brief is the part of a cycle a summarizer is allowed to see.
type Brief struct {
	AnimalType    string
	InitialWeight float64
	TargetWeight  float64
	FundingGoal   decimal.Decimal
	Description   string
	Insured       bool
}

func BriefFromCycle(cycle cyclesdomain.Cycle) Brief {
	return Brief{
		AnimalType:    cycle.AnimalType,
		InitialWeight: cycle.InitialWeight,
		TargetWeight:  cycle.TargetWeight,
		FundingGoal:   cycle.FundingGoal,
		Description:   cycle.Description,
		Insured:       cycle.Insured,
	}
}

type Summarizer interface {
	Summarize(ctx context.Context, brief Brief) (string, error)
}

type Summary struct {
	CycleID  string
	Text     string
	Fallback bool
	Cached   bool
}

const (
	OutcomeGenerated = "generated"
	OutcomeCached    = "cached"
	OutcomeFallback  = "fallback"
)

// Observer receives one outcome per Summary call.
type Observer interface {
	ObserveSummary(outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveSummary(string) {}
