package risk

import (
	"context"
	"fmt"
	"strings"
)

const systemPrompt = "أنت محلل مخاطر لمشروعات تسمين الماشية. اكتب فقرة واحدة قصيرة باللغة العربية تلخص المخاطر والعائد المتوقع للمستثمر دون وعود بأرباح مضمونة."

// ChatCompleter is an OpenAI-compatible chat client.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ChatSummarizer struct {
	client ChatCompleter
}

func NewChatSummarizer(client ChatCompleter) *ChatSummarizer {
	return &ChatSummarizer{client: client}
}

func (s *ChatSummarizer) Summarize(ctx context.Context, brief Brief) (string, error) {
	text, err := s.client.Complete(ctx, systemPrompt, Prompt(brief))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}

func Prompt(brief Brief) string {
	insured := "غير مؤمن عليها"
	if brief.Insured {
		insured = "مؤمن عليها"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "نوع الماشية: %s\n", brief.AnimalType)
	fmt.Fprintf(&b, "الوزن الابتدائي: %.1f كجم\n", brief.InitialWeight)
	fmt.Fprintf(&b, "الوزن المستهدف: %.1f كجم\n", brief.TargetWeight)
	fmt.Fprintf(&b, "هدف التمويل: %s جنيه\n", brief.FundingGoal.StringFixed(2))
	fmt.Fprintf(&b, "التأمين: %s\n", insured)
	if description := strings.TrimSpace(brief.Description); description != "" {
		fmt.Fprintf(&b, "الوصف: %s\n", description)
	}
	return b.String()
}
