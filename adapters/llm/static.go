package llm

import (
	"context"

	"github.com/muadel/muadel/ports"
)

// Feature names understood by the assistant and the completion proxy.
const (
	FeatureSummary     = "summary"
	FeatureCoverLetter = "coverLetter"
	FeatureJobMatch    = "jobMatch"
)

var staticDefaults = map[string]string{
	FeatureSummary: "خريج مجتهد يمتلك أساساً أكاديمياً قوياً ومهارات تواصل وعمل جماعي، " +
		"يسعى لتطبيق ما تعلمه في بيئة عمل مهنية والتطور المستمر فيها.",
	FeatureCoverLetter: "أتقدم إليكم برغبة صادقة في الانضمام إلى فريقكم، " +
		"حيث أرى في هذه الفرصة مجالاً لتوظيف معرفتي الأكاديمية ومهاراتي العملية. " +
		"أتطلع لمناقشة كيف يمكنني الإسهام في نجاح منشأتكم.",
	FeatureJobMatch: "لم نتمكن من تحليل التوافق حالياً. راجع متطلبات الوظيفة وقارنها " +
		"بمؤهلاتك ومهاراتك، وأعد المحاولة لاحقاً.",
}

const staticGeneric = "تعذر توليد النص حالياً، حاول مرة أخرى لاحقاً."

// Static is the deterministic offline completer. It is both the fallback
// behind Client and a standalone completer for builds without a proxy
// endpoint configured.
type Static struct{}

// NewStatic creates the static completer.
func NewStatic() Static {
	return Static{}
}

// Complete returns the canned default for the feature.
func (Static) Complete(ctx context.Context, req ports.CompletionRequest) ports.CompletionResult {
	content, ok := staticDefaults[req.Feature]
	if !ok {
		content = staticGeneric
	}
	return ports.CompletionResult{Content: content, Remaining: -1, Fallback: true}
}

var _ ports.Completer = Static{}
