package alignment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/internal/pipeline/policy"
	"github.com/akolanti/EsgAPI/internal/pipeline/profile"
)

const rationalePromptTemplate = `Analyze the alignment between the company profile and this generated ESG policy:

Company Profile:
%s

Generated Policy (%s):
%s

Provide analysis of:
1. Value Alignment - How well does the policy reflect company values?
2. Feasibility - Is the policy realistic given company context?
3. Comprehensiveness - Does the policy address its ESG area?
4. Implementation Challenges - What potential obstacles exist?
5. Recommendations - Suggestions for improving alignment

Format the response in Markdown for better readability.`

// Score rates each policy against the company profile. The numeric score is
// cosine similarity between the profile and policy embeddings rescaled to
// [0, 1], so identical inputs always produce identical scores. The rationale
// is a separate LLM analysis. Policies that cannot be scored become failure
// records, results keep policy order.
func Score(ctx context.Context, provider llm.Provider, embedder embedding.Embedder, companyProfile *esg.CompanyProfile, policies []esg.GeneratedPolicy) ([]esg.AlignmentResult, []esg.PolicyFailure) {
	if len(policies) == 0 {
		return nil, nil
	}

	profileBlock := profile.Render(companyProfile)
	profileVec, err := embedder.GetEmbedding(ctx, CanonicalProfileText(companyProfile))
	if err != nil {
		return nil, failAll(policies, fmt.Errorf("embedding company profile failed: %w", err))
	}

	results := make([]esg.AlignmentResult, 0, len(policies))
	var failures []esg.PolicyFailure

	for i, pol := range policies {
		if err = ctx.Err(); err != nil {
			failures = append(failures, failure(pol, err))
			continue
		}

		policyVec, embedErr := embedder.GetEmbedding(ctx, pol.PolicyText)
		if embedErr != nil {
			failures = append(failures, failure(pol, fmt.Errorf("embedding policy failed: %w", embedErr)))
			continue
		}

		rationale, genErr := provider.Generate(ctx, policy.AnalystSystemPrompt,
			fmt.Sprintf(rationalePromptTemplate, profileBlock, pol.ParameterName, pol.PolicyText))
		if genErr != nil {
			failures = append(failures, failure(pol, fmt.Errorf("rationale completion failed: %w", genErr)))
			continue
		}

		results = append(results, esg.AlignmentResult{
			PolicyIndex:   i,
			ParameterName: pol.ParameterName,
			Score:         rescale(cosine(profileVec, policyVec)),
			Rationale:     strings.TrimSpace(rationale),
		})
	}
	return results, failures
}

// CanonicalProfileText is the embedding input for the profile side of every
// comparison. Field order is fixed so repeat runs embed identical text.
func CanonicalProfileText(p *esg.CompanyProfile) string {
	parts := []string{"Mission: " + p.Mission, "Vision: " + p.Vision}
	if len(p.Values) > 0 {
		parts = append(parts, "Values: "+strings.Join(p.Values, ", "))
	}
	if len(p.Objectives) > 0 {
		parts = append(parts, "Objectives: "+strings.Join(p.Objectives, "; "))
	}
	return strings.Join(parts, "\n")
}

func failure(pol esg.GeneratedPolicy, err error) esg.PolicyFailure {
	return esg.PolicyFailure{
		ParameterIndex: pol.ParameterIndex,
		ParameterName:  pol.ParameterName,
		Error:          err.Error(),
	}
}

func failAll(policies []esg.GeneratedPolicy, err error) []esg.PolicyFailure {
	failures := make([]esg.PolicyFailure, 0, len(policies))
	for _, pol := range policies {
		failures = append(failures, failure(pol, err))
	}
	return failures
}

// rescale maps cosine similarity from [-1, 1] onto [0, 1] and clamps the
// result against floating point drift.
func rescale(cos float64) float64 {
	score := (cos + 1) / 2
	return math.Min(1, math.Max(0, score))
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
