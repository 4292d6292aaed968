package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/internal/pipeline/profile"
)

// AnalystSystemPrompt frames every policy and alignment completion.
const AnalystSystemPrompt = `You are an expert company profile and ESG policy analyst. Your role is to:
1. Extract and analyze company information from their documentation
2. Identify key company values, mission, and objectives
3. Generate appropriate ESG policies based on company context and provided parameters
4. Ensure alignment between company values and suggested policies

Always cite specific sources when providing information and be clear about what is directly stated versus inferred.`

const generationPromptTemplate = `Generate a comprehensive ESG policy using these guidelines:

1. Company Profile Context:
%s

2. Additional Sustainability Context:
%s

3. Required Policy Framework:
%s

When generating the policy:
- Expand it using company-specific context
- Include EXACT targets and timelines from the framework where provided
- Add implementation steps that reference the suggested components
- Align monitoring mechanisms with the specified timelines

Follow this structure:
### %s
**Alignment:** [Connect to company values]
**Scope:** [From the framework plus company-specific scope]
**Targets:**
- [Specific targets from the framework]
- [Additional company-specific targets if needed]

**Implementation:**
[Steps incorporating the suggested components]

**Timeline:**
- [Phased implementation based on the framework timeline]

**Monitoring:**
- [Metrics matching the targets]
- [Reporting frequency aligned with timeline phases]`

// Generate produces one policy per parameter, in parameter order. A failed
// completion becomes a failure record instead of aborting the whole batch,
// so len(policies)+len(failures) always equals len(params).
func Generate(ctx context.Context, provider llm.Provider, companyProfile *esg.CompanyProfile, params []esg.ESGParameter, sustainabilityContext string) ([]esg.GeneratedPolicy, []esg.PolicyFailure) {
	profileBlock := profile.Render(companyProfile)
	if strings.TrimSpace(sustainabilityContext) == "" {
		sustainabilityContext = "No additional sustainability documentation found."
	}

	policies := make([]esg.GeneratedPolicy, 0, len(params))
	var failures []esg.PolicyFailure

	for i, param := range params {
		if err := ctx.Err(); err != nil {
			failures = append(failures, failure(i, param, err))
			continue
		}

		prompt := fmt.Sprintf(generationPromptTemplate, profileBlock, sustainabilityContext, ParameterBlock(param), param.Name)
		text, err := provider.Generate(ctx, AnalystSystemPrompt, prompt)
		if err != nil {
			failures = append(failures, failure(i, param, err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			failures = append(failures, failure(i, param, fmt.Errorf("model returned an empty policy")))
			continue
		}

		policies = append(policies, esg.GeneratedPolicy{
			ParameterIndex: i,
			ParameterName:  param.Name,
			Category:       param.Category,
			PolicyText:     strings.TrimSpace(text),
		})
	}
	return policies, failures
}

func failure(index int, param esg.ESGParameter, err error) esg.PolicyFailure {
	genErr := &esg.GenerationError{Parameter: param.Name, Err: err}
	return esg.PolicyFailure{ParameterIndex: index, ParameterName: param.Name, Error: genErr.Error()}
}

// ParameterBlock renders one parameter as the framework section of the prompt,
// mirroring the Invest Europe Table 7 layout the parameters are sourced from.
func ParameterBlock(p esg.ESGParameter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", p.Category)
	fmt.Fprintf(&b, "**%s**\n", p.Name)

	scope := strings.TrimSpace(p.Description)
	if scope == "" {
		scope = "Not specified"
	}
	fmt.Fprintf(&b, "- Scope: %s\n", scope)

	if items := splitLines(p.Components); len(items) > 0 {
		b.WriteString("- Components:\n")
		for _, item := range items {
			fmt.Fprintf(&b, "  * %s\n", item)
		}
	}
	if items := splitLines(p.Targets); len(items) > 0 {
		b.WriteString("- Targets:\n")
		for _, item := range items {
			fmt.Fprintf(&b, "  * %s\n", item)
		}
	}
	if items := splitLines(p.Timeline); len(items) > 0 {
		fmt.Fprintf(&b, "- Timeline: %s\n", strings.Join(items, ", "))
	}
	if p.Weight != 1.0 {
		fmt.Fprintf(&b, "- Relative Weight: %.1f\n", p.Weight)
	}
	return b.String()
}

func splitLines(cell string) []string {
	var out []string
	for _, line := range strings.Split(cell, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
