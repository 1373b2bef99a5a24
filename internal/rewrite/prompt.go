package rewrite

import (
	"fmt"
	"strings"
)

// NoContextPlaceholder is substituted for the retrieved context when
// retrieval returned nothing: personalize by tone only, invent nothing.
const NoContextPlaceholder = "(no specific facts; stay vague but honest)"

// buildClassifyPrompt asks the model for the chunk's rhetorical role and a
// targeted retrieval query against the subject's personal knowledge store.
func buildClassifyPrompt(subject, chunk string) string {
	var b strings.Builder

	b.WriteString("You are analyzing a line from a reference script.\n")
	b.WriteString(fmt.Sprintf("Line: %q\n\n", chunk))
	b.WriteString("Your job:\n")
	b.WriteString("1. Identify the rhetorical_role as ONE of:\n")
	b.WriteString("   [hook, founder_backstory, credibility, proof, lesson, cta, filler]\n")
	b.WriteString(fmt.Sprintf("2. Write retrieval_query: a short description of what information about %s ", subject))
	b.WriteString("should be retrieved from their personal memory DB to REPLACE this line TRUTHFULLY.\n")
	b.WriteString(fmt.Sprintf("   - Focus on %s's real backstory, projects, long-term obsessions, results, etc.\n", subject))
	b.WriteString("   - If the line is about a topic unrelated to the subject's actual product (say, fitness\n")
	b.WriteString("     when the product is a social/media/creator app), the retrieval_query should point to\n")
	b.WriteString(fmt.Sprintf("     %s's authentic connection to their real domain, NOT the original topic.\n", subject))
	b.WriteString("3. If the line is filler and doesn't need personalization, set rhetorical_role=\"filler\"\n")
	b.WriteString("   and retrieval_query=\"none\".\n\n")
	b.WriteString("Return a JSON object ONLY, like:\n")
	b.WriteString(`{"rhetorical_role": "founder_backstory", "retrieval_query": "long-term obsession with online communities and why they are building their current app"}`)
	b.WriteString("\n")

	return b.String()
}

// buildRewritePrompt constrains the generation step: preserve the rhetorical
// function, ground every factual claim in the supplied context, bounded
// length, no explanatory wrapper.
func buildRewritePrompt(subject, chunk, role, contextText, extraInstructions string) string {
	if strings.TrimSpace(contextText) == "" {
		contextText = NoContextPlaceholder
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are %s.\n", subject))
	b.WriteString("You are rewriting one line from a reference script so it is 100% about YOU, ")
	b.WriteString("your real story, and your current product.\n\n")
	b.WriteString("Context (true facts about you, your backstory, your work):\n")
	b.WriteString(contextText)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Rhetorical role of this line: %s\n", role))
	b.WriteString("Original line (DO NOT COPY DETAILS FROM HERE, ONLY STRUCTURE & INTENT):\n")
	b.WriteString(chunk)
	b.WriteString("\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Ground everything in the provided context. If the original mentions something ")
	b.WriteString("unrelated to you, replace it with YOUR real, relevant story.\n")
	b.WriteString("- Never invent achievements or fake numbers.\n")
	b.WriteString("- Keep the same PURPOSE (hook / backstory / credibility / proof / lesson / cta), ")
	b.WriteString("but mapped to your real journey.\n")
	b.WriteString("- Use your tone: fast, direct. Don't use words like \"yo\", \"fr\", \"deadass\". No fluff.\n")
	b.WriteString("- 1-2 sentences max.\n")
	b.WriteString("- Output ONLY the rewritten line. No explanations.\n")

	if extra := strings.TrimSpace(extraInstructions); extra != "" {
		b.WriteString("\nAdditional Instructions:\n")
		b.WriteString(extra)
		b.WriteString("\n")
	}

	return b.String()
}
