package resolve

import (
	"fmt"
	"strings"
)

const varietySystemPrompt = "You are an expert at parsing plant variety names. Always return valid JSON arrays."

const speciesSystemPrompt = "You are an expert at parsing Latin plant species names. Always return valid JSON arrays."

// varietyPrompt builds the extraction instruction for a variety cell. The
// rules and worked examples are fixed; only the cell text varies.
func varietyPrompt(text string) string {
	var b strings.Builder
	b.WriteString(`Analyze the following plant variety text and extract individual varieties if multiple varieties are present.

Rules:
1. If the text contains only ONE variety (like "3. JIW.1"), return it as a single item
2. If the text contains MULTIPLE numbered varieties (like "1. SANEEN. 2. WQ 110"), extract each numbered variety separately
3. Return the result as a JSON array of strings
4. Keep the numbering (e.g., "1.", "2.", "3.") in the extracted varieties
5. Remove any trailing periods from variety names

`)
	fmt.Fprintf(&b, "Text to analyze: %q\n", text)
	b.WriteString(`
Examples:
- Input: "3. JIW.1" -> Output: ["3. JIW.1"]
- Input: "wheat(T.A) : 1. SANEEN. 2. WQ 110" -> Output: ["1. SANEEN", "2. WQ 110"]
- Input: "Dolidos lablab Brachiaria nuzzizensis. 1. Lanet cocotype 2. Bisia ecohype 3. Kisia ecolipe" -> Output: ["1. Lanet cocotype", "2. Bisia ecohype", "3. Kisia ecolipe"]

Return only the JSON array, no other text.`)
	return b.String()
}

// speciesPrompt builds the extraction instruction for a species cell,
// grounding the model with a sample of canonical names when available.
func speciesPrompt(text string, sample []string) string {
	var b strings.Builder
	b.WriteString(`Analyze the following text and extract individual Latin plant species names if multiple species are present.

Rules:
1. A species name is a Latin binomial: capitalized genus followed by a lowercase epithet (like "Hordeum vulgare")
2. Multiple species may be separated by commas or only by spaces
3. Return the result as a JSON array of strings, preserving the original spelling and order
4. If the text contains only ONE species, return it as a single item

`)
	fmt.Fprintf(&b, "Text to analyze: %q\n", text)
	b.WriteString(`
Examples:
- Input: "Pisum sativum" -> Output: ["Pisum sativum"]
- Input: "Pisum sativum Phaseolus vulgaris" -> Output: ["Pisum sativum", "Phaseolus vulgaris"]
- Input: "Hordeum vulgare, Rhanterium epapposum" -> Output: ["Hordeum vulgare", "Rhanterium epapposum"]
`)
	if len(sample) > 0 {
		b.WriteString("\nKnown species names for reference:\n")
		for _, name := range sample {
			b.WriteString("- ")
			b.WriteString(name)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nReturn only the JSON array, no other text.")
	return b.String()
}
