package ai

import "strings"

const coreInstructions = `[PRIMARY OBJECTIVE: ERASE ALL TEXT]
- Remove EVERY single piece of text, letters, characters, and numbers from the image.
- The output image must have ZERO text. No Korean, no English, no numbers.
- Fill the erased text areas with the surrounding background color.

[SECONDARY OBJECTIVE: PRESERVE GRAPHICS]
- KEEP ALL icons, illustrations, and characters.
- KEEP ALL photographs inside circular or rectangular frames.
- KEEP the layout elements like bubbles, lines, and boxes.`

const maskedTask = `The first image is the original. The second image is a red mask indicating areas of interest.

TASK:
1. Prioritize erasing text in the red masked areas.
2. If the user provided specific instructions below, follow them strictly.
3. Do not damage icons or background photos.`

const unmaskedTask = `Analyze the provided image and erase ALL text.
Create a clean template while preserving every non-text element.`

// BuildPrompt assembles the text part of an edit request.
func BuildPrompt(masked bool, instruction string) string {
	var b strings.Builder
	if masked {
		b.WriteString(maskedTask)
	} else {
		b.WriteString(unmaskedTask)
	}
	b.WriteString("\n")
	if s := strings.TrimSpace(instruction); s != "" {
		b.WriteString("\n[USER CUSTOM INSTRUCTION]: ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(coreInstructions)
	return b.String()
}
