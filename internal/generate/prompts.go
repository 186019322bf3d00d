package generate

import (
	"fmt"
	"strings"
)

// maxSourceChars caps the amount of source text embedded in a prompt.
const maxSourceChars = 30000

func syllabusPrompt(req SyllabusRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `You are an expert curriculum designer. Create a course syllabus based on the following text and web resources.
The syllabus should be in %s.

Follow this structure:
1. **Learning Intent**: A short section describing the goal of the course.
2. **Program Modules**: 4-6 cohesive modules. Each module must have:
    - **Theory**: Theoretical anchors.
    - **Organization**: Organizational levers.
    - **Labs**: A placeholder line for Google Cloud labs (e.g., "Lab: [Relevant Lab Title]").
3. **Expectations**: Closing expectations.

Do NOT include specific URLs for labs, just titles.
Use Markdown formatting.

Additional Instructions from User:
%s

Web Resources to incorporate:
%s

Source Text (excerpt):
%s
`, req.Language.instruction(), req.Instructions, req.WebResources, excerpt(req.SourceText))
	return sb.String()
}

func topicMappingPrompt(sourceText string) string {
	return fmt.Sprintf(`Based on the following text, create a 'Topic Mapping' document.
For each major topic or block identified in the text:
1. List the specific chapters or sections from the source text that cover it.
2. Suggest relevant Google Cloud Skills Boost labs or similar hands-on activities (just titles if URLs are unknown, but try to be specific).

Format as a Markdown table or list.

Source Text:
%s
`, excerpt(sourceText))
}

func excerpt(text string) string {
	if len(text) > maxSourceChars {
		return text[:maxSourceChars]
	}
	return text
}
