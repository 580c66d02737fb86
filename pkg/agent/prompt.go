// Prompt templates for the textual tag convention and the feedback messages
// both conventions send after a tool call.
package agent

import (
	"fmt"
	"strings"

	"github.com/inercia/go-mcp/pkg/tools"
)

// tagPromptFormat instructs a model without native function calling to wrap
// tool calls in <tool_call> tags. Verbs substituted: tool block, user query.
const tagPromptFormat = `You are a helpful assistant that can use tools to answer questions.
When you need to use a tool, format your response as follows:

<tool_call>
{
    "name": "tool_name",
    "input": {
        "parameter1": "value1",
        "parameter2": "value2"
    }
}
</tool_call>

After using a tool, provide a natural language response based on the tool results.

%s
- If the user query does not indicate the need to use a tool, provide a natural language response.
- Remember to wrap all tool calls with "<tool_call>" {JSON representing the tool call} "</tool_call>" tags.
- It's important to use the XML-like syntax for the tags, with "<TAG_NAME>" and "</TAG_NAME>" tags.

User query: %s`

const resultFeedbackFormat = `You previously used the tool %s to answer the query: %s

The tool returned this result: %s

Please provide a helpful response based on this information.`

const errorFeedbackFormat = `You previously used the tool %s to answer the query: %s

The tool failed with this error: %s

This was an error, not a successful result. Acknowledge the failure and answer the query as best you can without that tool.`

// renderToolBlock produces the tool-description block advertised inside tag
// mode prompts: one entry per descriptor with its raw input schema.
func renderToolBlock(descriptors []tools.Descriptor) string {
	var b strings.Builder
	b.WriteString("Available tools:\n")
	for _, d := range descriptors {
		fmt.Fprintf(&b, "- %s: %s\n", d.Name, d.Description)
		fmt.Fprintf(&b, "  Input schema: %s\n\n", string(d.RawSchema))
	}
	return b.String()
}

func tagPrompt(toolBlock, query string) string {
	return fmt.Sprintf(tagPromptFormat, toolBlock, query)
}

func feedbackPrompt(fb Feedback) string {
	if fb.Err != "" {
		return fmt.Sprintf(errorFeedbackFormat, fb.Tool, fb.Query, fb.Err)
	}
	return fmt.Sprintf(resultFeedbackFormat, fb.Tool, fb.Query, fb.Content)
}
