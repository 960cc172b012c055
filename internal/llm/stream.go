package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// chat-completion delta framing: newline-delimited "data: {...}" records,
// a literal "data: [DONE]" sentinel, and blank or ":"-prefixed comment lines.
const (
	streamDataPrefix  = "data: "
	streamDoneMessage = "[DONE]"
)

type streamDelta struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// ReadStream consumes an incremental chat-completion text stream and returns
// the accumulated generated text in arrival order.
//
// The loop is strictly sequential: read a chunk, split on newlines, process
// complete lines, retain any trailing partial line for the next chunk.
// Records that fail to decode are treated as not-yet-complete and re-buffered
// with subsequent data rather than discarded, preserving eventual
// parseability. The context cancels any pending read through the underlying
// transport.
func ReadStream(ctx context.Context, body io.Reader) (string, error) {
	var accumulated strings.Builder
	var textBuffer string

	reader := bufio.NewReader(body)
	chunk := make([]byte, 4096)

	for {
		if err := ctx.Err(); err != nil {
			return accumulated.String(), err
		}

		n, readErr := reader.Read(chunk)
		if n > 0 {
			textBuffer += string(chunk[:n])

			done := false
			for {
				newlineIndex := strings.Index(textBuffer, "\n")
				if newlineIndex == -1 {
					break
				}
				line := textBuffer[:newlineIndex]
				textBuffer = textBuffer[newlineIndex+1:]

				line = strings.TrimSuffix(line, "\r")
				if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ":") {
					continue
				}
				if !strings.HasPrefix(line, streamDataPrefix) {
					continue
				}

				jsonStr := strings.TrimSpace(line[len(streamDataPrefix):])
				if jsonStr == streamDoneMessage {
					done = true
					break
				}

				var delta streamDelta
				if err := json.Unmarshal([]byte(jsonStr), &delta); err != nil {
					// Partial record split across chunks: put it back and
					// wait for more data.
					textBuffer = line + "\n" + textBuffer
					break
				}

				if len(delta.Choices) > 0 {
					accumulated.WriteString(delta.Choices[0].Delta.Content)
				}
			}
			if done {
				break
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return accumulated.String(), readErr
		}
	}

	return accumulated.String(), nil
}
