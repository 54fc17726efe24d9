package provision

import (
	"bufio"
	"io"
	"strings"
)

const affirmativeResponseConstant = "y"

// ConfirmationPrompter blocks on a single line of interactive input.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and accepts only a trimmed, case-sensitive "y".
//
// Any other response, including an empty line, declines. The prompter never
// re-prompts.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return false, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, readError
	}

	return strings.TrimSpace(response) == affirmativeResponseConstant, nil
}
