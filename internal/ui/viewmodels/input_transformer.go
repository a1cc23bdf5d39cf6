package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// InputTransformer renders the active text input with its prompt
type InputTransformer struct {
	prompt    string
	textInput *textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer() *InputTransformer {
	return &InputTransformer{}
}

// SetInput sets the prompt and input of the current text mode; a nil input
// means no text mode is active
func (it *InputTransformer) SetInput(prompt string, ti *textinput.Model) {
	it.prompt = prompt
	it.textInput = ti
}

// GetPrompt returns the prompt, empty when no text mode is active
func (it *InputTransformer) GetPrompt() string {
	if it.textInput == nil {
		return ""
	}
	return it.prompt
}

// GetInputText returns the current text input string for the view
func (it *InputTransformer) GetInputText() string {
	if it.textInput == nil {
		return ""
	}
	return it.textInput.View()
}
