package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter abstracts the terminal prompts so the input loop can be tested
// without a real terminal.
type Prompter interface {
	// Input reads a line; suggest is called when the user asks for completions.
	Input(message, help string, suggest func(toComplete string) []string) (string, error)
	// Select returns the index of the picked option.
	Select(message string, options []string, pageSize int) (int, error)
}

type surveyPrompter struct{}

// NewSurveyPrompter returns a Prompter backed by survey.
func NewSurveyPrompter() Prompter {
	return surveyPrompter{}
}

func (surveyPrompter) Input(message, help string, suggest func(string) []string) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
		Suggest: suggest,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Select(message string, options []string, pageSize int) (int, error) {
	var idx int
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if pageSize > 0 {
		prompt.PageSize = pageSize
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return -1, translateSurveyErr(err)
	}
	return idx, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
