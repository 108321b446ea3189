package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted reports that the user cancelled the interactive prompt.
var ErrAborted = errors.New("aborted")

// screenPicker abstracts the interactive prompt so the selection flow can
// be tested without a terminal.
type screenPicker interface {
	Pick(ctx context.Context, keys []string) (string, error)
}

type surveyPicker struct{}

func (surveyPicker) Pick(ctx context.Context, keys []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	prompt := &survey.Select{
		Message:  "Pick a screen",
		Options:  keys,
		PageSize: 12,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("pick screen: %w", err)
	}
	return out, nil
}
