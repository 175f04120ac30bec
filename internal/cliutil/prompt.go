package cliutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks interactive questions.
type Prompter interface {
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	MultiSelect(ctx context.Context, message string, options, defaults []string) ([]string, error)
}

// SurveyPrompter asks on the terminal.
type SurveyPrompter struct {
	// Opts are passed to every survey.AskOne call, e.g. survey.WithStdio.
	Opts []survey.AskOpt
}

// Confirm asks a yes/no question.
func (p *SurveyPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out, p.Opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// MultiSelect asks the user to pick any number of options.
func (p *SurveyPrompter) MultiSelect(ctx context.Context, message string, options, defaults []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{Message: message, Options: options, Default: defaults, PageSize: 15}
	if err := survey.AskOne(prompt, &out, p.Opts...); err != nil {
		return nil, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// ChooseGroups asks which operation groups to generate. All groups are preselected; an
// empty answer means all.
func ChooseGroups(ctx context.Context, p Prompter, groups []string) ([]string, error) {
	if len(groups) < 2 {
		return groups, nil
	}
	chosen, err := p.MultiSelect(ctx, "Operation groups to generate:", groups, groups)
	if err != nil {
		return nil, err
	}
	if len(chosen) == 0 {
		return groups, nil
	}
	return chosen, nil
}

// ConfirmOverwrite asks before replacing existing files. It returns true without asking
// when existing is empty.
func ConfirmOverwrite(ctx context.Context, p Prompter, dir string, existing []string) (bool, error) {
	if len(existing) == 0 {
		return true, nil
	}
	msg := fmt.Sprintf("Overwrite %d existing file(s) in %s (%s)?", len(existing), dir, strings.Join(existing, ", "))
	return p.Confirm(ctx, msg, false)
}
