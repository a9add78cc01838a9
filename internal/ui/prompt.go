package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rulekit-dev/rulekit/internal/migrate"
	"github.com/rulekit-dev/rulekit/internal/provider"
)

// ErrCancelled indicates the user aborted a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Prompter asks setup questions, resolving from defaults in headless mode.
type Prompter struct {
	headless *HeadlessManager
}

// NewPrompter creates a Prompter backed by the given headless manager.
func NewPrompter(hm *HeadlessManager) *Prompter {
	return &Prompter{headless: hm}
}

// ChooseAction asks how to handle a provider's existing configuration.
// In headless mode it returns the "action" default, falling back to the
// deterministic default action.
func (p *Prompter) ChooseAction(prov provider.Provider) (migrate.Action, error) {
	if p.headless.IsHeadless() {
		if v, ok := p.headless.GetDefault("action"); ok {
			return migrate.ParseAction(v)
		}
		return migrate.DefaultAction, nil
	}

	opts := make([]huh.Option[string], 0, len(migrate.Actions()))
	for _, a := range migrate.Actions() {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s — %s", a, a.Description()), a.String()))
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Existing %s configuration found", prov.Name)).
			Description("Choose what to do with it before installing fresh rules").
			Options(opts...).
			Value(&selected),
	)).WithTheme(newRulekitTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("action prompt: %w", err)
	}

	return migrate.ParseAction(selected)
}

// SelectProviders asks which providers to scaffold. In headless mode it
// returns the comma-separated "providers" default, or every provider when
// no default is stored.
func (p *Prompter) SelectProviders() ([]string, error) {
	if p.headless.IsHeadless() {
		if v, ok := p.headless.GetDefault("providers"); ok {
			return splitList(v), nil
		}
		return provider.IDs(), nil
	}

	opts := make([]huh.Option[string], 0, len(provider.All()))
	for _, prov := range provider.All() {
		opts = append(opts, huh.NewOption(prov.Name, prov.ID).Selected(true))
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("AI assistants to configure").
			Options(opts...).
			Validate(func(vals []string) error {
				if len(vals) == 0 {
					return errors.New("select at least one provider")
				}
				return nil
			}).
			Value(&selected),
	)).WithTheme(newRulekitTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("provider prompt: %w", err)
	}

	return selected, nil
}

// Confirm asks a yes/no question. Headless mode answers yes.
func (p *Prompter) Confirm(title string) (bool, error) {
	if p.headless.IsHeadless() {
		return true, nil
	}

	confirmed := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&confirmed),
	)).WithTheme(newRulekitTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return confirmed, nil
}

// splitList parses a comma-separated list, trimming blanks.
func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
