package ui

import (
	"errors"
	"slices"
	"testing"

	"github.com/rulekit-dev/rulekit/internal/migrate"
	"github.com/rulekit-dev/rulekit/internal/provider"
)

func headlessPrompter(defaults map[string]string) *Prompter {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	hm.SetDefaults(defaults)
	return NewPrompter(hm)
}

func TestChooseActionHeadless(t *testing.T) {
	claude, _ := provider.ByID("claude")

	t.Run("falls_back_to_default_action", func(t *testing.T) {
		p := headlessPrompter(nil)
		action, err := p.ChooseAction(claude)
		if err != nil {
			t.Fatalf("ChooseAction error: %v", err)
		}
		if action != migrate.DefaultAction {
			t.Errorf("action = %v, want %v", action, migrate.DefaultAction)
		}
	})

	t.Run("uses_stored_default", func(t *testing.T) {
		p := headlessPrompter(map[string]string{"action": "migrate-preserve"})
		action, err := p.ChooseAction(claude)
		if err != nil {
			t.Fatalf("ChooseAction error: %v", err)
		}
		if action != migrate.ActionMigratePreserve {
			t.Errorf("action = %v, want migrate-preserve", action)
		}
	})

	t.Run("rejects_invalid_stored_default", func(t *testing.T) {
		p := headlessPrompter(map[string]string{"action": "merge"})
		if _, err := p.ChooseAction(claude); !errors.Is(err, migrate.ErrUnknownAction) {
			t.Errorf("err = %v, want ErrUnknownAction", err)
		}
	})
}

func TestSelectProvidersHeadless(t *testing.T) {
	t.Run("all_providers_without_defaults", func(t *testing.T) {
		p := headlessPrompter(nil)
		got, err := p.SelectProviders()
		if err != nil {
			t.Fatalf("SelectProviders error: %v", err)
		}
		if !slices.Equal(got, provider.IDs()) {
			t.Errorf("providers = %v, want %v", got, provider.IDs())
		}
	})

	t.Run("parses_stored_list", func(t *testing.T) {
		p := headlessPrompter(map[string]string{"providers": "claude, codex"})
		got, err := p.SelectProviders()
		if err != nil {
			t.Fatalf("SelectProviders error: %v", err)
		}
		if !slices.Equal(got, []string{"claude", "codex"}) {
			t.Errorf("providers = %v", got)
		}
	})
}

func TestConfirmHeadless(t *testing.T) {
	p := headlessPrompter(nil)
	ok, err := p.Confirm("proceed?")
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if !ok {
		t.Error("headless confirm should answer yes")
	}
}

func TestHeadlessManagerForce(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("forced headless not honored")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("forced interactive not honored")
	}
}
