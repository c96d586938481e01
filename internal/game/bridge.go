package game

import (
	"encoding/json"

	"github.com/mwillard/gameroom/internal/model"
)

// Rules is the typed side of a game template. Implementations operate on
// their own concrete state type; Wrap adapts them to the opaque Template
// contract the registry stores.
type Rules[S any] interface {
	InitialState(players []model.Player) S
	Reduce(state S, action model.Action, ctx Context) S
	Phase(state S) Phase
}

// RulesValidator is the typed counterpart of ActionValidator
type RulesValidator[S any] interface {
	ActionAllowed(state S, action model.Action, ctx Context) bool
}

// Wrap adapts typed rules into a type-erased Template. If the rules also
// implement RulesValidator, the returned template implements
// ActionValidator.
func Wrap[S any](meta Metadata, rules Rules[S]) Template {
	t := typed[S]{meta: meta, rules: rules}
	if v, ok := rules.(RulesValidator[S]); ok {
		return &typedValidated[S]{typed: t, validator: v}
	}
	return &t
}

type typed[S any] struct {
	meta  Metadata
	rules Rules[S]
}

func (t *typed[S]) Metadata() Metadata {
	return t.meta
}

func (t *typed[S]) InitialState(players []model.Player) model.GameState {
	return mustEncode(t.rules.InitialState(players))
}

func (t *typed[S]) Reduce(state model.GameState, action model.Action, ctx Context) model.GameState {
	s, ok := t.decode(state)
	if !ok {
		// Undecodable state is treated as not-applicable: no-op
		return state
	}
	next := t.rules.Reduce(s, action, ctx)
	encoded := mustEncode(next)
	if encoded == nil {
		return state
	}
	return encoded
}

func (t *typed[S]) Phase(state model.GameState) Phase {
	s, ok := t.decode(state)
	if !ok {
		return PhaseLobby
	}
	return t.rules.Phase(s)
}

func (t *typed[S]) decode(state model.GameState) (S, bool) {
	var s S
	if len(state) == 0 {
		return s, false
	}
	if err := json.Unmarshal(state, &s); err != nil {
		return s, false
	}
	return s, true
}

type typedValidated[S any] struct {
	typed[S]
	validator RulesValidator[S]
}

func (t *typedValidated[S]) ActionAllowed(state model.GameState, action model.Action, ctx Context) bool {
	s, ok := t.decode(state)
	if !ok {
		// Let the reducer's no-op convention handle undecodable state
		return true
	}
	return t.validator.ActionAllowed(s, action, ctx)
}

func mustEncode(v any) model.GameState {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// Compile-time interface checks
var (
	_ Template        = (*typed[struct{}])(nil)
	_ Template        = (*typedValidated[struct{}])(nil)
	_ ActionValidator = (*typedValidated[struct{}])(nil)
)
