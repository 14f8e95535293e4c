// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package battleerr provides structured, recoverable errors for the battle
// engine. Every error the engine returns to a caller carries a stable Code
// so hosts can branch on it without parsing message text, plus optional
// Meta context for diagnostics and UI surfacing.
//
// Internal inconsistencies (queue drift, negative stacks, unknown token ids)
// are not reported through this package: per spec §7 they are surfaced as
// commandlog.AnomalyDetected events and self-healed, never returned as an
// error to the caller.
package battleerr

import (
	"errors"
	"fmt"
)

// Code identifies the family and specific reason an operation was refused.
type Code string

const (
	// CodeUnknown is used when wrapping an error of unknown origin.
	CodeUnknown Code = "unknown"
	// CodeInternal indicates a programming invariant was violated.
	CodeInternal Code = "internal"

	// Selection errors (spec §7 SelectionError)

	// CodeOverSpeed: sum(selected.speed_cost) exceeds max_speed.
	CodeOverSpeed Code = "selection.over_speed"
	// CodeOverAction: sum(selected.action_cost) exceeds max_energy.
	CodeOverAction Code = "selection.over_action"
	// CodeTooManyCards: len(selected) exceeds MAX_SUBMIT_CARDS.
	CodeTooManyCards Code = "selection.too_many_cards"
	// CodeUnknownCard: a submitted card id has no catalog definition.
	CodeUnknownCard Code = "selection.unknown_card"
	// CodeNotInHand: a submitted card instance is not in the current hand.
	CodeNotInHand Code = "selection.not_in_hand"

	// Phase errors (spec §7 PhaseError)

	// CodeWrongPhase: the operation requires a different battle phase.
	CodeWrongPhase Code = "phase.wrong_phase"

	// Rewind errors (spec §7 RewindError)

	// CodeRewindAlreadyUsed: rewind_used is already true this turn.
	CodeRewindAlreadyUsed Code = "rewind.already_used"
	// CodeRewindNoSnapshot: there is no respond_snapshot to restore.
	CodeRewindNoSnapshot Code = "rewind.no_snapshot"

	// Sub-selection errors (spec §7 SubSelectError)

	// CodeNoPendingSelection: resolve_breach called with nothing pending.
	CodeNoPendingSelection Code = "subselect.no_pending"
	// CodeInvalidChoice: the chosen card id is not among the offered set.
	CodeInvalidChoice Code = "subselect.invalid_choice"

	// Catalog errors (spec §7 CatalogError) - construction-time, fatal.

	// CodeMissingCard: EncounterSpec references an undefined card id.
	CodeMissingCard Code = "catalog.missing_card"
	// CodeMissingToken: EncounterSpec references an undefined token id.
	CodeMissingToken Code = "catalog.missing_token"
	// CodeMissingEnemy: EncounterSpec references an undefined enemy id.
	CodeMissingEnemy Code = "catalog.missing_enemy"
	// CodeDuplicateID: two defs of the same family share an id.
	CodeDuplicateID Code = "catalog.duplicate_id"
)

// Error is a battle engine error: a stable Code plus a human message and
// optional structured metadata.
type Error struct {
	// Code categorizes the error for programmatic handling.
	Code Code
	// Message describes what happened.
	Message string
	// Cause is the wrapped error, if any.
	Cause error
	// Meta carries extra diagnostic context (e.g. {"required": 7, "have": 5}).
	Meta map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "battleerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an *Error at construction time.
type Option func(*Error)

// WithMeta attaches a key/value pair of diagnostic metadata.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// New creates an *Error with the given code and message.
func New(code Code, message string, opts ...Option) *Error {
	err := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// Newf creates an *Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an arbitrary error, preserving its Code and Meta if it is
// already a *battleerr.Error.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return New(CodeInternal, fmt.Sprintf("battleerr.Wrap called with nil: %s", message))
	}

	var inner *Error
	wrapped := &Error{Message: message, Cause: err, Code: CodeUnknown}
	if errors.As(err, &inner) {
		wrapped.Code = inner.Code
		wrapped.Meta = copyMeta(inner.Meta)
	}

	for _, opt := range opts {
		opt(wrapped)
	}
	return wrapped
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// GetCode extracts the Code from any error, returning CodeUnknown if it is
// not a *battleerr.Error.
func GetCode(err error) Code {
	var be *Error
	if errors.As(err, &be) && be != nil {
		return be.Code
	}
	return CodeUnknown
}

// GetMeta extracts the Meta map from any error, or nil.
func GetMeta(err error) map[string]any {
	var be *Error
	if errors.As(err, &be) && be != nil {
		return be.Meta
	}
	return nil
}

// Typed constructors for the five error families in spec §7.

// OverSpeed reports a selection exceeding the speed budget.
func OverSpeed(used, max int) *Error {
	return New(CodeOverSpeed, fmt.Sprintf("selection exceeds speed budget: %d > %d", used, max),
		WithMeta("used", used), WithMeta("max", max))
}

// OverAction reports a selection exceeding the action/energy budget.
func OverAction(used, max int) *Error {
	return New(CodeOverAction, fmt.Sprintf("selection exceeds action budget: %d > %d", used, max),
		WithMeta("used", used), WithMeta("max", max))
}

// TooManyCards reports a selection with more cards than MAX_SUBMIT_CARDS.
func TooManyCards(count, max int) *Error {
	return New(CodeTooManyCards, fmt.Sprintf("too many cards selected: %d > %d", count, max),
		WithMeta("count", count), WithMeta("max", max))
}

// UnknownCard reports a submitted card id absent from the catalog.
func UnknownCard(id string) *Error {
	return New(CodeUnknownCard, fmt.Sprintf("unknown card: %s", id), WithMeta("card_id", id))
}

// NotInHand reports a submitted card instance not present in the hand.
func NotInHand(uid string) *Error {
	return New(CodeNotInHand, fmt.Sprintf("card not in hand: %s", uid), WithMeta("uid", uid))
}

// WrongPhase reports an operation attempted in an unsupported phase.
func WrongPhase(expected, got string) *Error {
	return New(CodeWrongPhase, fmt.Sprintf("wrong phase: expected %s, got %s", expected, got),
		WithMeta("expected", expected), WithMeta("got", got))
}

// RewindAlreadyUsed reports a second rewind attempt in the same turn.
func RewindAlreadyUsed() *Error {
	return New(CodeRewindAlreadyUsed, "rewind already used this turn")
}

// RewindNoSnapshot reports a rewind attempt with no snapshot to restore.
func RewindNoSnapshot() *Error {
	return New(CodeRewindNoSnapshot, "no respond snapshot to rewind to")
}

// NoPendingSelection reports resolve_breach called with nothing pending.
func NoPendingSelection() *Error {
	return New(CodeNoPendingSelection, "no sub-selection is pending")
}

// InvalidChoice reports a sub-selection choice outside the offered set.
func InvalidChoice(choice string) *Error {
	return New(CodeInvalidChoice, fmt.Sprintf("invalid sub-selection choice: %s", choice),
		WithMeta("choice", choice))
}

// MissingCard reports an EncounterSpec referencing an undefined card id.
func MissingCard(id string) *Error {
	return New(CodeMissingCard, fmt.Sprintf("catalog missing card: %s", id), WithMeta("card_id", id))
}

// MissingToken reports an EncounterSpec referencing an undefined token id.
func MissingToken(id string) *Error {
	return New(CodeMissingToken, fmt.Sprintf("catalog missing token: %s", id), WithMeta("token_id", id))
}

// MissingEnemy reports an EncounterSpec referencing an undefined enemy id.
func MissingEnemy(id string) *Error {
	return New(CodeMissingEnemy, fmt.Sprintf("catalog missing enemy: %s", id), WithMeta("enemy_id", id))
}

// DuplicateID reports two defs of the same kind ("card", "token", "enemy",
// "anomaly") sharing an id in a loaded catalog file.
func DuplicateID(kind, id string) *Error {
	return New(CodeDuplicateID, fmt.Sprintf("duplicate %s id: %s", kind, id),
		WithMeta("kind", kind), WithMeta("id", id))
}
