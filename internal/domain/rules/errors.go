package rules

import "errors"

// Domain errors for rule construction and resolution

var (
	ErrEmptyRuleText   = errors.New("rule text is required")
	ErrNoCategories    = errors.New("rule must target at least one food category")
	ErrUnknownPriority = errors.New("unknown rule priority")
	ErrUnknownAction   = errors.New("unknown rule action")
)
