// Package validation holds the business rules a therapy session must pass before it
// becomes a claim.
package validation

import (
	"sync"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// Validator checks one rule. It returns the failure message and true when the rule is
// violated, or "" and false when it holds. Validators must not depend on each other.
type Validator interface {
	Name() string
	Check(input domain.SessionInput, resolved domain.ResolvedEntities) (string, bool)
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc struct {
	RuleName string
	Fn       func(input domain.SessionInput, resolved domain.ResolvedEntities) (string, bool)
}

func (f ValidatorFunc) Name() string { return f.RuleName }

func (f ValidatorFunc) Check(input domain.SessionInput, resolved domain.ResolvedEntities) (string, bool) {
	return f.Fn(input, resolved)
}

// Outcome is the ordered list of failure messages produced by a chain.
type Outcome struct {
	Messages []string
}

// IsValid reports whether no rule was violated.
func (o Outcome) IsValid() bool {
	return len(o.Messages) == 0
}

// Chain runs every validator against the same input. It never stops at the first
// failure. Messages come back in the order the validators were declared.
type Chain struct {
	validators []Validator
	parallel   bool
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithParallel evaluates validators concurrently. Output order is unchanged.
func WithParallel() ChainOption {
	return func(c *Chain) {
		c.parallel = true
	}
}

// NewChain builds an immutable chain from validators in evaluation order.
func NewChain(validators []Validator, opts ...ChainOption) *Chain {
	c := &Chain{validators: append([]Validator(nil), validators...)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With returns a new chain with extra validators appended. The receiver is not modified.
func (c *Chain) With(extra ...Validator) *Chain {
	validators := make([]Validator, 0, len(c.validators)+len(extra))
	validators = append(validators, c.validators...)
	validators = append(validators, extra...)
	return &Chain{validators: validators, parallel: c.parallel}
}

// Names lists the validators in evaluation order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.validators))
	for i, v := range c.validators {
		names[i] = v.Name()
	}
	return names
}

// Len returns the number of validators.
func (c *Chain) Len() int {
	return len(c.validators)
}

// Evaluate runs all validators and collects their failures.
func (c *Chain) Evaluate(input domain.SessionInput, resolved domain.ResolvedEntities) Outcome {
	if c.parallel && len(c.validators) > 1 {
		return c.evaluateParallel(input, resolved)
	}

	messages := make([]string, 0)
	for _, v := range c.validators {
		if msg, failed := v.Check(input, resolved); failed {
			messages = append(messages, msg)
		}
	}
	return Outcome{Messages: messages}
}

func (c *Chain) evaluateParallel(input domain.SessionInput, resolved domain.ResolvedEntities) Outcome {
	type result struct {
		msg    string
		failed bool
	}
	results := make([]result, len(c.validators))

	var wg sync.WaitGroup
	for i, v := range c.validators {
		wg.Add(1)
		go func(i int, v Validator) {
			defer wg.Done()
			msg, failed := v.Check(input, resolved)
			results[i] = result{msg: msg, failed: failed}
		}(i, v)
	}
	wg.Wait()

	messages := make([]string, 0)
	for _, r := range results {
		if r.failed {
			messages = append(messages, r.msg)
		}
	}
	return Outcome{Messages: messages}
}
