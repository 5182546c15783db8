// Package policy decides which practice roles may perform which claim actions,
// using an OPA Rego policy.
package policy

import (
	"context"
	"fmt"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

var _ portssvc.PolicyEvaluator = (*Engine)(nil)

// NewEngine prepares policyContent for evaluation. The module must define
// data.claims.authz.allow.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.claims.authz.allow"),
		rego.Module("claims_authz.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// NewDefaultEngine prepares DefaultPolicy.
func NewDefaultEngine(ctx context.Context) (*Engine, error) {
	return NewEngine(ctx, DefaultPolicy)
}

// Allowed reports whether role may perform action. Anything the policy does not
// explicitly allow is denied.
func (e *Engine) Allowed(ctx context.Context, role domain.PracticeRole, action domain.ClaimAction) (bool, error) {
	input := map[string]interface{}{
		"role":   string(role),
		"action": string(action),
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}

	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy returned %T, want bool", results[0].Expressions[0].Value)
	}
	return allowed, nil
}

// DefaultPolicy grants claim permissions per practice role.
const DefaultPolicy = `
package claims.authz

import future.keywords.if
import future.keywords.in

default allow := false

permissions := {
	"ADMIN": ["claims.prepare", "claims.read", "claims.submit", "claims.adjudicate"],
	"BILLING": ["claims.prepare", "claims.read", "claims.submit", "claims.adjudicate"],
	"THERAPIST": ["claims.prepare", "claims.read"],
	"FRONT_DESK": ["claims.read"]
}

allow if {
	some permitted in permissions[input.role]
	permitted == input.action
}
`
