package policyopa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"signet/internal/domain"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.signet.request.result"

// Engine evaluates a rego request policy against incoming identity-creation
// and signing operations. The policy module must define
// signet.request.result as an object with an "allow" boolean and an
// optional "deny" list.
type Engine struct {
	query rego.PreparedEvalQuery
}

func NewEngineFromFile(ctx context.Context, path string) (*Engine, error) {
	module, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy: %w", err)
	}
	return NewEngine(ctx, string(module))
}

func NewEngine(ctx context.Context, module string) (*Engine, error) {
	prepared, err := rego.New(
		rego.Query(defaultQuery),
		rego.Module("request.rego", module),
		rego.StrictBuiltinErrors(true),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing policy: %w", err)
	}
	return &Engine{query: prepared}, nil
}

func (e *Engine) Evaluate(ctx context.Context, input domain.PolicyInput) (domain.PolicyResult, error) {
	if e == nil {
		return domain.PolicyResult{}, errors.New("policy engine is nil")
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return domain.PolicyResult{}, err
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.PolicyResult{}, errors.New("empty policy result")
	}
	return decodePolicyResult(results[0].Expressions[0].Value)
}

func decodePolicyResult(value any) (domain.PolicyResult, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return domain.PolicyResult{}, err
	}
	var result domain.PolicyResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return domain.PolicyResult{}, err
	}
	return result, nil
}
