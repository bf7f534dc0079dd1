// Package rego provides an OPA-backed trigger policy loaded from a policy
// file, for operators that need trigger rules beyond the built-in variants.
package rego

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// DefaultQuery is the document every trigger policy module must define.
const DefaultQuery = "data.trap.response"

// Policy implements trap.TriggerPolicy using a compiled Rego module.
type Policy struct {
	query            rego.PreparedEvalQuery
	policySHA        string
	thresholdPercent uint64
}

var _ trap.TriggerPolicy = (*Policy)(nil)

// Load reads and compiles the policy file at path and prepares the query for
// evaluation. The threshold is handed to the policy as input, so one module
// can serve multiple trap configurations.
func Load(ctx context.Context, path, query string, thresholdPercent uint64) (*Policy, error) {
	policyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading policy file %s: %v", trap.ErrPolicyLoad, path, err)
	}

	moduleName := filepath.Base(path)
	compiler, err := ast.CompileModules(map[string]string{
		moduleName: string(policyBytes),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: compiling policy module %s: %v", trap.ErrPolicyLoad, moduleName, err)
	}

	pq, err := rego.New(
		rego.Query(query),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: preparing policy query '%s': %v", trap.ErrPolicyLoad, query, err)
	}

	hash := sha256.Sum256(policyBytes)
	return &Policy{
		query:            pq,
		policySHA:        hex.EncodeToString(hash[:]),
		thresholdPercent: thresholdPercent,
	}, nil
}

// ID returns the SHA-256 of the policy file content, for audit and tracking.
func (p *Policy) ID() string {
	return "rego:" + p.policySHA
}

// Decide implements trap.TriggerPolicy. The policy module is expected to
// produce a result map with a "respond" boolean.
func (p *Policy) Decide(ctx context.Context, delta trap.Delta) (bool, error) {
	input := map[string]any{
		"basefee_change":    delta.BasefeeChange,
		"gaslimit_change":   delta.GaslimitChange,
		"current_basefee":   delta.CurrentBasefee,
		"previous_basefee":  delta.PreviousBasefee,
		"current_gaslimit":  delta.CurrentGaslimit,
		"previous_gaslimit": delta.PreviousGaslimit,
		"threshold_percent": p.thresholdPercent,
	}

	resultSet, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("%w: evaluation failed: %v", trap.ErrPolicyEvaluation, err)
	}
	if len(resultSet) == 0 || len(resultSet[0].Expressions) == 0 {
		return false, fmt.Errorf("%w: policy result set is empty or malformed", trap.ErrPolicyEvaluation)
	}

	result, ok := resultSet[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return false, fmt.Errorf("%w: unexpected result format", trap.ErrPolicyEvaluation)
	}

	respond, ok := result["respond"].(bool)
	if !ok {
		return false, fmt.Errorf("%w: policy response missing 'respond' boolean", trap.ErrPolicyEvaluation)
	}
	return respond, nil
}
