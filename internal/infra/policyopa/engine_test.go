package policyopa

import (
	"context"
	"testing"

	"signet/internal/domain"
)

const testModule = `
package signet.request

default result = {"allow": true}

result = {"allow": false, "deny": deny} {
	count(deny) > 0
}

deny[entry] {
	input.operation == "sign"
	input.text_bytes > 100
	entry := {"code": "TEXT_TOO_LARGE", "message": "text exceeds policy limit"}
}

deny[entry] {
	input.operation == "provision_identity"
	input.username == "root"
	entry := {"code": "RESERVED_USERNAME", "message": "username is reserved"}
}
`

func TestEngineAllows(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, testModule)
	if err != nil {
		t.Fatalf("preparing engine: %v", err)
	}

	result, err := engine.Evaluate(ctx, domain.PolicyInput{
		Operation: "sign",
		TextBytes: 10,
	})
	if err != nil {
		t.Fatalf("evaluating: %v", err)
	}
	if !result.Allow {
		t.Fatalf("expected allow, got %+v", result)
	}
}

func TestEngineDeniesOversizedSignRequest(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, testModule)
	if err != nil {
		t.Fatalf("preparing engine: %v", err)
	}

	result, err := engine.Evaluate(ctx, domain.PolicyInput{
		Operation: "sign",
		TextBytes: 500,
	})
	if err != nil {
		t.Fatalf("evaluating: %v", err)
	}
	if result.Allow {
		t.Fatal("expected deny for oversized text")
	}
	if len(result.Deny) != 1 || result.Deny[0].Code != "TEXT_TOO_LARGE" {
		t.Fatalf("unexpected deny set: %+v", result.Deny)
	}
}

func TestEngineDeniesReservedUsername(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, testModule)
	if err != nil {
		t.Fatalf("preparing engine: %v", err)
	}

	result, err := engine.Evaluate(ctx, domain.PolicyInput{
		Operation: "provision_identity",
		Username:  "root",
	})
	if err != nil {
		t.Fatalf("evaluating: %v", err)
	}
	if result.Allow {
		t.Fatal("expected deny for reserved username")
	}
	if len(result.Deny) != 1 || result.Deny[0].Code != "RESERVED_USERNAME" {
		t.Fatalf("unexpected deny set: %+v", result.Deny)
	}
}

func TestNewEngineRejectsBadModule(t *testing.T) {
	if _, err := NewEngine(context.Background(), "package signet.request\n\nresult {"); err == nil {
		t.Fatal("expected error for unparsable module")
	}
}
