package validation

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultChain_ValidInput(t *testing.T) {
	chain := NewDefaultChain(Config{Clock: fixedClock})

	outcome := chain.Evaluate(validInput(), validResolved())

	assert.True(t, outcome.IsValid())
	assert.Empty(t, outcome.Messages)
	assert.Equal(t, []string{"fee", "copay", "cpt_code", "icd10_code", "session_date", "payer"}, chain.Names())
}

func TestDefaultChain_CollectsEveryFailureInDeclaredOrder(t *testing.T) {
	input := validInput()
	input.Fee = decimal.NewFromInt(-10)
	input.CopayCollected = decimal.NewFromInt(500)
	input.CPTCode = "99999"

	for _, parallel := range []bool{false, true} {
		chain := NewDefaultChain(Config{Clock: fixedClock, Parallel: parallel})
		outcome := chain.Evaluate(input, validResolved())

		require.False(t, outcome.IsValid())
		assert.Equal(t, []string{
			"Fee must be greater than $0.",
			"Copay ($500.00) cannot exceed total fee ($-10.00).",
			"CPT code '99999' is not in the allowed list.",
		}, outcome.Messages)
	}
}

func TestDefaultChain_AllRulesFail(t *testing.T) {
	input := validInput()
	input.Fee = decimal.Zero
	input.CopayCollected = decimal.NewFromInt(-1)
	input.CPTCode = "00000"
	input.ICD10Code = "BAD"
	input.SessionDate = fixedNow.AddDate(0, 0, 3)
	input.PayerID = "NOPE"
	resolved := validResolved()
	resolved.Payer = nil

	sequential := NewDefaultChain(Config{Clock: fixedClock}).Evaluate(input, resolved)
	parallel := NewDefaultChain(Config{Clock: fixedClock, Parallel: true}).Evaluate(input, resolved)

	assert.Len(t, sequential.Messages, 6)
	assert.Equal(t, sequential.Messages, parallel.Messages)
	assert.Equal(t, "Payer 'NOPE' is not recognized.", sequential.Messages[5])
}

func TestChain_WithDoesNotMutateOriginal(t *testing.T) {
	base := NewChain([]Validator{FeeValidator{}})
	var calls int32
	extended := base.With(ValidatorFunc{
		RuleName: "counter",
		Fn: func(domain.SessionInput, domain.ResolvedEntities) (string, bool) {
			atomic.AddInt32(&calls, 1)
			return "extra rule", true
		},
	})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())
	assert.True(t, base.Evaluate(validInput(), validResolved()).IsValid())
	assert.Equal(t, []string{"extra rule"}, extended.Evaluate(validInput(), validResolved()).Messages)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestChain_ParallelKeepsDeclaredOrder(t *testing.T) {
	slow := ValidatorFunc{RuleName: "slow", Fn: func(domain.SessionInput, domain.ResolvedEntities) (string, bool) {
		time.Sleep(20 * time.Millisecond)
		return "first", true
	}}
	fast := ValidatorFunc{RuleName: "fast", Fn: func(domain.SessionInput, domain.ResolvedEntities) (string, bool) {
		return "second", true
	}}

	outcome := NewChain([]Validator{slow, fast}, WithParallel()).Evaluate(validInput(), validResolved())

	assert.Equal(t, []string{"first", "second"}, outcome.Messages)
}

func TestNewChain_CopiesInput(t *testing.T) {
	validators := []Validator{FeeValidator{}, CopayValidator{}}
	chain := NewChain(validators)
	validators[0] = PayerValidator{}

	assert.Equal(t, []string{"fee", "copay"}, chain.Names())
}
