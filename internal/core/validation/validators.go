package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// DefaultCPTCodes are the psychotherapy procedure codes accepted for billing.
var DefaultCPTCodes = []string{
	"90832", // psychotherapy, 30 min
	"90834", // psychotherapy, 45 min
	"90837", // psychotherapy, 60 min
	"90839", // crisis psychotherapy, first 60 min
	"90840", // crisis psychotherapy, each additional 30 min
	"90791", // diagnostic evaluation
	"90792", // diagnostic evaluation with medical services
	"90853", // group psychotherapy
	"90846", // family psychotherapy without patient
	"90847", // family psychotherapy with patient
	"90785", // interactive complexity add-on
}

// Clock returns the current instant.
type Clock func() time.Time

// FeeValidator requires a positive session fee.
type FeeValidator struct{}

func (FeeValidator) Name() string { return "fee" }

func (FeeValidator) Check(input domain.SessionInput, _ domain.ResolvedEntities) (string, bool) {
	if !input.Fee.IsPositive() {
		return "Fee must be greater than $0.", true
	}
	return "", false
}

// CopayValidator requires 0 <= copay <= fee.
type CopayValidator struct{}

func (CopayValidator) Name() string { return "copay" }

func (CopayValidator) Check(input domain.SessionInput, _ domain.ResolvedEntities) (string, bool) {
	if input.CopayCollected.IsNegative() {
		return "Copay cannot be negative.", true
	}
	if input.CopayCollected.GreaterThan(input.Fee) {
		return fmt.Sprintf("Copay ($%s) cannot exceed total fee ($%s).",
			input.CopayCollected.StringFixed(2), input.Fee.StringFixed(2)), true
	}
	return "", false
}

// CPTCodeValidator accepts only codes in its allowed set.
type CPTCodeValidator struct {
	allowed map[string]struct{}
}

// NewCPTCodeValidator accepts DefaultCPTCodes plus any extra codes.
func NewCPTCodeValidator(extra ...string) CPTCodeValidator {
	allowed := make(map[string]struct{}, len(DefaultCPTCodes)+len(extra))
	for _, code := range DefaultCPTCodes {
		allowed[code] = struct{}{}
	}
	for _, code := range extra {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			allowed[code] = struct{}{}
		}
	}
	return CPTCodeValidator{allowed: allowed}
}

func (CPTCodeValidator) Name() string { return "cpt_code" }

func (v CPTCodeValidator) Check(input domain.SessionInput, _ domain.ResolvedEntities) (string, bool) {
	if _, ok := v.allowed[input.CPTCode]; !ok {
		return fmt.Sprintf("CPT code '%s' is not in the allowed list.", input.CPTCode), true
	}
	return "", false
}

// icd10Pattern: category letter, two digits, optional dot and one or two subcategory characters.
var icd10Pattern = regexp.MustCompile(`^[A-Z][0-9]{2}(\.[0-9A-Z]{1,2})?$`)

// ICD10CodeValidator checks the diagnosis code format.
type ICD10CodeValidator struct{}

func (ICD10CodeValidator) Name() string { return "icd10_code" }

func (ICD10CodeValidator) Check(input domain.SessionInput, _ domain.ResolvedEntities) (string, bool) {
	if !icd10Pattern.MatchString(input.ICD10Code) {
		return fmt.Sprintf("ICD-10 code '%s' is not a valid format.", input.ICD10Code), true
	}
	return "", false
}

// SessionDateValidator rejects sessions dated after today in the practice's timezone.
type SessionDateValidator struct {
	now Clock
}

// NewSessionDateValidator uses clock as the current time. A nil clock means time.Now.
func NewSessionDateValidator(clock Clock) SessionDateValidator {
	if clock == nil {
		clock = time.Now
	}
	return SessionDateValidator{now: clock}
}

func (SessionDateValidator) Name() string { return "session_date" }

func (v SessionDateValidator) Check(input domain.SessionInput, resolved domain.ResolvedEntities) (string, bool) {
	now := time.Now
	if v.now != nil {
		now = v.now
	}
	today := civilDate(now().In(resolved.Practice.Location()))
	if civilDate(input.SessionDate).After(today) {
		return "Session date cannot be in the future.", true
	}
	return "", false
}

// civilDate drops the time of day, keeping the calendar date as written.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PayerValidator requires the payer to be present in the registry.
type PayerValidator struct{}

func (PayerValidator) Name() string { return "payer" }

func (PayerValidator) Check(input domain.SessionInput, resolved domain.ResolvedEntities) (string, bool) {
	if resolved.Payer == nil || resolved.Payer.PayerID != input.PayerID {
		return fmt.Sprintf("Payer '%s' is not recognized.", input.PayerID), true
	}
	return "", false
}

// payerScoped applies a rule only to sessions billed to one payer.
type payerScoped struct {
	payerID string
	inner   Validator
}

// ForPayer restricts v to sessions billed to payerID. Other sessions pass.
func ForPayer(payerID string, v Validator) Validator {
	return payerScoped{payerID: strings.ToUpper(strings.TrimSpace(payerID)), inner: v}
}

func (p payerScoped) Name() string { return p.payerID + ":" + p.inner.Name() }

func (p payerScoped) Check(input domain.SessionInput, resolved domain.ResolvedEntities) (string, bool) {
	if input.PayerID != p.payerID {
		return "", false
	}
	return p.inner.Check(input, resolved)
}

// Config assembles the default chain.
type Config struct {
	Clock         Clock
	ExtraCPTCodes []string
	Parallel      bool
}

// DefaultValidators returns the standard rules in declared order.
func DefaultValidators(cfg Config) []Validator {
	return []Validator{
		FeeValidator{},
		CopayValidator{},
		NewCPTCodeValidator(cfg.ExtraCPTCodes...),
		ICD10CodeValidator{},
		NewSessionDateValidator(cfg.Clock),
		PayerValidator{},
	}
}

// NewDefaultChain builds the standard chain.
func NewDefaultChain(cfg Config) *Chain {
	var opts []ChainOption
	if cfg.Parallel {
		opts = append(opts, WithParallel())
	}
	return NewChain(DefaultValidators(cfg), opts...)
}
