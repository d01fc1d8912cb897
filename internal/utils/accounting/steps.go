package accounting

import (
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/SscSPs/escrow_settlement_app/internal/utils"
	"github.com/shopspring/decimal"
)

// Step labels, in the order the script can emit them.
const (
	LabelOrderCreated     = "Order created"
	LabelStudentPayment   = "Student payment"
	LabelCommission       = "Head office commission"
	LabelAwaitingOutcome  = "Awaiting outcome"
	LabelExamPassed       = "Exam passed"
	LabelExamFailed       = "Exam failed"
	LabelStudentRefund    = "Student refund"
	LabelClawback         = "Commission clawback"
	LabelAffiliateSettled = "Affiliate final settlement"
	LabelNothingToSettle  = "Nothing to settle"
	LabelOrderComplete    = "Order complete"
)

// ledger accumulates balances and emitted steps while a script runs.
type ledger struct {
	params   domain.SimulationParams
	balances domain.Balances
	steps    []domain.FinancialState
}

func (l *ledger) record(label, description string, txn *domain.LedgerTransaction) {
	l.steps = append(l.steps, domain.FinancialState{
		StepIndex:       len(l.steps),
		Label:           label,
		Description:     description,
		Balances:        l.balances,
		LastTransaction: txn,
	})
}

func (l *ledger) transfer(from, to domain.Account, amount decimal.Decimal, label, description, reason string) {
	l.balances = l.balances.Transfer(from, to, amount)
	l.record(label, description, &domain.LedgerTransaction{From: from, To: to, Amount: amount, Reason: reason})
}

// settleRemainder moves whatever is left in escrow to the affiliate.
func (l *ledger) settleRemainder() {
	remaining := l.balances.Joint
	l.transfer(domain.AccountJoint, domain.AccountAffiliate, remaining, LabelAffiliateSettled,
		fmt.Sprintf("Affiliate withdraws the remaining %s from the joint account", utils.FormatMoney(remaining)),
		"Final settlement")
}

// outcomeScript runs the scenario-specific tail of the ledger. It reports
// whether the order reached final settlement and gets a closing summary step.
type outcomeScript func(l *ledger) bool

var outcomeScripts = map[domain.Scenario]outcomeScript{
	domain.ScenarioPaidOnly:       awaitOutcome,
	domain.ScenarioPass:           settlePass,
	domain.ScenarioProtocolRefund: settleRefund,
	domain.ScenarioFullRefund:     settleRefund,
}

func awaitOutcome(l *ledger) bool {
	l.record(LabelAwaitingOutcome, "Waiting for the exam result or a follow-up action", nil)
	return false
}

func settlePass(l *ledger) bool {
	l.record(LabelExamPassed, "Student passed the exam; the order qualifies for full settlement", nil)
	l.settleRemainder()
	return true
}

func settleRefund(l *ledger) bool {
	p := l.params
	refund := p.ProtocolRefundAmount
	kind := "Protocol"
	if p.Scenario == domain.ScenarioFullRefund {
		refund = p.OrderAmount
		kind = "Full"
	}

	l.record(LabelExamFailed, fmt.Sprintf("%s refund process triggered", kind), nil)

	l.transfer(domain.AccountJoint, domain.AccountStudent, refund, LabelStudentRefund,
		fmt.Sprintf("Joint account returns %s to the student", utils.FormatMoney(refund)),
		"Refund payout")

	clawback := Commission(refund, p.CommissionRate)
	l.transfer(domain.AccountMain, domain.AccountJoint, clawback, LabelClawback,
		fmt.Sprintf("Head office returns the commission on the refunded part (%s x %s%% = %s)",
			utils.FormatMoney(refund), utils.FormatRate(p.CommissionRate), utils.FormatMoney(clawback)),
		"Commission clawback")

	if l.balances.Joint.IsPositive() {
		l.settleRemainder()
	} else {
		l.record(LabelNothingToSettle, "Joint account is empty; nothing is settled to the affiliate", nil)
	}
	return true
}

// GenerateSteps runs the fixed settlement script for params and returns the
// full ledger trail. It is pure: equal params always give an equal trail.
// Params are not validated here; see domain.SimulationParams.Validate.
func GenerateSteps(p domain.SimulationParams) []domain.FinancialState {
	l := &ledger{
		params:   p,
		balances: domain.Balances{Student: p.OrderAmount},
		steps:    make([]domain.FinancialState, 0, 9),
	}

	l.record(LabelOrderCreated, "Student placed the order and is about to pay", nil)

	l.transfer(domain.AccountStudent, domain.AccountJoint, p.OrderAmount, LabelStudentPayment,
		fmt.Sprintf("Student pays %s into the joint account", utils.FormatMoney(p.OrderAmount)),
		"Order payment")

	commission := Commission(p.OrderAmount, p.CommissionRate)
	l.transfer(domain.AccountJoint, domain.AccountMain, commission, LabelCommission,
		fmt.Sprintf("Head office takes its upfront commission (%s%%) = %s",
			utils.FormatRate(p.CommissionRate), utils.FormatMoney(commission)),
		"Platform management fee")

	script, ok := outcomeScripts[p.Scenario]
	if !ok {
		script = awaitOutcome
	}
	if script(l) {
		l.record(LabelOrderComplete, fmt.Sprintf("Final position: head office +%s, affiliate +%s",
			utils.FormatMoney(l.balances.Main), utils.FormatMoney(l.balances.Affiliate)), nil)
	}
	return l.steps
}
