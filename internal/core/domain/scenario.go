package domain

// Scenario is the business outcome that decides how an order's escrow is settled.
type Scenario string

const (
	ScenarioPaidOnly       Scenario = "PAID_ONLY"       // Paid, outcome still pending
	ScenarioPass           Scenario = "PASS"            // Course completed, affiliate gets the remainder
	ScenarioProtocolRefund Scenario = "PROTOCOL_REFUND" // Partial contractual refund
	ScenarioFullRefund     Scenario = "FULL_REFUND"
)

// IsValid reports whether s is a known scenario.
func (s Scenario) IsValid() bool {
	switch s {
	case ScenarioPaidOnly, ScenarioPass, ScenarioProtocolRefund, ScenarioFullRefund:
		return true
	}
	return false
}

// IsRefund reports whether s returns money to the student.
func (s Scenario) IsRefund() bool {
	return s == ScenarioProtocolRefund || s == ScenarioFullRefund
}

// IsSettled reports whether the scenario runs the ledger through final settlement.
func (s Scenario) IsSettled() bool {
	return s != ScenarioPaidOnly
}
