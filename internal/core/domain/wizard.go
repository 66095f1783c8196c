package domain

import "fmt"

// WizardStep identifies a step of the transaction wizard.
type WizardStep string

const (
	StepClient    WizardStep = "client"
	StepOperation WizardStep = "operation"
	StepValues    WizardStep = "values"
	StepLogistics WizardStep = "logistics"
	// StepFinished is reached after the logistics step completes.
	StepFinished WizardStep = "finished"
)

// WizardSteps is the fixed order of the wizard.
var WizardSteps = []WizardStep{StepClient, StepOperation, StepValues, StepLogistics}

// Next returns the step following s, StepFinished after the last one.
func (s WizardStep) Next() WizardStep {
	for i, step := range WizardSteps {
		if step == s && i+1 < len(WizardSteps) {
			return WizardSteps[i+1]
		}
	}
	return StepFinished
}

// OperationResult is what the operation step hands to the controller.
type OperationResult struct {
	IngressAssetID      string `json:"ingressAssetId"`
	IngressAmount       string `json:"ingressAmount"`
	EgressAssetID       string `json:"egressAssetId"`
	EgressAmount        string `json:"egressAmount"`
	ExchangeRate        string `json:"exchangeRate"`
	ReverseExchangeRate string `json:"reverseExchangeRate"`
	Notes               string `json:"notes"`
	ReadOnly            bool   `json:"readOnly"`
}

// TransactionDraft accumulates the output of every completed step.
type TransactionDraft struct {
	ClientID      string           `json:"clientId,omitempty"`
	Client        *Client          `json:"client,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	Operation     *OperationResult `json:"operation,omitempty"`
	Values        *Values          `json:"values,omitempty"`
	Logistics     *LogisticData    `json:"logistics,omitempty"`
}

// StepPayload is the closed set of step completion payloads.
type StepPayload interface {
	Step() WizardStep
	isStepPayload()
}

// ClientStepPayload completes the client step.
type ClientStepPayload struct {
	Client Client
}

// OperationStepPayload completes the operation step.
type OperationStepPayload struct {
	TransactionID string
	Operation     OperationResult
}

// ValuesStepPayload completes the values step.
type ValuesStepPayload struct {
	Values        Values
	DocumentCount int
}

// LogisticsStepPayload completes the logistics step. Logistics is nil when
// nothing was linked.
type LogisticsStepPayload struct {
	Logistics *LogisticData
}

func (ClientStepPayload) Step() WizardStep    { return StepClient }
func (OperationStepPayload) Step() WizardStep { return StepOperation }
func (ValuesStepPayload) Step() WizardStep    { return StepValues }
func (LogisticsStepPayload) Step() WizardStep { return StepLogistics }

func (ClientStepPayload) isStepPayload()    {}
func (OperationStepPayload) isStepPayload() {}
func (ValuesStepPayload) isStepPayload()    {}
func (LogisticsStepPayload) isStepPayload() {}

// Merge folds a payload into the draft.
func (d *TransactionDraft) Merge(p StepPayload) error {
	switch v := p.(type) {
	case ClientStepPayload:
		c := v.Client
		d.Client = &c
		d.ClientID = c.ID
	case OperationStepPayload:
		if v.TransactionID == "" {
			return fmt.Errorf("operation payload without transaction id")
		}
		op := v.Operation
		d.TransactionID = v.TransactionID
		d.Operation = &op
	case ValuesStepPayload:
		vals := v.Values
		d.Values = &vals
	case LogisticsStepPayload:
		d.Logistics = v.Logistics
	default:
		return fmt.Errorf("unknown step payload %T", p)
	}
	return nil
}
