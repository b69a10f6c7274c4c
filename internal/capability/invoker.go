// Package capability abstracts the invocation of the five accident
// analysis capabilities. The pipeline stays agnostic to how a capability
// is fulfilled; the shipped implementation dispatches through an
// LLM tool-calling endpoint.
package capability

import (
	"context"
	"fmt"

	"github.com/fnolabs/crashtriage/internal/model"
)

// Capability names understood by the dispatch layer.
const (
	AnalyzeImpact     = "analyze-impact"
	GatherEnvironment = "gather-environment"
	LookupPolicy      = "lookup-policy"
	FindServices      = "find-services"
	InitiateComms     = "initiate-comms"
	NotifyAdjuster    = "notify-adjuster"
	NotifyCustomer    = "notify-customer"
)

// Invoker performs a single synchronous capability invocation.
// params is marshaled and handed to the capability; the typed result is
// unmarshaled into out. Implementations must honor ctx cancellation.
type Invoker interface {
	Invoke(ctx context.Context, name string, params any, out any) error
}

// Error wraps a failed capability invocation with the capability name
// and the underlying cause. A tier-level Error fails the whole run.
type Error struct {
	Capability string
	Timeout    bool
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("capability %s: timed out: %v", e.Capability, e.Err)
	}
	return fmt.Sprintf("capability %s: %v", e.Capability, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err as a capability failure.
func NewError(name string, err error) *Error {
	return &Error{Capability: name, Err: err}
}

// FindServicesParams are the inputs of the find-services capability.
type FindServicesParams struct {
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Severity    model.Severity `json:"severity"`
	RadiusMiles float64        `json:"radius_miles"`
}

// InitiateCommsParams are the inputs of the initiate-comms capability.
type InitiateCommsParams struct {
	ClaimReference string         `json:"claim_reference"`
	DriverName     string         `json:"driver_name"`
	DriverPhone    string         `json:"driver_phone"`
	Severity       model.Severity `json:"severity"`
}

// NotifyAdjusterParams are the inputs of the notify-adjuster capability.
type NotifyAdjusterParams struct {
	ClaimNumber string         `json:"claim_number"`
	Severity    model.Severity `json:"severity"`
	ReportBody  string         `json:"report_body"`
}

// NotifyCustomerParams are the inputs of the notify-customer capability.
type NotifyCustomerParams struct {
	ClaimReference string               `json:"claim_reference"`
	CustomerName   string               `json:"customer_name"`
	CustomerEmail  string               `json:"customer_email"`
	PolicyNumber   string               `json:"policy_number"`
	Severity       model.Severity       `json:"severity"`
	Services       model.NearbyServices `json:"services"`
	NextSteps      []string             `json:"next_steps"`
}

// NotificationResult is the acknowledgement returned by the two
// notification capabilities.
type NotificationResult struct {
	Sent      bool   `json:"sent"`
	Channel   string `json:"channel,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}
