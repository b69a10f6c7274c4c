package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// capabilityPrompts maps each capability to the instruction given to the
// dispatch model. The model must fulfil the capability by calling the
// function tool of the same name with the completed result.
var capabilityPrompts = map[string]string{
	AnalyzeImpact:     "Analyze the vehicle accident telemetry and classify impact severity, impact type, estimated speed at impact, speeding, airbag likelihood and confidence.",
	GatherEnvironment: "Determine the environmental context of the accident location: address, road type, weather, road conditions, contributing factors and daylight status.",
	LookupPolicy:      "Look up the insurance policy, driver and vehicle records for the given policy, driver and VIN identifiers.",
	FindServices:      "Locate nearby body shops, tow services, medical facilities and rental car locations within the given radius, and assess vehicle drivability.",
	InitiateComms:     "Initiate first-notice-of-loss communications: SMS the driver, notify an adjuster, and dispatch roadside assistance when warranted.",
	NotifyAdjuster:    "Send the rendered incident report to the assigned claims adjuster.",
	NotifyCustomer:    "Send the customer a summary of their claim, nearby services and next steps.",
}

// OpenAIInvoker dispatches capability invocations through an
// OpenAI-compatible tool-calling endpoint. Each invocation is a single
// chat completion with a forced function call; the function arguments
// returned by the model are the capability's typed result.
type OpenAIInvoker struct {
	client  *openai.Client
	config  Config
	limiter *Limiter
}

// NewOpenAIInvoker creates an invoker backed by the configured endpoint.
func NewOpenAIInvoker(config Config) (*OpenAIInvoker, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("capability provider API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIInvoker{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  config,
		limiter: NewLimiter(config.RatePerSecond, config.RateBurst),
	}, nil
}

// Invoke performs one capability invocation. The wait on the rate
// limiter and the completion call both respect ctx; the call itself is
// additionally bounded by the configured invoke timeout.
func (v *OpenAIInvoker) Invoke(ctx context.Context, name string, params any, out any) error {
	prompt, ok := capabilityPrompts[name]
	if !ok {
		return NewError(name, fmt.Errorf("unknown capability"))
	}

	if err := v.limiter.Wait(ctx, name); err != nil {
		return NewError(name, fmt.Errorf("rate limit wait: %w", err))
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return NewError(name, fmt.Errorf("marshal params: %w", err))
	}

	timeout := v.config.InvokeTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: v.model(),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Input parameters:\n%s", payload),
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        name,
					Description: prompt,
					Parameters:  map[string]any{"type": "object"},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: name},
		},
		Temperature: 0.2,
	}

	resp, err := v.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		cerr := NewError(name, err)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			cerr.Timeout = true
		}
		return cerr
	}

	if len(resp.Choices) == 0 {
		return NewError(name, fmt.Errorf("empty completion"))
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return NewError(name, fmt.Errorf("model returned no tool call"))
	}
	call := calls[0]
	if call.Function.Name != name {
		return NewError(name, fmt.Errorf("model called %q instead of %q", call.Function.Name, name))
	}

	if err := json.Unmarshal([]byte(call.Function.Arguments), out); err != nil {
		return NewError(name, fmt.Errorf("decode result: %w", err))
	}
	return nil
}

func (v *OpenAIInvoker) model() string {
	if v.config.Model != "" {
		return v.config.Model
	}
	return openai.GPT4oMini
}
