package dto

import "listing-checkout/internal/model"

type DurationOption struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type PlanWithDurations struct {
	*model.Plan
	Durations []DurationOption `json:"durations"`
}

type PlansResponse struct {
	Plans []PlanWithDurations `json:"plans"`
}

type ChoosePlanRequest struct {
	PlanID string `json:"plan_id"`
}

type ChooseDurationRequest struct {
	DurationID string `json:"duration_id"`
}

type Summary struct {
	PlanID        string `json:"plan_id"`
	PlanName      string `json:"plan_name"`
	DurationID    string `json:"duration_id"`
	DurationLabel string `json:"duration_label"`
	PayableAmount int64  `json:"payable_amount"`
}

type SelectionResponse struct {
	PlanID     string   `json:"plan_id,omitempty"`
	DurationID string   `json:"duration_id,omitempty"`
	State      string   `json:"state"`
	Summary    *Summary `json:"summary,omitempty"`
}

type ContinueResponse struct {
	Summary Summary `json:"summary"`
	Next    string  `json:"next"`
}

type CardRequest struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type PaymentRequest struct {
	Method string       `json:"method"`
	Card   *CardRequest `json:"card,omitempty"`
}

type PaymentResponse struct {
	Result string `json:"result"`
	Next   string `json:"next,omitempty"`

	// Instant transfer only.
	TransferReference string `json:"transfer_reference,omitempty"`
	TransferValidFor  string `json:"transfer_valid_for,omitempty"`
}

type SlotsResponse struct {
	Slots []SlotState `json:"slots"`
}

type SlotState struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Instruction string `json:"instruction"`
	Bound       bool   `json:"bound"`
	Preview     string `json:"preview,omitempty"`
}

type SubmitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Next    string `json:"next"`
}

type ErrorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}
