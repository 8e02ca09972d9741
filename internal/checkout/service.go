package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"listing-checkout/internal/model"
	"listing-checkout/internal/pricing"
	"listing-checkout/internal/repository"
)

// State of a buyer's selection.
type State string

const (
	StateEmpty                 State = "empty"
	StatePlanChosen            State = "plan_chosen"
	StatePlanAndDurationChosen State = "plan_and_duration_chosen"
)

var (
	ErrNoPlanSelected = errors.New("no plan selected")
	ErrPlanNotFound   = errors.New("plan not found")
)

// Selection is the buyer's current (plan, duration) choice before payment.
type Selection struct {
	PlanID     string `json:"plan_id"`
	DurationID string `json:"duration_id"`
}

func (s Selection) State() State {
	switch {
	case s.PlanID == "":
		return StateEmpty
	case s.DurationID == "":
		return StatePlanChosen
	default:
		return StatePlanAndDurationChosen
	}
}

// Summary is the derived checkout summary. Never stored, recomputed from a
// catalog snapshot on every selection change.
type Summary struct {
	Plan          *model.Plan
	Duration      pricing.Duration
	PayableAmount int64
}

// Catalog provides plan snapshots.
type Catalog interface {
	Snapshot() []*model.Plan
}

// Service owns in-progress selections, one per buyer, and enforces the
// plan/duration invariants. Durable persistence happens only on Continue.
type Service struct {
	catalog  Catalog
	sessions repository.SessionRepository

	mu         sync.Mutex
	selections map[string]*Selection
}

func NewService(catalog Catalog, sessions repository.SessionRepository) *Service {
	return &Service{
		catalog:    catalog,
		sessions:   sessions,
		selections: make(map[string]*Selection),
	}
}

// Current returns the buyer's selection, its state and, when complete
// enough, the summary. A missing in-memory selection is resumed from the
// persisted session; an empty one is defaulted to the first catalog plan.
func (s *Service) Current(ctx context.Context, userID string) (Selection, State, *Summary, error) {
	snapshot := s.catalog.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.selections[userID]
	if !ok {
		sel = &Selection{DurationID: pricing.ShortestDuration().ID}

		session, err := s.sessions.Load(ctx, userID)
		if err != nil {
			return Selection{}, StateEmpty, nil, fmt.Errorf("load checkout session: %w", err)
		}
		if session != nil {
			sel.PlanID = session.PlanID
			sel.DurationID = session.DurationID
		}
		s.selections[userID] = sel
	}

	// Default to the first available plan once the catalog has loaded, and
	// drop a persisted plan a loaded catalog no longer carries. An empty
	// snapshot means the catalog is unavailable, not that the plan is gone.
	if len(snapshot) > 0 && findPlan(snapshot, sel.PlanID) == nil {
		sel.PlanID = snapshot[0].ID
	}
	s.revalidateDuration(snapshot, sel)

	summary := s.summarize(snapshot, sel)
	return *sel, sel.State(), summary, nil
}

// ChoosePlan selects a plan and re-validates the duration, force-correcting
// it to the shortest option when the new plan makes it illegal.
func (s *Service) ChoosePlan(ctx context.Context, userID, planID string) (Selection, *Summary, error) {
	snapshot := s.catalog.Snapshot()
	if findPlan(snapshot, planID) == nil {
		return Selection{}, nil, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(userID)
	sel.PlanID = planID
	s.revalidateDuration(snapshot, sel)

	return *sel, s.summarize(snapshot, sel), nil
}

// ChooseDuration selects a duration. It is meaningful only once a plan is
// chosen; an illegal duration is rejected silently and the selection is
// left unchanged.
func (s *Service) ChooseDuration(ctx context.Context, userID, durationID string) (Selection, *Summary, error) {
	snapshot := s.catalog.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(userID)
	plan := findPlan(snapshot, sel.PlanID)
	if plan != nil && durationAllowed(plan, durationID) {
		sel.DurationID = durationID
	}

	return *sel, s.summarize(snapshot, sel), nil
}

// Continue closes the selection phase: it persists the session and returns
// the summary for the payment step. With no plan chosen it is a no-op and
// reports ErrNoPlanSelected; nothing is persisted.
func (s *Service) Continue(ctx context.Context, userID string) (*Summary, error) {
	snapshot := s.catalog.Snapshot()

	s.mu.Lock()
	sel := s.selection(userID)
	if sel.PlanID == "" {
		s.mu.Unlock()
		return nil, ErrNoPlanSelected
	}
	s.revalidateDuration(snapshot, sel)
	summary := s.summarize(snapshot, sel)
	saved := *sel
	s.mu.Unlock()

	if summary == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, saved.PlanID)
	}

	err := s.sessions.Save(ctx, &model.CheckoutSession{
		UserID:     userID,
		PlanID:     saved.PlanID,
		DurationID: saved.DurationID,
	})
	if err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}

	return summary, nil
}

// Complete discards the buyer's checkout state once the purchase is done:
// the in-memory selection and the persisted session. The next checkout
// entry starts fresh on the catalog default.
func (s *Service) Complete(ctx context.Context, userID string) error {
	s.Abandon(userID)
	if err := s.sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear checkout session: %w", err)
	}
	return nil
}

// Abandon discards the in-memory selection only. The persisted session is
// overwritten on the next Continue, never cleared here.
func (s *Service) Abandon(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, userID)
}

func (s *Service) selection(userID string) *Selection {
	sel, ok := s.selections[userID]
	if !ok {
		sel = &Selection{DurationID: pricing.ShortestDuration().ID}
		s.selections[userID] = sel
	}
	return sel
}

func (s *Service) revalidateDuration(snapshot []*model.Plan, sel *Selection) {
	plan := findPlan(snapshot, sel.PlanID)
	if plan == nil {
		return
	}
	if !durationAllowed(plan, sel.DurationID) {
		sel.DurationID = pricing.ShortestDuration().ID
	}
}

func (s *Service) summarize(snapshot []*model.Plan, sel *Selection) *Summary {
	plan := findPlan(snapshot, sel.PlanID)
	if plan == nil {
		return nil
	}
	duration, ok := pricing.DurationByID(sel.DurationID)
	if !ok {
		return nil
	}

	return &Summary{
		Plan:          plan,
		Duration:      duration,
		PayableAmount: pricing.Amount(plan.BasePrice, duration.Multiplier),
	}
}

func findPlan(snapshot []*model.Plan, planID string) *model.Plan {
	if planID == "" {
		return nil
	}
	for _, p := range snapshot {
		if p.ID == planID {
			return p
		}
	}
	return nil
}

func durationAllowed(plan *model.Plan, durationID string) bool {
	for _, d := range pricing.AvailableDurations(plan) {
		if d.ID == durationID {
			return true
		}
	}
	return false
}
