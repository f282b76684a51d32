package usecase

import (
	"fmt"

	"tpp-demo/internal/domain"
)

// Sequencer drives a FlowState through the steps of its use case. It never
// mutates the state it is given; every operation returns the next value.
type Sequencer struct {
	registry *Registry
}

func NewSequencer(registry *Registry) *Sequencer {
	return &Sequencer{registry: registry}
}

// Start begins a flow at the first step of the use case.
func (s *Sequencer) Start(useCaseID string) (domain.FlowState, error) {
	_, category, index, err := s.registry.Lookup(useCaseID)
	if err != nil {
		return domain.FlowState{}, err
	}
	return domain.FlowState{
		CategoryID:   category.ID,
		UseCaseID:    useCaseID,
		UseCaseIndex: index,
	}, nil
}

// Advance moves to the next step. At the last step it is a no-op.
func (s *Sequencer) Advance(state domain.FlowState) (domain.FlowState, error) {
	steps, err := s.Steps(state)
	if err != nil {
		return state, err
	}
	if state.StepIndex < len(steps)-1 {
		state.StepIndex++
	}
	return state, nil
}

// Cancel jumps straight to the last step and marks the flow cancelled.
func (s *Sequencer) Cancel(state domain.FlowState) (domain.FlowState, error) {
	steps, err := s.Steps(state)
	if err != nil {
		return state, err
	}
	state.StepIndex = len(steps) - 1
	state.Cancelled = true
	return state, nil
}

// Select switches to another use case of the same category and restarts at
// its first step.
func (s *Sequencer) Select(state domain.FlowState, useCaseIndex int) (domain.FlowState, error) {
	uc, err := s.registry.UseCaseAt(state.CategoryID, useCaseIndex)
	if err != nil {
		return state, err
	}
	state.UseCaseID = uc.ID
	state.UseCaseIndex = useCaseIndex
	state.StepIndex = 0
	state.Cancelled = false
	return state, nil
}

// Current returns the step the flow is on.
func (s *Sequencer) Current(state domain.FlowState) (domain.Step, error) {
	steps, err := s.Steps(state)
	if err != nil {
		return domain.Step{}, err
	}
	if state.StepIndex < 0 || state.StepIndex >= len(steps) {
		return domain.Step{}, fmt.Errorf("step %d of use case %q: %w", state.StepIndex, state.UseCaseID, domain.ErrEmptyUseCase)
	}
	return steps[state.StepIndex], nil
}

// IsTerminal reports whether the flow is on its last step.
func (s *Sequencer) IsTerminal(state domain.FlowState) bool {
	steps, err := s.Steps(state)
	if err != nil {
		return false
	}
	return state.StepIndex == len(steps)-1
}

// Steps returns the steps of the flow's use case.
func (s *Sequencer) Steps(state domain.FlowState) ([]domain.Step, error) {
	uc, _, _, err := s.registry.Lookup(state.UseCaseID)
	if err != nil {
		return nil, err
	}
	if len(uc.Steps) == 0 {
		return nil, fmt.Errorf("use case %q: %w", uc.ID, domain.ErrEmptyUseCase)
	}
	return uc.Steps, nil
}
