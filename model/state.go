package model

// State groups cities.
type State struct {
	Base
	Name string `json:"name" yaml:"name"`
}

// NewState creates a state.
func NewState(name string) *State {
	return &State{Base: newBase(), Name: name}
}

func (s *State) Kind() Kind { return KindState }

func (s *State) Values() []interface{} {
	return append(s.values(), s.Name)
}

func (s *State) Targets() []interface{} {
	return append(s.targets(), &s.Name)
}

func (s *State) Validate() error {
	if err := s.validate(KindState); err != nil {
		return err
	}
	return required(KindState, "name", s.Name)
}
