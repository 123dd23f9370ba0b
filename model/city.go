package model

// City belongs to a state.
type City struct {
	Base
	StateID string `json:"state_id" yaml:"state_id"`
	Name    string `json:"name" yaml:"name"`
}

// NewCity creates a city of the given state.
func NewCity(stateID, name string) *City {
	return &City{Base: newBase(), StateID: stateID, Name: name}
}

func (c *City) Kind() Kind { return KindCity }

func (c *City) Values() []interface{} {
	return append(c.values(), c.StateID, c.Name)
}

func (c *City) Targets() []interface{} {
	return append(c.targets(), &c.StateID, &c.Name)
}

func (c *City) Validate() error {
	if err := c.validate(KindCity); err != nil {
		return err
	}
	return required(KindCity, "state_id", c.StateID, "name", c.Name)
}
