package domain

// Configuration is a scenario file: a list of named loans in user-facing units
type Configuration struct {
	Scenarios []LoanInput `json:"scenarios" yaml:"scenarios"`
}

// FindScenario returns the scenario with the given name
func (c *Configuration) FindScenario(name string) (*LoanInput, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}
