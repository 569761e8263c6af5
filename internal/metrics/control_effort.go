package metrics

import "github.com/san-kum/circlesim/internal/dynamo"

// Contacts reports the mean number of directed overlapping pairs per frame.
type Contacts struct {
	name    string
	sum     int
	samples int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(f dynamo.Frame) {
	c.sum += len(f.Pairs)
	c.samples++
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *Contacts) Reset() {
	c.sum = 0
	c.samples = 0
}

// ControlEffort is the fraction of frames in which the pointer held a body.
type ControlEffort struct {
	name     string
	selected int
	samples  int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(f dynamo.Frame) {
	if f.HasSelection {
		c.selected++
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.selected) / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.selected = 0
	c.samples = 0
}

// Standard returns the metrics recorded with every headless run.
func Standard() []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewContacts(),
		NewMaxSpeed(),
		NewControlEffort(),
	}
}
