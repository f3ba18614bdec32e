package writer

import (
	"slices"

	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// Modal holds the state a record writer carries between records: the
// current layer pair, the queued properties and the repetition slot.
// Embed it to get the non-Write half of [Writer].
type Modal struct {
	Layer    uint32
	Datatype uint32

	queued     shape.Properties
	repetition Descriptor
	inUse      bool
}

// SetLayerDatatype sets the modal layer pair and returns the previous one.
func (m *Modal) SetLayerDatatype(layer, datatype uint32) (uint32, uint32) {
	oldLayer, oldDatatype := m.Layer, m.Datatype
	m.Layer, m.Datatype = layer, datatype
	return oldLayer, oldDatatype
}

// SetupProperties queues props for the next record.
func (m *Modal) SetupProperties(props shape.Properties) error {
	m.queued = slices.Clone(props)
	return nil
}

// ClearPropertyQueue drops queued properties.
func (m *Modal) ClearPropertyQueue() { m.queued = nil }

// SetRepetition fills the repetition slot and marks it in use.
func (m *Modal) SetRepetition(p repetition.Pattern) {
	m.repetition = Describe(p)
	m.inUse = true
}

// UnsetRepetition marks the repetition slot unused.
func (m *Modal) UnsetRepetition() { m.inUse = false }

// Repetition returns the repetition slot and whether it is in use.
func (m *Modal) Repetition() (Descriptor, bool) { return m.repetition, m.inUse }

// QueuedProperties returns the properties that the next record carries.
func (m *Modal) QueuedProperties() shape.Properties { return m.queued }

// take snapshots the per-record state.
func (m *Modal) take() (props shape.Properties, rep *Descriptor) {
	props = m.queued
	if m.inUse {
		d := m.repetition
		rep = &d
	}
	return props, rep
}
