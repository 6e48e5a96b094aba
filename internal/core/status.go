package core

import "github.com/1broseidon/tilewm/internal/platform"

// OutputStatus describes one output for status queries.
type OutputStatus struct {
	ID            uint32                  `json:"id"`
	Name          string                  `json:"name"`
	Geometry      platform.Rect           `json:"geometry"`
	Workarea      platform.Rect           `json:"workarea"`
	Transform     string                  `json:"transform"`
	Active        bool                    `json:"active"`
	Workspace     platform.WorkspaceCoord `json:"workspace"`
	Views         int                     `json:"views"`
	ActiveView    uint32                  `json:"active_view,omitempty"`
	ActivePlugins []string                `json:"active_plugins,omitempty"`
	Plugins       []string                `json:"plugins,omitempty"`
}

// Status is a snapshot of the context.
type Status struct {
	ActiveOutput uint32         `json:"active_output"`
	Views        int            `json:"views"`
	Outputs      []OutputStatus `json:"outputs"`
}

// Status snapshots every output.
func (c *Context) Status() Status {
	st := Status{Views: len(c.views), Outputs: make([]OutputStatus, 0, len(c.outputs))}
	if c.active != nil {
		st.ActiveOutput = c.active.ID()
	}
	for _, o := range c.outputs {
		s := OutputStatus{
			ID:            o.ID(),
			Name:          o.Name(),
			Geometry:      o.FullGeometry(),
			Workarea:      o.Workarea(),
			Transform:     o.Transform().String(),
			Active:        o == c.active,
			Workspace:     o.Workspace().CurrentWorkspace(),
			ActiveView:    o.ActiveView().ID(),
			ActivePlugins: o.ActivePlugins(),
			Plugins:       o.Plugins().Names(),
		}
		for _, v := range c.views {
			if ownerOf(v) == o {
				s.Views++
			}
		}
		st.Outputs = append(st.Outputs, s)
	}
	return st
}
