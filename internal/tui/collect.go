package tui

import (
	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/workflow"
)

// Selection is everything needed to plan a workflow.
type Selection struct {
	Workflow   workflow.Descriptor
	ConfigFile string
	Params     workflow.Params
}

// Collect asks for a workflow, a runner config file and then every parameter
// the workflow declares, in order.
func Collect(a Asker, c *config.Config, s config.Session) (Selection, error) {
	var sel Selection

	label, err := a.Ask(Question{Title: "Select the function to run:", Options: workflow.Labels()})
	if err != nil {
		return sel, err
	}
	if sel.Workflow, err = workflow.Lookup(label); err != nil {
		return sel, err
	}
	d := sel.Workflow

	configs, err := workflow.ConfigFiles(s)
	if err != nil {
		return sel, err
	}
	if sel.ConfigFile, err = a.Ask(Question{Title: "Select the configuration file:", Options: configs, AllowCustom: true}); err != nil {
		return sel, err
	}

	if d.Fanout {
		scope, err := a.Ask(Question{Title: "Select an option:", Options: []string{d.ScopeAll, d.ScopeOne}})
		if err != nil {
			return sel, err
		}
		sel.Params.All = scope == d.ScopeAll
	}

	if d.Strategy && !sel.Params.All {
		strategies, err := workflow.Strategies(s)
		if err != nil {
			return sel, err
		}
		if sel.Params.Strategy, err = a.Ask(Question{Title: workflow.ParamStrategy.Prompt(), Options: strategies, AllowCustom: true}); err != nil {
			return sel, err
		}
	}

	for _, p := range d.Params {
		q := Question{Title: p.Prompt(), Numeric: p == workflow.ParamEpochs}
		if !p.Free() {
			q.Options = workflow.Choices(c, d, p)
			q.AllowCustom = true
		}
		value, err := a.Ask(q)
		if err != nil {
			return sel, err
		}
		if err := sel.Params.Set(p, value); err != nil {
			return sel, err
		}
	}
	return sel, nil
}
