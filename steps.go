package schedule

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// Reads queue steps from a YAML list. Each item holds exactly one
// operation key and the name of a task registered in tasks:
//
//	- wait: 100ms
//	  task: greet
//	- loop: 50
//	  task: poll
//
// Durations are Go duration strings, or bare integers in milliseconds.
func ParseSteps(data []byte, tasks map[string]Task) ([]Step, error) {
	var raw []map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding steps: %w", err)
	}

	steps := make([]Step, 0, len(raw))
	for i, item := range raw {
		st, err := parseStep(item, tasks)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func parseStep(item map[string]yaml.Node, tasks map[string]Task) (Step, error) {
	var st Step
	for key, node := range item {
		switch key {
		case "task":
			var name string
			if err := node.Decode(&name); err != nil {
				return st, fmt.Errorf("%w: task: %v", ErrInvalidStep, err)
			}
			task, ok := tasks[name]
			if !ok {
				return st, fmt.Errorf("%w: unknown task %q", ErrInvalidStep, name)
			}
			st.Task = task
		case string(OpWait), string(OpLoop):
			if st.Op != "" {
				return st, fmt.Errorf("%w: more than one operation", ErrInvalidStep)
			}
			d, err := parseDuration(&node)
			if err != nil {
				return st, fmt.Errorf("%w: %s: %v", ErrInvalidStep, key, err)
			}
			st.Op, st.Duration = Op(key), d
		default:
			return st, fmt.Errorf("%w: unknown key %q", ErrInvalidStep, key)
		}
	}
	if st.Op == "" {
		return st, fmt.Errorf("%w: missing wait or loop", ErrInvalidStep)
	}
	if st.Task == nil {
		return st, fmt.Errorf("%w: missing task", ErrInvalidStep)
	}
	return st, nil
}

func parseDuration(node *yaml.Node) (time.Duration, error) {
	var ms int64
	if err := node.Decode(&ms); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return 0, err
	}
	return time.ParseDuration(s)
}
