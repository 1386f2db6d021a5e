package logging

import "time"

// Generic field constructors

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Routing-domain field constructors

// DecisionID tags an entry with the routing result id
func DecisionID(id string) Field {
	return Field{Key: "decision_id", Value: id}
}

// Decision tags an entry with the routing outcome
func Decision(value string) Field {
	return Field{Key: "decision", Value: value}
}

// Coherence tags an entry with a coherence score
func Coherence(value float64) Field {
	return Field{Key: "coherence", Value: value}
}

// PathLength tags an entry with the candidate path length
func PathLength(n int) Field {
	return Field{Key: "path_length", Value: n}
}

// Iterations tags an entry with a diffusion iteration count
func Iterations(n int) Field {
	return Field{Key: "iterations", Value: n}
}

// Obstructions tags an entry with a detected obstruction count
func Obstructions(n int) Field {
	return Field{Key: "obstructions", Value: n}
}
