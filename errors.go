package chanscope

import "fmt"

// ConfigError reports an instrumentation call that could not be honored
// as configured. It is the only error the wrap constructors return;
// everything after construction degrades observability silently rather
// than failing the host program.
type ConfigError struct {
	Op     string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chanscope: %s: %s", e.Op, e.Reason)
}

func errCapacityRequired() *ConfigError {
	return &ConfigError{
		Op:     "wrap",
		Reason: "capacity is required when the conduit does not report one; pass WithCapacity",
	}
}
