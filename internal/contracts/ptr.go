package contracts

// Pointer constructors for optional record fields. Mostly used by tests,
// collectors, and the data generator.

func String(v string) *string    { return &v }
func Int(v int) *int             { return &v }
func Float64(v float64) *float64 { return &v }
func Bool(v bool) *bool          { return &v }
