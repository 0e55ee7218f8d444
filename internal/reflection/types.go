package reflection

// Verdict is the gate's decision for one draft. Consumed by the engine to
// decide loop-back vs terminate; the gate itself never advances counters.
type Verdict struct {
	Approved         bool
	TargetCapability string
	Feedback         string
}
