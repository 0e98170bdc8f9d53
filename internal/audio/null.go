package audio

// NullOutput is a silent Output for hosts without a player and for tests
// that only care about tone state machines.
type NullOutput struct{}

// NewNullOutput returns a silent output.
func NewNullOutput() *NullOutput {
	return &NullOutput{}
}

// NewOscillator returns an oscillator that produces nothing.
func (*NullOutput) NewOscillator(_ Params) (Oscillator, error) {
	return nullOscillator{}, nil
}

// Close is a no-op.
func (*NullOutput) Close() error {
	return nil
}

// nullOscillator ignores all operations.
type nullOscillator struct{}

func (nullOscillator) SetFrequency(float64) {}

func (nullOscillator) Stop() {}
