package pipeline

import "time"

// stageTimer logs a stage's duration at debug level. Instrumentation
// lives here in the orchestrator; the components themselves stay free of
// timing concerns.
func (p *Pipeline) stageTimer(name string) func() {
	start := time.Now()
	return func() {
		p.logger.Debug("stage complete", "stage", name, "duration", time.Since(start))
	}
}
