package app

type ProgressReporter interface {
	Increment(label string)
	Done()
}

type Reporter interface {
	Info(message string)
	Column(name, description string)
	Progress(label string, total int) ProgressReporter
}

type noopReporter struct{}

func (n noopReporter) Info(string)                           {}
func (n noopReporter) Column(string, string)                 {}
func (n noopReporter) Progress(string, int) ProgressReporter { return noopProgress{} }

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func ensureReporter(reporter Reporter) Reporter {
	if reporter == nil {
		return noopReporter{}
	}
	return reporter
}
