package service

// Recorder receives business metrics. *metrics.Metrics implements it.
type Recorder interface {
	IncLogin(success bool)
	ObserveSale(amountUSD float64)
	IncOfferRejected(field string)
}

type nopRecorder struct{}

func (nopRecorder) IncLogin(bool)            {}
func (nopRecorder) ObserveSale(float64)      {}
func (nopRecorder) IncOfferRejected(string)  {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
