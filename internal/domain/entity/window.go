package entity

import "time"

// ReportingWindow is an inclusive date range accepted by the reporting API.
type ReportingWindow struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow returns the reporting window used when no range is given:
// the `days` days ending yesterday. O dia corrente fica de fora por causa do
// atraso de consolidação dos dados da API.
func DefaultWindow(now time.Time, days int) ReportingWindow {
	end := now.UTC().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	return ReportingWindow{Start: start, End: end}
}

// Previous returns the window of the same length immediately preceding this
// one, used for period-over-period comparison.
func (w ReportingWindow) Previous() ReportingWindow {
	length := w.Days()
	prevEnd := w.Start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(length - 1))
	return ReportingWindow{Start: prevStart, End: prevEnd}
}

// Days retorna o número de dias cobertos pela janela, inclusivo.
func (w ReportingWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// StartDate returns the start formatted as the API expects (YYYY-MM-DD).
func (w ReportingWindow) StartDate() string {
	return w.Start.Format("2006-01-02")
}

// EndDate returns the end formatted as the API expects (YYYY-MM-DD).
func (w ReportingWindow) EndDate() string {
	return w.End.Format("2006-01-02")
}
