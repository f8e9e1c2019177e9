package dashboard

// Train is one row of the "Train List (In Section)" table.
type Train struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	NextStop string `json:"nextStop"`
	ETA      string `json:"eta"`
	Status   string `json:"status"`
}

// TrainsInSection returns a fresh copy of the sample train list on every call.
func TrainsInSection() []Train {
	return []Train{
		{ID: "12301", Type: "Rajdhani", NextStop: "Raipur", ETA: "16:45", Status: "On Time"},
		{ID: "45678", Type: "Freight", NextStop: "Nagpur", ETA: "17:10", Status: "Delayed 6m"},
		{ID: "20825", Type: "Express", NextStop: "Durg", ETA: "16:22", Status: "Early 3m"},
		{ID: "12859", Type: "Express", NextStop: "Nagpur", ETA: "18:05", Status: "On Time"},
		{ID: "54321", Type: "Local", NextStop: "Durg", ETA: "17:30", Status: "Delayed 12m"},
	}
}

func EventLog() []string {
	return []string{
		"[11:39:35] System Initialized. Awaiting controller input.",
		"[11:39:35] AI recommendation generated.",
		"[11:39:22] Train 12301 departed Station A.",
		"[11:38:50] Train 45678 approaching Siding SL-02.",
		"[11:37:15] Train 20825 arrived at Station B.",
	}
}
